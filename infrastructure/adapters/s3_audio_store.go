package adapters

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/rs/zerolog/log"
)

type s3AudioStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3AudioStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.AudioStorePort {
	return &s3AudioStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3AudioStore) Save(ctx context.Context, storyID string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio payload is empty")
	}

	itemPath := s.getS3ItemPath(storyID)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(audio),
		ContentType:   aws.String("audio/mpeg"),
		ContentLength: aws.Int64(int64(len(audio))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", itemPath).
			Msg("Failed to upload audio to S3")
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, itemPath)
	log.Debug().
		Str("s3Url", s3Url).
		Msg("Successfully uploaded audio to S3")

	return s3Url, nil
}

// Keys carry a timestamp and a random suffix so regenerated narrations
// never collide.
func (s *s3AudioStore) getS3ItemPath(storyID string) string {
	return fmt.Sprintf("audio/story-audio-%s-%d-%s.mp3", storyID, time.Now().UnixMilli(), uuid.NewString()[:8])
}
