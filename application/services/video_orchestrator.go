package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

const (
	uploadMaxAttempts = 3
	// Reported to the UI right after submission; the tracker takes over
	// from here.
	submittedProgress          = 85
	submittedEstimatedTimeLeft = 60
)

type OrchestratorConfig struct {
	WordBudget int
	// UploadRetryBackoff is the base of the linear backoff between
	// upload attempts (attempt * backoff). Shortened in tests.
	UploadRetryBackoff time.Duration
}

func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		WordBudget:         DefaultVideoWordBudget,
		UploadRetryBackoff: time.Second,
	}
}

type videoOrchestrator struct {
	logger  outbound.LoggerPort
	audio   outbound.AudioGeneratorPort
	store   outbound.AudioStorePort
	video   outbound.AvatarVideoPort
	stories outbound.StoryRepositoryPort
	cfg     OrchestratorConfig
}

func NewVideoOrchestrator(logger outbound.LoggerPort, audio outbound.AudioGeneratorPort, store outbound.AudioStorePort,
	video outbound.AvatarVideoPort, stories outbound.StoryRepositoryPort, cfg OrchestratorConfig) inbound.VideoOrchestratorPort {
	if cfg.WordBudget <= 0 {
		cfg.WordBudget = DefaultVideoWordBudget
	}
	if cfg.UploadRetryBackoff <= 0 {
		cfg.UploadRetryBackoff = time.Second
	}
	return &videoOrchestrator{
		logger:  logger,
		audio:   audio,
		store:   store,
		video:   video,
		stories: stories,
		cfg:     cfg,
	}
}

// Generate runs the speech -> upload -> submit chain and returns as soon
// as the provider accepts the job. Video completion is the progress
// tracker's concern, not this one's.
func (o *videoOrchestrator) Generate(ctx context.Context, request domain.VideoGenerationRequest) (domain.VideoGenerationResult, error) {
	if request.VideoSettings.PersonaID == "" {
		return domain.VideoGenerationResult{}, fmt.Errorf("generate video: persona id is required")
	}
	if strings.TrimSpace(request.StoryContent) == "" {
		return domain.VideoGenerationResult{}, fmt.Errorf("generate video: story content is empty")
	}

	script := OptimizeContent(request.StoryContent, o.cfg.WordBudget)
	o.logger.InfoWithFields("Optimized story content for video", map[string]interface{}{
		"story_id":  request.StoryID,
		"raw_chars": len(request.StoryContent),
		"script":    len(script),
	})

	audio, err := o.audio.Generate(ctx, outbound.GenerateAudioParams{
		Text:          script,
		VoiceSettings: request.VoiceSettings,
	})
	if err != nil {
		return domain.VideoGenerationResult{}, fmt.Errorf("synthesize speech: %w", err)
	}

	audioURL, err := o.uploadWithRetry(ctx, request.StoryID, audio)
	if err != nil {
		return domain.VideoGenerationResult{}, err
	}

	videoID, err := o.video.CreateVideo(ctx, outbound.CreateVideoParams{
		Script:        script,
		PersonaID:     request.VideoSettings.PersonaID,
		BackgroundURL: request.VideoSettings.BackgroundURL,
	})
	if err != nil {
		return domain.VideoGenerationResult{}, fmt.Errorf("submit video job: %w", err)
	}

	// The audio and the job already exist upstream; a failed bookkeeping
	// write must not sink them. At-least-once, no rollback.
	marker := domain.NewJobMarker(videoID, domain.VideoStylePersona).Marker()
	if err := o.stories.AttachVideoJob(ctx, request.StoryID, audioURL, marker); err != nil {
		o.logger.ErrorWithFields(err, "Failed to persist video job on story", map[string]interface{}{
			"story_id": request.StoryID,
			"video_id": videoID,
		})
	}

	return domain.VideoGenerationResult{
		AudioURL:          audioURL,
		VideoID:           videoID,
		Status:            domain.VideoStateProcessing,
		Progress:          submittedProgress,
		EstimatedTimeLeft: submittedEstimatedTimeLeft,
		VideoStyle:        domain.VideoStylePersona,
	}, nil
}

func (o *videoOrchestrator) uploadWithRetry(ctx context.Context, storyID string, audio []byte) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= uploadMaxAttempts; attempt++ {
		url, err := o.store.Save(ctx, storyID, audio)
		if err == nil {
			return url, nil
		}
		lastErr = err
		o.logger.ErrorWithFields(err, "Audio upload attempt failed", map[string]interface{}{
			"story_id": storyID,
			"attempt":  attempt,
		})
		if attempt < uploadMaxAttempts {
			if err := o.wait(ctx, time.Duration(attempt)*o.cfg.UploadRetryBackoff); err != nil {
				return "", fmt.Errorf("upload audio: %w", err)
			}
		}
	}
	return "", fmt.Errorf("upload audio after %d attempts: %w", uploadMaxAttempts, lastErr)
}

func (o *videoOrchestrator) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
