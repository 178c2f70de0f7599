package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

type dynamoStoryRepository struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
	now          func() time.Time
}

func NewDynamoStoryRepository(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.StoryRepositoryPort {
	return &dynamoStoryRepository{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
		now:          time.Now,
	}
}

func (r *dynamoStoryRepository) Save(ctx context.Context, story domain.Story) error {
	av, err := dynamodbattribute.MarshalMap(story)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to marshal story item", map[string]interface{}{
			"story_id": story.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(r.dynamoConfig.StoriesTableName),
	}

	if _, err = r.dynamoSvc.PutItemWithContext(ctx, input); err != nil {
		r.logger.ErrorWithFields(err, "Failed to save story item", map[string]interface{}{
			"story_id": story.ID,
		})
		return err
	}
	return nil
}

func (r *dynamoStoryRepository) Get(ctx context.Context, storyID string) (domain.Story, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.dynamoConfig.StoriesTableName),
		Key:       storyKey(storyID),
	}

	output, err := r.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to get story item", map[string]interface{}{
			"story_id": storyID,
		})
		return domain.Story{}, err
	}
	if output.Item == nil {
		return domain.Story{}, fmt.Errorf("story %s not found", storyID)
	}

	var story domain.Story
	if err := dynamodbattribute.UnmarshalMap(output.Item, &story); err != nil {
		return domain.Story{}, fmt.Errorf("unmarshal story item: %w", err)
	}
	return story, nil
}

func (r *dynamoStoryRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Story, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.dynamoConfig.StoriesTableName),
		IndexName:              aws.String(r.dynamoConfig.AuthorIndexName),
		KeyConditionExpression: aws.String("author_id = :author_id"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":author_id": {S: aws.String(authorID)},
		},
		ScanIndexForward: aws.Bool(false),
	}

	output, err := r.dynamoSvc.QueryWithContext(ctx, input)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to query stories by author", map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}

	return unmarshalStories(output.Items)
}

func (r *dynamoStoryRepository) ListPublic(ctx context.Context, limit int) ([]domain.Story, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.dynamoConfig.StoriesTableName),
		FilterExpression: aws.String("is_public = :is_public"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":is_public": {BOOL: aws.Bool(true)},
		},
	}
	if limit > 0 {
		input.Limit = aws.Int64(int64(limit))
	}

	output, err := r.dynamoSvc.ScanWithContext(ctx, input)
	if err != nil {
		r.logger.Error(err, "Failed to scan public stories")
		return nil, err
	}

	return unmarshalStories(output.Items)
}

func (r *dynamoStoryRepository) AttachVideoJob(ctx context.Context, storyID, audioURL, videoMarker string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.dynamoConfig.StoriesTableName),
		Key:                 storyKey(storyID),
		ConditionExpression: aws.String("attribute_exists(id)"),
		UpdateExpression:    aws.String("SET audio_url = :audio_url, video_url = :video_url, updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":audio_url":  {S: aws.String(audioURL)},
			":video_url":  {S: aws.String(videoMarker)},
			":updated_at": {N: aws.String(fmt.Sprintf("%d", r.now().Unix()))},
		},
	}

	if _, err := r.dynamoSvc.UpdateItemWithContext(ctx, input); err != nil {
		r.logger.ErrorWithFields(err, "Failed to attach video job to story", map[string]interface{}{
			"story_id": storyID,
		})
		return err
	}
	return nil
}

func (r *dynamoStoryRepository) ResolveVideoURL(ctx context.Context, storyID, videoURL string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.dynamoConfig.StoriesTableName),
		Key:                 storyKey(storyID),
		ConditionExpression: aws.String("attribute_exists(id)"),
		UpdateExpression:    aws.String("SET video_url = :video_url, updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":video_url":  {S: aws.String(videoURL)},
			":updated_at": {N: aws.String(fmt.Sprintf("%d", r.now().Unix()))},
		},
	}

	if _, err := r.dynamoSvc.UpdateItemWithContext(ctx, input); err != nil {
		r.logger.ErrorWithFields(err, "Failed to resolve video URL on story", map[string]interface{}{
			"story_id": storyID,
		})
		return err
	}
	return nil
}

func (r *dynamoStoryRepository) IncrementViews(ctx context.Context, storyID string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.dynamoConfig.StoriesTableName),
		Key:                 storyKey(storyID),
		ConditionExpression: aws.String("attribute_exists(id)"),
		UpdateExpression:    aws.String("ADD views_count :one"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":one": {N: aws.String("1")},
		},
	}

	_, err := r.dynamoSvc.UpdateItemWithContext(ctx, input)
	return err
}

func storyKey(storyID string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"id": {S: aws.String(storyID)},
	}
}

func unmarshalStories(items []map[string]*dynamodb.AttributeValue) ([]domain.Story, error) {
	stories := make([]domain.Story, 0, len(items))
	for _, item := range items {
		var story domain.Story
		if err := dynamodbattribute.UnmarshalMap(item, &story); err != nil {
			return nil, fmt.Errorf("unmarshal story item: %w", err)
		}
		stories = append(stories, story)
	}
	return stories, nil
}
