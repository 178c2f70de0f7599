package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

type storyService struct {
	logger    outbound.LoggerPort
	generator outbound.StoryGeneratorPort
	stories   outbound.StoryRepositoryPort
	now       func() time.Time
}

func NewStoryService(logger outbound.LoggerPort, generator outbound.StoryGeneratorPort,
	stories outbound.StoryRepositoryPort) inbound.StoryServicePort {
	return &storyService{
		logger:    logger,
		generator: generator,
		stories:   stories,
		now:       time.Now,
	}
}

func (s *storyService) Create(ctx context.Context, params inbound.CreateStoryParams) (domain.Story, error) {
	content := params.Content
	if params.GenerateContent {
		generated, err := s.generator.Generate(ctx, outbound.GenerateStoryParams{
			Genre:    params.Genre,
			Type:     params.Type,
			Length:   params.Length,
			Prompt:   params.Prompt,
			Title:    params.Title,
			ForVideo: params.ForVideo,
		})
		if err != nil {
			return domain.Story{}, fmt.Errorf("generate story content: %w", err)
		}
		content = generated
	}
	if strings.TrimSpace(content) == "" {
		return domain.Story{}, fmt.Errorf("create story: content is empty")
	}

	now := s.now()
	story := domain.Story{
		ID:         uuid.NewString(),
		Title:      params.Title,
		Content:    content,
		Genre:      params.Genre,
		Type:       params.Type,
		Length:     params.Length,
		IsPublic:   params.IsPublic,
		AuthorID:   params.AuthorID,
		AuthorName: params.AuthorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.stories.Save(ctx, story); err != nil {
		return domain.Story{}, fmt.Errorf("save story: %w", err)
	}

	s.logger.InfoWithFields("Story created", map[string]interface{}{
		"story_id": story.ID,
		"author":   story.AuthorID,
	})
	return story, nil
}

func (s *storyService) Get(ctx context.Context, storyID string) (domain.Story, error) {
	story, err := s.stories.Get(ctx, storyID)
	if err != nil {
		return domain.Story{}, fmt.Errorf("get story: %w", err)
	}

	if err := s.stories.IncrementViews(ctx, storyID); err != nil {
		s.logger.ErrorWithFields(err, "Failed to increment views", map[string]interface{}{
			"story_id": storyID,
		})
	} else {
		story.ViewsCount++
	}
	return story, nil
}

func (s *storyService) ListPublic(ctx context.Context, limit int) ([]domain.Story, error) {
	return s.stories.ListPublic(ctx, limit)
}

func (s *storyService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Story, error) {
	return s.stories.ListByAuthor(ctx, authorID)
}
