package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

func TestStoryService_CreateWithProvidedContent(t *testing.T) {
	repo := newFakeStoryRepo()
	generator := &fakeStoryGenerator{}
	service := NewStoryService(noopLogger{}, generator, repo)

	story, err := service.Create(context.Background(), inbound.CreateStoryParams{
		Title:      "The Lighthouse",
		Content:    "The keeper climbed the stairs.",
		Genre:      "adventure",
		Type:       domain.StoryTypeStory,
		Length:     domain.LengthShort,
		IsPublic:   true,
		AuthorID:   "author-1",
		AuthorName: "Ada",
	})
	if err != nil {
		t.Fatal("Create failed:", err)
	}

	if story.ID == "" {
		t.Fatal("Story has no id")
	}
	if story.CreatedAt.IsZero() || !story.CreatedAt.Equal(story.UpdatedAt) {
		t.Fatalf("Timestamps not initialized: %+v", story)
	}
	if len(generator.params) != 0 {
		t.Fatal("Content provider called without GenerateContent")
	}
	if saved, _ := repo.Get(context.Background(), story.ID); saved.Content != "The keeper climbed the stairs." {
		t.Fatalf("Story not persisted: %+v", saved)
	}
}

func TestStoryService_CreateGeneratesContent(t *testing.T) {
	repo := newFakeStoryRepo()
	generator := &fakeStoryGenerator{content: "Generated body."}
	service := NewStoryService(noopLogger{}, generator, repo)

	story, err := service.Create(context.Background(), inbound.CreateStoryParams{
		Title:           "Untitled",
		Genre:           "mystery",
		Type:            domain.StoryTypeStory,
		Length:          domain.LengthMicro,
		Prompt:          "a locked room",
		AuthorID:        "author-1",
		GenerateContent: true,
		ForVideo:        true,
	})
	if err != nil {
		t.Fatal("Create failed:", err)
	}
	if story.Content != "Generated body." {
		t.Fatalf("Generated content not used: %q", story.Content)
	}
	if len(generator.params) != 1 || !generator.params[0].ForVideo || generator.params[0].Prompt != "a locked room" {
		t.Fatalf("Provider params mismatch: %+v", generator.params)
	}
}

func TestStoryService_CreateRejectsEmptyContent(t *testing.T) {
	service := NewStoryService(noopLogger{}, &fakeStoryGenerator{}, newFakeStoryRepo())

	_, err := service.Create(context.Background(), inbound.CreateStoryParams{
		Title:    "Blank",
		Content:  "   ",
		AuthorID: "author-1",
	})
	if err == nil {
		t.Fatal("Expected error for empty content")
	}
}

func TestStoryService_CreateWrapsGenerationError(t *testing.T) {
	boom := errors.New("gemini: no candidates")
	service := NewStoryService(noopLogger{}, &fakeStoryGenerator{err: boom}, newFakeStoryRepo())

	_, err := service.Create(context.Background(), inbound.CreateStoryParams{
		Prompt:          "dragons",
		AuthorID:        "author-1",
		GenerateContent: true,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped provider error, got: %v", err)
	}
}

func TestStoryService_GetBumpsViews(t *testing.T) {
	repo := newFakeStoryRepo()
	repo.stories["s-1"] = domain.Story{ID: "s-1", ViewsCount: 7}
	service := NewStoryService(noopLogger{}, &fakeStoryGenerator{}, repo)

	story, err := service.Get(context.Background(), "s-1")
	if err != nil {
		t.Fatal("Get failed:", err)
	}
	if story.ViewsCount != 8 {
		t.Fatalf("Expected views bumped to 8, got %d", story.ViewsCount)
	}
}
