package inbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

type CreateStoryParams struct {
	Title      string
	Content    string
	Genre      string
	Type       domain.StoryType
	Length     domain.StoryLength
	Prompt     string
	IsPublic   bool
	AuthorID   string
	AuthorName string
	// GenerateContent asks the content provider to write the story body
	// from Prompt instead of using Content verbatim.
	GenerateContent bool
	ForVideo        bool
}

type StoryServicePort interface {
	Create(ctx context.Context, params CreateStoryParams) (domain.Story, error)
	Get(ctx context.Context, storyID string) (domain.Story, error)
	ListPublic(ctx context.Context, limit int) ([]domain.Story, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Story, error)
}
