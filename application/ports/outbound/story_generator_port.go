package outbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

type GenerateStoryParams struct {
	Genre  string
	Type   domain.StoryType
	Length domain.StoryLength
	Prompt string
	Title  string
	// ForVideo halves the length buckets and caps output tokens so the
	// downstream speech and video providers bill less.
	ForVideo bool
}

type StoryGeneratorPort interface {
	Generate(ctx context.Context, params GenerateStoryParams) (string, error)
}
