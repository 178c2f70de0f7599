package outbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

type StoryRepositoryPort interface {
	Save(ctx context.Context, story domain.Story) error
	Get(ctx context.Context, storyID string) (domain.Story, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Story, error)
	ListPublic(ctx context.Context, limit int) ([]domain.Story, error)
	// AttachVideoJob records the uploaded audio URL and the job-pending
	// marker in one write. Called exactly once per generation, by the
	// orchestrator, before tracking starts.
	AttachVideoJob(ctx context.Context, storyID, audioURL, videoMarker string) error
	// ResolveVideoURL replaces the job marker with the playable URL. The
	// progress tracker is the only caller, so the marker and the resolved
	// URL never race each other.
	ResolveVideoURL(ctx context.Context, storyID, videoURL string) error
	IncrementViews(ctx context.Context, storyID string) error
}
