package inbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

// LibraryEntry decorates a story with the decoded state of its video field.
type LibraryEntry struct {
	domain.Story
	VideoID    string `json:"video_id,omitempty"`
	HasVideo   bool   `json:"has_video"`
	HasAudio   bool   `json:"has_audio"`
	VideoStyle string `json:"video_style"`
}

type VideoLibraryPort interface {
	List(ctx context.Context, authorID string) ([]LibraryEntry, error)
	// RefreshPending checks every job-marker story of the author against
	// the provider and resolves markers whose videos finished. Returns the
	// number of stories resolved.
	RefreshPending(ctx context.Context, authorID string) (int, error)
}
