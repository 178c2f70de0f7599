package outbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

type CreateVideoParams struct {
	Script        string
	PersonaID     string
	BackgroundURL string
	CallbackURL   string
	VideoName     string
}

type Persona struct {
	PersonaID string `json:"replica_id"`
	Name      string `json:"replica_name"`
}

type AvatarVideoPort interface {
	// CreateVideo submits a talking-avatar job and returns the provider's
	// opaque video id. The job completes asynchronously; poll GetStatus.
	CreateVideo(ctx context.Context, params CreateVideoParams) (string, error)
	GetStatus(ctx context.Context, videoID string) (domain.VideoStatus, error)
	ListPersonas(ctx context.Context) ([]Persona, error)
}
