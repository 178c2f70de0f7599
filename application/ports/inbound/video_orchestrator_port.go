package inbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

// VideoOrchestratorPort runs the speech -> upload -> submit chain for one
// story and returns as soon as the provider accepts the job.
type VideoOrchestratorPort interface {
	Generate(ctx context.Context, request domain.VideoGenerationRequest) (domain.VideoGenerationResult, error)
}
