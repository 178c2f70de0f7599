package outbound

import (
	"context"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

type GenerateAudioParams struct {
	Text          string
	VoiceSettings domain.VoiceSettings
}

type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

type AudioGeneratorPort interface {
	Generate(ctx context.Context, params GenerateAudioParams) ([]byte, error)
	ListVoices(ctx context.Context) ([]Voice, error)
}
