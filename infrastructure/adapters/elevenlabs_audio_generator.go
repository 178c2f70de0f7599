package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/rs/zerolog/log"
)

type ElevenLabsRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type elevenLabsVoicesResponse struct {
	Voices []outbound.Voice `json:"voices"`
}

type elevenLabsAudioGenerator struct {
	ContentFetcher
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewElevenLabsAudioGenerator(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig) outbound.AudioGeneratorPort {
	return &elevenLabsAudioGenerator{
		ContentFetcher:   contentFetcher,
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (a *elevenLabsAudioGenerator) Generate(ctx context.Context, params outbound.GenerateAudioParams) ([]byte, error) {
	req, err := a.getRequest(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("action", "Fetching Audio").Msg("Failed to construct the HTTP request for audio fetching")
		return nil, err
	}

	audio, err := a.FetchContent(req)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("elevenlabs returned an empty audio payload")
	}
	return audio, nil
}

func (a *elevenLabsAudioGenerator) ListVoices(ctx context.Context) ([]outbound.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.elevenLabsConfig.ApiUrl+"/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("create voices request: %w", err)
	}
	req.Header.Add("xi-api-key", a.elevenLabsConfig.ApiKey)

	payload, err := a.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var response elevenLabsVoicesResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, fmt.Errorf("parse voices response: %w", err)
	}
	return response.Voices, nil
}

func (a *elevenLabsAudioGenerator) getRequest(ctx context.Context, params outbound.GenerateAudioParams) (*http.Request, error) {
	settings := params.VoiceSettings
	voiceID := settings.VoiceID
	if voiceID == "" {
		voiceID = a.elevenLabsConfig.DefaultVoiceId
	}
	if settings.Stability == 0 {
		settings.Stability = a.elevenLabsConfig.Stability
	}
	if settings.SimilarityBoost == 0 {
		settings.SimilarityBoost = a.elevenLabsConfig.SimilarityBoost
	}

	reqBody := ElevenLabsRequest{
		Text:    params.Text,
		ModelId: a.elevenLabsConfig.ModelId,
		VoiceSettings: VoiceSettings{
			Stability:       settings.Stability,
			SimilarityBoost: settings.SimilarityBoost,
			Style:           settings.Style,
			UseSpeakerBoost: settings.UseSpeakerBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		log.Error().Err(err).Str("action", "Marshalling JSON").Interface("ElevenLabsRequest", reqBody).Msg("Failed to marshal the request body for ElevenLabs API")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.elevenLabsConfig.ApiUrl+"/text-to-speech/"+voiceID, bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Error().Err(err).Str("action", "Creating HTTP Request").Str("URL", a.elevenLabsConfig.ApiUrl+"/text-to-speech/"+voiceID).Msg("Failed to create the HTTP POST request")
		return nil, err
	}

	reqHeaders := map[string]string{
		"Accept":       "audio/mpeg",
		"xi-api-key":   a.elevenLabsConfig.ApiKey,
		"Content-Type": "application/json",
	}
	for key, value := range reqHeaders {
		req.Header.Add(key, value)
	}

	return req, nil
}
