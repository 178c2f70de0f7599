package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

func elevenLabsTestConfig(url string) *config.ElevenLabsConfig {
	return &config.ElevenLabsConfig{
		ApiUrl:          url,
		ApiKey:          "test-key",
		ModelId:         "eleven_monolingual_v1",
		DefaultVoiceId:  "voice-default",
		Stability:       0.5,
		SimilarityBoost: 0.75,
	}
}

func TestElevenLabsAudioGenerator_Generate(t *testing.T) {
	var received ElevenLabsRequest
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Error("Missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Error("Failed to decode request body:", err)
		}
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	generator := NewElevenLabsAudioGenerator(NewContentFetcher("elevenlabs", NewZerologWrapper()), elevenLabsTestConfig(server.URL))

	audio, err := generator.Generate(context.Background(), outbound.GenerateAudioParams{
		Text: "Once upon a time.",
		VoiceSettings: domain.VoiceSettings{
			Style:           0.2,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("Unexpected audio payload: %q", audio)
	}

	if path != "/text-to-speech/voice-default" {
		t.Fatalf("Default voice not applied: %s", path)
	}
	if received.ModelId != "eleven_monolingual_v1" || received.Text != "Once upon a time." {
		t.Fatalf("Request body mismatch: %+v", received)
	}
	// Zero-valued tuning fields fall back to the configured defaults.
	if received.VoiceSettings.Stability != 0.5 || received.VoiceSettings.SimilarityBoost != 0.75 {
		t.Fatalf("Defaults not applied: %+v", received.VoiceSettings)
	}
	if received.VoiceSettings.Style != 0.2 || !received.VoiceSettings.UseSpeakerBoost {
		t.Fatalf("Explicit settings lost: %+v", received.VoiceSettings)
	}
}

func TestElevenLabsAudioGenerator_EmptyPayloadIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	generator := NewElevenLabsAudioGenerator(NewContentFetcher("elevenlabs", NewZerologWrapper()), elevenLabsTestConfig(server.URL))

	if _, err := generator.Generate(context.Background(), outbound.GenerateAudioParams{Text: "hello"}); err == nil {
		t.Fatal("Expected error for empty audio payload")
	}
}

func TestElevenLabsAudioGenerator_ProviderErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid api key"}`))
	}))
	defer server.Close()

	generator := NewElevenLabsAudioGenerator(NewContentFetcher("elevenlabs", NewZerologWrapper()), elevenLabsTestConfig(server.URL))

	_, err := generator.Generate(context.Background(), outbound.GenerateAudioParams{Text: "hello"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got: %v", err)
	}
	if apiErr.Detail != "invalid api key" {
		t.Fatalf("Provider detail lost: %q", apiErr.Detail)
	}
}

func TestElevenLabsAudioGenerator_ListVoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voices" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"voices": []map[string]string{
				{"voice_id": "voice-1", "name": "Rachel"},
			},
		})
	}))
	defer server.Close()

	generator := NewElevenLabsAudioGenerator(NewContentFetcher("elevenlabs", NewZerologWrapper()), elevenLabsTestConfig(server.URL))

	voices, err := generator.ListVoices(context.Background())
	if err != nil {
		t.Fatal("ListVoices failed:", err)
	}
	if len(voices) != 1 || voices[0].VoiceID != "voice-1" || voices[0].Name != "Rachel" {
		t.Fatalf("Unexpected voices: %+v", voices)
	}
}
