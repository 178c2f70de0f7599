package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

func geminiTestConfig(url string) *config.GeminiConfig {
	return &config.GeminiConfig{
		ApiUrl: url,
		ApiKey: "test-key",
		Model:  "gemini-1.5-flash",
	}
}

func geminiCandidate(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
}

func TestGeminiStoryGenerator_Generate(t *testing.T) {
	var body geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/models/gemini-1.5-flash:generateContent") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("Missing api key query parameter")
		}
		payload, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(payload, &body); err != nil {
			t.Error("Failed to decode request body:", err)
		}
		_ = json.NewEncoder(w).Encode(geminiCandidate("Once there was a lighthouse."))
	}))
	defer server.Close()

	generator := NewGeminiStoryGenerator(NewContentFetcher("gemini", NewZerologWrapper()), geminiTestConfig(server.URL))

	content, err := generator.Generate(context.Background(), outbound.GenerateStoryParams{
		Genre:  "adventure",
		Type:   domain.StoryTypeStory,
		Length: domain.LengthShort,
		Prompt: "A lighthouse keeper in a storm",
	})
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	if content != "Once there was a lighthouse." {
		t.Fatalf("Unexpected content: %q", content)
	}

	if len(body.Contents) != 1 || len(body.Contents[0].Parts) != 1 {
		t.Fatalf("Unexpected request shape: %+v", body)
	}
	prompt := body.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "adventure") || !strings.Contains(prompt, "A lighthouse keeper in a storm") {
		t.Fatalf("Prompt missing inputs: %q", prompt)
	}
	if body.GenerationConfig.MaxOutputTokens != defaultMaxOutputTokens {
		t.Fatalf("Unexpected token ceiling: %d", body.GenerationConfig.MaxOutputTokens)
	}
}

func TestGeminiStoryGenerator_VideoModeTightensBudget(t *testing.T) {
	var body geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(payload, &body); err != nil {
			t.Error("Failed to decode request body:", err)
		}
		_ = json.NewEncoder(w).Encode(geminiCandidate("Short narration."))
	}))
	defer server.Close()

	generator := NewGeminiStoryGenerator(NewContentFetcher("gemini", NewZerologWrapper()), geminiTestConfig(server.URL))

	_, err := generator.Generate(context.Background(), outbound.GenerateStoryParams{
		Genre:    "mystery",
		Type:     domain.StoryTypeStory,
		Length:   domain.LengthShort,
		Prompt:   "A locked room",
		ForVideo: true,
	})
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	if body.GenerationConfig.MaxOutputTokens != videoMaxOutputTokens {
		t.Fatalf("Video mode should cap tokens at %d, got %d", videoMaxOutputTokens, body.GenerationConfig.MaxOutputTokens)
	}
	if !strings.Contains(body.Contents[0].Parts[0].Text, "narration") {
		t.Fatalf("Video prompt missing narration framing: %q", body.Contents[0].Parts[0].Text)
	}
}

func TestGeminiStoryGenerator_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	generator := NewGeminiStoryGenerator(NewContentFetcher("gemini", NewZerologWrapper()), geminiTestConfig(server.URL))

	_, err := generator.Generate(context.Background(), outbound.GenerateStoryParams{
		Genre:  "fantasy",
		Type:   domain.StoryTypeStory,
		Length: domain.LengthMicro,
		Prompt: "dragons",
	})
	if err == nil {
		t.Fatal("Expected error for empty candidate list")
	}
}
