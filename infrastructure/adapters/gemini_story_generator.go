package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

// Output token ceiling when generating narration scripts; keeps the
// speech and video bills down at the source.
const videoMaxOutputTokens = 300

const defaultMaxOutputTokens = 2048

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var videoLengthHints = map[domain.StoryLength]string{
	domain.LengthMicro:  "30-50 words",
	domain.LengthShort:  "50-100 words",
	domain.LengthMedium: "100-150 words",
	domain.LengthLong:   "150-200 words",
}

var lengthHints = map[domain.StoryLength]string{
	domain.LengthMicro:  "50-100 words",
	domain.LengthShort:  "200-500 words",
	domain.LengthMedium: "500-1000 words",
	domain.LengthLong:   "1000-2000 words",
}

type geminiStoryGenerator struct {
	ContentFetcher
	geminiConfig *config.GeminiConfig
}

func NewGeminiStoryGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig) outbound.StoryGeneratorPort {
	return &geminiStoryGenerator{
		ContentFetcher: contentFetcher,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiStoryGenerator) Generate(ctx context.Context, params outbound.GenerateStoryParams) (string, error) {
	req, err := g.getRequest(ctx, params)
	if err != nil {
		return "", err
	}

	payload, err := g.FetchContent(req)
	if err != nil {
		return "", err
	}

	var response geminiResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}

func (g *geminiStoryGenerator) getRequest(ctx context.Context, params outbound.GenerateStoryParams) (*http.Request, error) {
	maxTokens := defaultMaxOutputTokens
	hint := lengthHints[params.Length]
	systemPrompt := fmt.Sprintf("You are a creative AI storyteller. Generate a %s in the %s genre with approximately %s. "+
		"Make it engaging, well-structured, and appropriate for all audiences.", params.Type, params.Genre, hint)
	if params.ForVideo {
		maxTokens = videoMaxOutputTokens
		hint = videoLengthHints[params.Length]
		systemPrompt = fmt.Sprintf("You are a creative AI storyteller. Generate a concise, engaging %s in the %s genre with approximately %s. "+
			"Make it perfect for video narration - clear, dramatic, and suitable for voice-over. "+
			"Focus on vivid imagery and strong narrative flow.", params.Type, params.Genre, hint)
	}

	userPrompt := params.Prompt
	if params.Title != "" {
		userPrompt = fmt.Sprintf("%s Title: %q", params.Prompt, params.Title)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: systemPrompt + "\n\n" + userPrompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.8,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: maxTokens,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.geminiConfig.ApiUrl, g.geminiConfig.Model, g.geminiConfig.ApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
