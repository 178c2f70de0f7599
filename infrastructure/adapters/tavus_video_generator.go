package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

type TavusCreateVideoRequest struct {
	ReplicaId     string `json:"replica_id"`
	Script        string `json:"script"`
	BackgroundUrl string `json:"background_url,omitempty"`
	CallbackUrl   string `json:"callback_url,omitempty"`
	VideoName     string `json:"video_name"`
}

type tavusCreateVideoResponse struct {
	VideoId string `json:"video_id"`
}

type tavusVideoStatusResponse struct {
	VideoId     string `json:"video_id"`
	Status      string `json:"status"`
	DownloadUrl string `json:"download_url"`
	VideoUrl    string `json:"video_url"`
	CreatedAt   string `json:"created_at"`
}

type tavusReplicasResponse struct {
	Replicas []outbound.Persona `json:"replicas"`
}

type tavusVideoGenerator struct {
	ContentFetcher
	tavusConfig *config.TavusConfig
	now         func() time.Time
}

func NewTavusVideoGenerator(contentFetcher ContentFetcher, tavusConfig *config.TavusConfig) outbound.AvatarVideoPort {
	return &tavusVideoGenerator{
		ContentFetcher: contentFetcher,
		tavusConfig:    tavusConfig,
		now:            time.Now,
	}
}

func (t *tavusVideoGenerator) CreateVideo(ctx context.Context, params outbound.CreateVideoParams) (string, error) {
	if params.PersonaID == "" {
		return "", fmt.Errorf("tavus: persona id is required for video generation")
	}

	videoName := params.VideoName
	if videoName == "" {
		videoName = fmt.Sprintf("storybuilder-%d", t.now().UnixMilli())
	}
	callbackURL := params.CallbackURL
	if callbackURL == "" {
		callbackURL = t.tavusConfig.CallbackUrl
	}

	reqBody := TavusCreateVideoRequest{
		ReplicaId:     params.PersonaID,
		Script:        params.Script,
		BackgroundUrl: params.BackgroundURL,
		CallbackUrl:   callbackURL,
		VideoName:     videoName,
	}
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal tavus request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tavusConfig.ApiUrl+"/v2/videos", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("create tavus request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("x-api-key", t.tavusConfig.ApiKey)

	payload, err := t.FetchContent(req)
	if err != nil {
		return "", err
	}

	var response tavusCreateVideoResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return "", fmt.Errorf("parse tavus response: %w", err)
	}
	if response.VideoId == "" {
		return "", fmt.Errorf("tavus returned no video id")
	}
	return response.VideoId, nil
}

func (t *tavusVideoGenerator) GetStatus(ctx context.Context, videoID string) (domain.VideoStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.tavusConfig.ApiUrl+"/v2/videos/"+videoID, nil)
	if err != nil {
		return domain.VideoStatus{}, fmt.Errorf("create tavus status request: %w", err)
	}
	req.Header.Add("x-api-key", t.tavusConfig.ApiKey)

	payload, err := t.FetchContent(req)
	if err != nil {
		return domain.VideoStatus{}, err
	}

	var response tavusVideoStatusResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return domain.VideoStatus{}, fmt.Errorf("parse tavus status response: %w", err)
	}

	status := domain.VideoStatus{
		VideoID:     response.VideoId,
		Status:      response.Status,
		DownloadURL: response.DownloadUrl,
		VideoURL:    response.VideoUrl,
	}
	if response.CreatedAt != "" {
		if createdAt, err := time.Parse(time.RFC3339, response.CreatedAt); err == nil {
			status.CreatedAt = createdAt
		}
	}
	return status, nil
}

func (t *tavusVideoGenerator) ListPersonas(ctx context.Context) ([]outbound.Persona, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.tavusConfig.ApiUrl+"/v2/replicas", nil)
	if err != nil {
		return nil, fmt.Errorf("create tavus replicas request: %w", err)
	}
	req.Header.Add("x-api-key", t.tavusConfig.ApiKey)

	payload, err := t.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var response tavusReplicasResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, fmt.Errorf("parse tavus replicas response: %w", err)
	}
	return response.Replicas, nil
}
