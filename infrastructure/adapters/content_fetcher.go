package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
)

// APIError carries a provider's non-2xx response so callers can surface
// the provider's own error detail verbatim.
type APIError struct {
	Provider   string
	StatusCode int
	Status     string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s API error: %d %s", e.Provider, e.StatusCode, e.Status)
	}
	return fmt.Sprintf("%s API error: %d %s - %s", e.Provider, e.StatusCode, e.Status, e.Detail)
}

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

type contentFetcher struct {
	provider string
	client   *http.Client
	logger   outbound.LoggerPort
}

// NewContentFetcher builds the HTTP round-tripper shared by the provider
// adapters. The provider name tags every error it produces.
func NewContentFetcher(provider string, logger outbound.LoggerPort) ContentFetcher {
	return &contentFetcher{
		provider: provider,
		client:   &http.Client{},
		logger:   logger,
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"provider": c.provider,
			"method":   req.Method,
			"URL":      req.URL.String(),
		})
		return nil, fmt.Errorf("%s request failed: %w", c.provider, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.ErrorWithFields(err, "Failed to close the response body", map[string]interface{}{
				"provider": c.provider,
				"URL":      req.URL.String(),
			})
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"provider": c.provider,
			"URL":      req.URL.String(),
		})
		return nil, fmt.Errorf("%s response read failed: %w", c.provider, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{
			Provider:   c.provider,
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Detail:     extractErrorDetail(payload),
		}
		c.logger.ErrorWithFields(apiErr, "HTTP request returned non-2xx status code", map[string]interface{}{
			"provider": c.provider,
			"method":   req.Method,
			"URL":      req.URL.String(),
			"status":   res.StatusCode,
		})
		return nil, apiErr
	}

	return payload, nil
}

// extractErrorDetail pulls the human-readable message out of a provider
// error body, JSON or plain text.
func extractErrorDetail(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		switch {
		case body.Error != "":
			return body.Error
		case body.Message != "":
			return body.Message
		case body.Detail != "":
			return body.Detail
		}
	}
	return string(payload)
}
