package adapters

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContentFetcher_SurfacesProviderErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message": "rate limit exceeded"}`))
	}))
	defer server.Close()

	fetcher := NewContentFetcher("tavus", NewZerologWrapper())
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal("Failed to build request:", err)
	}

	_, err = fetcher.FetchContent(req)
	if err == nil {
		t.Fatal("Expected an error for a 429 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.Provider != "tavus" || apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Unexpected APIError: %+v", apiErr)
	}
	if apiErr.Detail != "rate limit exceeded" {
		t.Fatalf("Provider detail lost: %q", apiErr.Detail)
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Fatalf("Error string missing detail: %v", err)
	}
}

func TestContentFetcher_PlainTextErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	fetcher := NewContentFetcher("elevenlabs", NewZerologWrapper())
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal("Failed to build request:", err)
	}

	_, err = fetcher.FetchContent(req)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got: %v", err)
	}
	if apiErr.Detail != "upstream unavailable" {
		t.Fatalf("Expected raw body as detail, got %q", apiErr.Detail)
	}
}

func TestContentFetcher_ReturnsBodyOn2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := NewContentFetcher("gemini", NewZerologWrapper())
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal("Failed to build request:", err)
	}

	payload, err := fetcher.FetchContent(req)
	if err != nil {
		t.Fatal("FetchContent failed:", err)
	}
	if string(payload) != "payload" {
		t.Fatalf("Unexpected payload: %q", payload)
	}
}
