package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAnthropicClientMissingKey(t *testing.T) {
	_, err := NewAnthropicClient("")
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestCompleteSendsMessageRequest(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody messageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "hello back"}},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	completion, err := client.Complete(context.Background(), "hello", 1000)
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/v1/messages" {
		t.Errorf("path = %q, want /v1/messages", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	if gotBody.Model != DefaultModel {
		t.Errorf("model = %q, want %q", gotBody.Model, DefaultModel)
	}
	if gotBody.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" || gotBody.Messages[0].Content != "hello" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
	if completion.Text != "hello back" {
		t.Errorf("text = %q", completion.Text)
	}
}

func TestCompleteNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("bad-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Complete(context.Background(), "hello", 1000)
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if tErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", tErr.StatusCode)
	}
	if tErr.Message != "invalid x-api-key" {
		t.Errorf("message = %q", tErr.Message)
	}
}

func TestCompleteNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client, err := NewAnthropicClient("key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Complete(context.Background(), "hello", 1000)
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if tErr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for network failure", tErr.StatusCode)
	}
}

func TestCompleteModelOverride(t *testing.T) {
	var gotBody messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("key", WithBaseURL(srv.URL), WithModel("claude-test"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Complete(context.Background(), "hello", 100); err != nil {
		t.Fatal(err)
	}
	if gotBody.Model != "claude-test" {
		t.Errorf("model = %q, want claude-test", gotBody.Model)
	}
}
