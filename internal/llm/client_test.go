package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClientCompleteSuccess(t *testing.T) {
	var gotBody []byte
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"こんにちは！"}}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "test-model", nil)
	text, err := client.Complete(context.Background(), "system prompt", "hello", SamplingParams{
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   500,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "こんにちは！" {
		t.Fatalf("unexpected completion text %q", text)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}

	var req struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"top_p"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.Model != "test-model" || req.Temperature != 0.7 || req.TopP != 0.9 || req.MaxTokens != 500 {
		t.Fatalf("sampling params not passed through: %+v", req)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %+v", req.Messages)
	}
}

func TestHTTPClientOmitsTopPAndUserWhenUnset(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"choices":[{"message":{"content":"Greetings Practice"}}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "test-model", nil)
	if _, err := client.Complete(context.Background(), "title prompt", "", SamplingParams{Temperature: 0.5, MaxTokens: 20}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	body := string(gotBody)
	if strings.Contains(body, "top_p") {
		t.Fatalf("top_p must be omitted when unset: %s", body)
	}
	if strings.Contains(body, `"role":"user"`) {
		t.Fatalf("user message must be omitted when empty: %s", body)
	}
}

func TestHTTPClientRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "test-model", nil)
	if _, err := client.Complete(context.Background(), "sys", "hello", SamplingParams{}); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestHTTPClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "test-model", nil)
	_, err := client.Complete(context.Background(), "sys", "hello", SamplingParams{})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", upstream.Status)
	}
}

func TestHTTPClientEmptyCompletion(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"content":""}}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, "test-key", "test-model", nil)
			if _, err := client.Complete(context.Background(), "sys", "hello", SamplingParams{}); !errors.Is(err, ErrEmptyCompletion) {
				t.Fatalf("expected ErrEmptyCompletion, got %v", err)
			}
		})
	}
}

func TestHTTPClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(server.URL, "test-key", "test-model", nil)
	_, err := client.Complete(context.Background(), "sys", "hello", SamplingParams{})
	if err == nil {
		t.Fatalf("expected network error")
	}
	var upstream *UpstreamError
	if errors.Is(err, ErrRateLimited) || errors.As(err, &upstream) {
		t.Fatalf("network failure must not classify as provider outcome: %v", err)
	}
}
