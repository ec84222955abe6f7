package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProviderGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Expected path /api/chat, got %s", r.URL.Path)
		}

		var req ollamaChatReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(ollamaChatResp{
			Message:         ollamaMsg{Role: "assistant", Content: "hi there"},
			PromptEvalCount: 12,
			EvalCount:       8,
		})
	}))
	defer ts.Close()

	p := NewOllamaProvider(ts.URL, "llama3:latest")

	result, err := p.Generate(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Content != "hi there" {
		t.Errorf("Expected %q, got %q", "hi there", result.Content)
	}
	if result.TokensUsed != 20 {
		t.Errorf("Expected 20 tokens, got %d", result.TokensUsed)
	}
}

func TestOllamaProviderAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaChatResp{Error: "model not found"})
	}))
	defer ts.Close()

	p := NewOllamaProvider(ts.URL, "missing:model")

	_, err := p.Generate(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("Expected model not found error, got %v", err)
	}
}

func TestOllamaProviderHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	p := NewOllamaProvider(ts.URL, "llama3:latest")

	_, err := p.Generate(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err == nil {
		t.Error("Expected error on 500 response")
	}
}

func TestOllamaProviderDefaults(t *testing.T) {
	p := NewOllamaProvider("", "")

	if p.BaseURL != "http://localhost:11434" {
		t.Errorf("Unexpected default base URL: %s", p.BaseURL)
	}
	if p.Model != "llama3:latest" {
		t.Errorf("Unexpected default model: %s", p.Model)
	}
	if p.Name() != "ollama/llama3:latest" {
		t.Errorf("Unexpected name: %s", p.Name())
	}
}
