package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key in query, got %q", r.URL.Query().Get("key"))
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "say hi" {
			t.Errorf("unexpected request contents: %+v", req.Contents)
		}
		if req.GenerationConfig.MaxOutputTokens != 50 {
			t.Errorf("expected maxOutputTokens 50, got %d", req.GenerationConfig.MaxOutputTokens)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "hi there"}}}},
			},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	out, err := c.Generate(context.Background(), "gemini-2.0-flash", "say hi", GenConfig{MaxOutputTokens: 50, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "hi there" {
		t.Errorf("expected %q, got %q", "hi there", out)
	}
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "status": "RESOURCE_EXHAUSTED", "message": "quota exceeded"},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.Generate(context.Background(), "gemini-2.0-flash", "say hi", GenConfig{})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected error to carry API message, got %v", err)
	}
}

func TestGenerate_NoCredentials(t *testing.T) {
	c := NewClient("")
	if c.HasCredentials() {
		t.Error("expected HasCredentials false for empty key")
	}
	if _, err := c.Generate(context.Background(), "m", "p", GenConfig{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-embedding-001:embedContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TaskType != "RETRIEVAL_QUERY" {
			t.Errorf("expected taskType RETRIEVAL_QUERY, got %q", req.TaskType)
		}
		if req.OutputDimensionality != 3 {
			t.Errorf("expected outputDimensionality 3, got %d", req.OutputDimensionality)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float64{0.1, 0.2, 0.3}},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	vec, err := c.Embed(context.Background(), "gemini-embedding-001", "hello", "RETRIEVAL_QUERY", 3)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vec))
	}
	if vec[1] != 0.2 {
		t.Errorf("vec[1] = %g", vec[1])
	}
}
