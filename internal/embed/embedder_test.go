package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
)

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(Config{Provider: "pinecone"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNew_GeminiRequiresClient(t *testing.T) {
	if _, err := New(Config{Provider: "gemini"}); err == nil {
		t.Fatal("expected error without gemini client")
	}
}

func TestNew_OpenAIRequiresKey(t *testing.T) {
	if _, err := New(Config{Provider: "openai"}); err == nil {
		t.Fatal("expected error without openai key")
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(Config{Provider: "gemini", GeminiClient: gemini.NewClient("k")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Dimensions() != 3072 {
		t.Errorf("expected default gemini dims 3072, got %d", e.Dimensions())
	}

	e, err = New(Config{Provider: "openai", OpenAIAPIKey: "k"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Dimensions() != 1536 {
		t.Errorf("expected default openai dims 1536, got %d", e.Dimensions())
	}
}

func TestGeminiEmbedder_TaskTypes(t *testing.T) {
	var taskTypes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TaskType string `json:"taskType"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		taskTypes = append(taskTypes, req.TaskType)
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float64{0.5, 0.5}},
		})
	}))
	defer srv.Close()

	e, err := New(Config{
		Provider:     "gemini",
		Model:        "gemini-embedding-001",
		Dimensions:   2,
		GeminiClient: gemini.NewClientWithBaseURL("k", srv.URL),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := e.EmbedQuery(context.Background(), "q"); err != nil {
		t.Fatalf("EmbedQuery: %v", err)
	}
	if _, err := e.EmbedDocument(context.Background(), "d"); err != nil {
		t.Fatalf("EmbedDocument: %v", err)
	}

	if len(taskTypes) != 2 || taskTypes[0] != "RETRIEVAL_QUERY" || taskTypes[1] != "RETRIEVAL_DOCUMENT" {
		t.Errorf("unexpected task types %v", taskTypes)
	}
}
