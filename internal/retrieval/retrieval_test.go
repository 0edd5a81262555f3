package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/store"
)

type fakeEmbedder struct {
	err     error
	queries []string
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, text)
	return []float64{float64(len(text))}, nil
}

type fakeSearcher struct {
	batches [][]store.Result
	err     error
	calls   int
}

func (f *fakeSearcher) Search(_ context.Context, _ []float64, _ int) ([]store.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []store.Result
	if f.calls < len(f.batches) {
		out = f.batches[f.calls]
	}
	f.calls++
	return out, nil
}

type fakeRecents struct {
	out string
	err error
}

func (f *fakeRecents) Recent(context.Context, []chat.Message) (string, error) {
	return f.out, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func history() []chat.Message {
	return []chat.Message{{Role: "Alice", Message: "What did we decide about the rollout?"}}
}

func TestRetrieve_MergesAndDeduplicates(t *testing.T) {
	searcher := &fakeSearcher{batches: [][]store.Result{
		{
			{Text: "rollout starts Monday", Source: "notes"},
			{Text: "alice owns infra", Source: "crm"},
		},
		{
			{Text: "rollout starts Monday", Source: "notes"}, // duplicate text
			{Text: "budget approved in May", Source: "notes"},
		},
	}}
	svc := NewService(&fakeEmbedder{}, searcher, &fakeRecents{out: "rollout planning"}, 5, testLogger())

	out := svc.Retrieve(context.Background(), history())

	if searcher.calls != 2 {
		t.Fatalf("expected 2 searches, got %d", searcher.calls)
	}
	if got := strings.Count(out, "rollout starts Monday"); got != 1 {
		t.Errorf("duplicate chunk must appear exactly once, got %d", got)
	}
	for _, want := range []string{"alice owns infra", "budget approved in May", "--- Document (crm) ---"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRetrieve_NoSecondQueryWhenFirstEmpty(t *testing.T) {
	searcher := &fakeSearcher{batches: [][]store.Result{{}}}
	svc := NewService(&fakeEmbedder{}, searcher, &fakeRecents{out: "summary"}, 5, testLogger())

	out := svc.Retrieve(context.Background(), history())

	if out != NoContextFound {
		t.Errorf("expected %q, got %q", NoContextFound, out)
	}
	if searcher.calls != 1 {
		t.Errorf("expected 1 search when first pass is empty, got %d", searcher.calls)
	}
}

func TestRetrieve_EmbeddingFailureReturnsSentinel(t *testing.T) {
	svc := NewService(&fakeEmbedder{err: errors.New("embed down")}, &fakeSearcher{}, nil, 5, testLogger())

	if out := svc.Retrieve(context.Background(), history()); out != RetrievalError {
		t.Errorf("expected %q, got %q", RetrievalError, out)
	}
}

func TestRetrieve_SearchFailureReturnsSentinel(t *testing.T) {
	svc := NewService(&fakeEmbedder{}, &fakeSearcher{err: errors.New("store down")}, nil, 5, testLogger())

	if out := svc.Retrieve(context.Background(), history()); out != RetrievalError {
		t.Errorf("expected %q, got %q", RetrievalError, out)
	}
}

func TestRetrieve_RecentSummaryFailureKeepsFirstPass(t *testing.T) {
	searcher := &fakeSearcher{batches: [][]store.Result{
		{{Text: "first pass hit", Source: "notes"}},
	}}
	svc := NewService(&fakeEmbedder{}, searcher, &fakeRecents{err: errors.New("model down")}, 5, testLogger())

	out := svc.Retrieve(context.Background(), history())
	if !strings.Contains(out, "first pass hit") {
		t.Errorf("first-pass results must survive summary failure, got %q", out)
	}
	if searcher.calls != 1 {
		t.Errorf("expected no second search after summary failure, got %d", searcher.calls)
	}
}

func TestRetrieve_EmptyMessages(t *testing.T) {
	svc := NewService(&fakeEmbedder{}, &fakeSearcher{}, nil, 5, testLogger())
	if out := svc.Retrieve(context.Background(), nil); out != NoContextFound {
		t.Errorf("expected %q, got %q", NoContextFound, out)
	}
}

type fakeModel struct {
	output      string
	err         error
	credentials bool
}

func (f *fakeModel) Generate(context.Context, string, string, gemini.GenConfig) (string, error) {
	return f.output, f.err
}

func (f *fakeModel) HasCredentials() bool { return f.credentials }

func TestSummarize_ReturnsDigest(t *testing.T) {
	s := NewSummarizer(&fakeModel{output: " a tight digest ", credentials: true}, "pow", testLogger())
	if out := s.Summarize(context.Background(), "ctx", history()); out != "a tight digest" {
		t.Errorf("unexpected digest %q", out)
	}
}

func TestSummarize_SentinelOnFailure(t *testing.T) {
	s := NewSummarizer(&fakeModel{err: errors.New("down"), credentials: true}, "pow", testLogger())
	if out := s.Summarize(context.Background(), "ctx", history()); out != SummaryFailed {
		t.Errorf("expected %q, got %q", SummaryFailed, out)
	}

	s = NewSummarizer(&fakeModel{credentials: false}, "pow", testLogger())
	if out := s.Summarize(context.Background(), "ctx", history()); out != SummaryFailed {
		t.Errorf("expected %q without credentials, got %q", SummaryFailed, out)
	}
}

func TestRecent_ErrorsPropagate(t *testing.T) {
	s := NewSummarizer(&fakeModel{err: errors.New("down"), credentials: true}, "pow", testLogger())
	if _, err := s.Recent(context.Background(), history()); err == nil {
		t.Fatal("expected error from Recent on model failure")
	}

	s = NewSummarizer(&fakeModel{output: "topics", credentials: true}, "pow", testLogger())
	out, err := s.Recent(context.Background(), history())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if out != "topics" {
		t.Errorf("unexpected summary %q", out)
	}
}
