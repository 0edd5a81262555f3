package ingest

import (
	"strings"
	"testing"
)

func TestSplitText_ShortDocumentSingleChunk(t *testing.T) {
	chunks := SplitText("a short note", 200, 10)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "a short note" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplitText_Empty(t *testing.T) {
	if chunks := SplitText("", 200, 10); chunks != nil {
		t.Errorf("expected nil for empty text, got %v", chunks)
	}
	if chunks := SplitText("   \n  ", 200, 10); chunks != nil {
		t.Errorf("expected nil for whitespace-only text, got %v", chunks)
	}
}

func TestSplitText_RespectsSize(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 50) // ~1350 chars
	chunks := SplitText(text, 200, 10)

	if len(chunks) < 6 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 200 {
			t.Errorf("chunk %d exceeds size: %d chars", i, len(c))
		}
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestSplitText_OverlapCarriesContext(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 60)
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// The tail of each chunk should reappear at the head of the next.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-5:]
		if !strings.Contains(chunks[i][:min(30, len(chunks[i]))], strings.TrimSpace(tail)) {
			t.Errorf("chunk %d does not overlap with its predecessor", i)
		}
	}
}

func TestSplitText_PrefersWordBoundaries(t *testing.T) {
	text := strings.Repeat("boundary ", 100)
	chunks := SplitText(text, 50, 5)
	for i, c := range chunks {
		if strings.HasSuffix(c, "bound") || strings.HasPrefix(c, "ary") {
			t.Errorf("chunk %d split mid-word: %q", i, c)
		}
	}
}

func TestSplitText_NoWhitespaceFallsBackToHardCut(t *testing.T) {
	text := strings.Repeat("x", 450)
	chunks := SplitText(text, 200, 0)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 450 chars at size 200, got %d", len(chunks))
	}
	if len(chunks[0]) != 200 || len(chunks[1]) != 200 || len(chunks[2]) != 50 {
		t.Errorf("chunk lengths = %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestSplitText_InvalidOverlapIgnored(t *testing.T) {
	text := strings.Repeat("y", 300)
	chunks := SplitText(text, 100, 100) // overlap >= size would never advance
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks with overlap disabled, got %d", len(chunks))
	}
}
