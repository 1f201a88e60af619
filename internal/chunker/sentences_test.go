package chunker

import (
	"strings"
	"testing"
)

func TestSplitSentences_PunctuationBoundaries(t *testing.T) {
	text := "First sentence. Second one! Third here? Fourth without end"
	got := SplitSentences(text)
	want := []string{"First sentence.", "Second one!", "Third here?", "Fourth without end"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitSentences_NoBoundaryInsideAbbrevRun(t *testing.T) {
	// A period not followed by whitespace does not end a sentence.
	got := SplitSentences("Visit www.dbs.com.sg for details. Thank you.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Visit www.dbs.com.sg for details." {
		t.Errorf("unexpected first sentence: %q", got[0])
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if got := SplitSentences(""); len(got) != 0 {
		t.Errorf("expected no sentences, got %v", got)
	}
	if got := SplitSentences("   "); len(got) != 0 {
		t.Errorf("expected no sentences for whitespace, got %v", got)
	}
}

// uniformText builds n sentences of exactly 49 characters joined by spaces.
func uniformText(n int) string {
	sentence := strings.Repeat("a", 45) + " ok."
	parts := make([]string, n)
	for i := range parts {
		parts[i] = sentence
	}
	return strings.Join(parts, " ")
}

func TestPackSentences_OverlapAndSizes(t *testing.T) {
	text := uniformText(50) // 2499 characters
	chunks := PackSentences(text, 1000, 150, 50)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	// Non-final chunks stay within the size target.
	for i, c := range chunks[:len(chunks)-1] {
		if len(c) > 1000 {
			t.Errorf("chunk %d: length %d exceeds max 1000", i, len(c))
		}
		if !strings.HasSuffix(c, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, c[len(c)-10:])
		}
	}

	// Each subsequent chunk opens with text carried over from the prior
	// chunk's tail.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		opening := chunks[i][:100]
		if !strings.Contains(prev[len(prev)-200:], opening) {
			t.Errorf("chunk %d does not begin with overlap from chunk %d", i, i-1)
		}
	}

	// Every chunk respects the minimum.
	for i, c := range chunks {
		if len(c) < 50 {
			t.Errorf("chunk %d: length %d below min 50", i, len(c))
		}
	}
}

func TestPackSentences_SingleOversizedSentence(t *testing.T) {
	// A lone sentence longer than maxSize is emitted whole, never split.
	long := strings.Repeat("b", 1500) + "."
	chunks := PackSentences(long, 1000, 150, 50)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0]) != 1501 {
		t.Errorf("expected the oversized sentence intact (1501 chars), got %d", len(chunks[0]))
	}
}

func TestPackSentences_OversizedSentenceBetweenOthers(t *testing.T) {
	long := strings.Repeat("c", 1200) + "."
	text := "A short opener sentence that has enough length. " + long + " A short closer sentence that also has length."
	chunks := PackSentences(text, 1000, 150, 50)

	// The opener flushes when the oversized sentence arrives; only the chunk
	// carrying the oversized sentence may exceed the max.
	for i, c := range chunks {
		if len(c) > 1000 && !strings.Contains(c, "ccc") {
			t.Errorf("chunk %d exceeds max without the oversized sentence", i)
		}
	}
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
}

func TestPackSentences_MinSizeFilter(t *testing.T) {
	chunks := PackSentences("Tiny bit.", 1000, 150, 50)
	if len(chunks) != 0 {
		t.Errorf("expected chunk below minSize to be dropped, got %v", chunks)
	}
}

func TestPackSentences_Empty(t *testing.T) {
	if got := PackSentences("", 1000, 150, 50); len(got) != 0 {
		t.Errorf("expected no chunks for empty text, got %v", got)
	}
}
