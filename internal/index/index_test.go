package index

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/iannpc/DBS-Chatbot/internal/kb"
)

func testChunks() []kb.Chunk {
	a := &kb.ArticleRecord{
		URL:      "https://www.dbs.com.sg/personal/support/paynow.html",
		Title:    "PayNow FAQ",
		Category: "Banking - PayNow",
	}
	faqMeta := kb.NewMetadata(a, kb.ChunkFAQ)
	faqMeta["question"] = "What is PayNow?"

	b := &kb.ArticleRecord{
		URL:      "https://www.dbs.com.sg/personal/support/card-activation.html",
		Title:    "Card Activation",
		Category: "Cards",
	}

	return []kb.Chunk{
		{
			Content:  "[Banking - PayNow] PayNow FAQ\nQ: What is PayNow?\nA: PayNow is a funds transfer service linked to your mobile number.",
			Type:     kb.ChunkFAQ,
			Metadata: faqMeta,
		},
		{
			Content:  "[Cards] Card Activation\nHow to (step-by-step):\nStep 1: Log in to digibank.\nStep 2: Select Card Activation.",
			Type:     kb.ChunkSteps,
			Metadata: kb.NewMetadata(b, kb.ChunkSteps),
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("open memory index: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_AddAndSearch(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(testChunks()); err != nil {
		t.Fatalf("add: %v", err)
	}

	count, err := store.DocCount()
	if err != nil {
		t.Fatalf("doc count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 docs, got %d", count)
	}

	results, err := store.Search(context.Background(), "PayNow transfer", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected hits for PayNow query")
	}

	top := results[0].Doc
	if top.URL != "https://www.dbs.com.sg/personal/support/paynow.html" {
		t.Errorf("top hit url: got %q", top.URL)
	}
	if top.Title != "PayNow FAQ" || top.Category != "Banking - PayNow" {
		t.Errorf("top hit metadata: %+v", top)
	}
	if top.ChunkType != "faq" || top.Question != "What is PayNow?" {
		t.Errorf("top hit chunk fields: %+v", top)
	}
	if !strings.Contains(top.Content, "funds transfer service") {
		t.Errorf("top hit content missing body: %q", top.Content)
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score, got %f", results[0].Score)
	}
}

func TestStore_SearchSizeLimit(t *testing.T) {
	store := newTestStore(t)

	a := &kb.ArticleRecord{URL: "https://example.test/a", Title: "T", Category: "C"}
	var chunks []kb.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, kb.Chunk{
			Content:  fmt.Sprintf("[C] T\nactivation guide number %d", i),
			Type:     kb.ChunkText,
			Metadata: kb.NewMetadata(a, kb.ChunkText),
		})
	}
	if err := store.Add(chunks); err != nil {
		t.Fatalf("add: %v", err)
	}

	results, err := store.Search(context.Background(), "activation guide", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestStore_DuplicateURLAndTypeGetDistinctIDs(t *testing.T) {
	store := newTestStore(t)

	a := &kb.ArticleRecord{URL: "https://example.test/dup", Title: "T", Category: "C"}
	chunks := []kb.Chunk{
		{Content: "[C] T\nfirst section chunk about fees", Type: kb.ChunkSection, Metadata: kb.NewMetadata(a, kb.ChunkSection)},
		{Content: "[C] T\nsecond section chunk about fees", Type: kb.ChunkSection, Metadata: kb.NewMetadata(a, kb.ChunkSection)},
	}
	if err := store.Add(chunks); err != nil {
		t.Fatalf("add: %v", err)
	}

	count, err := store.DocCount()
	if err != nil {
		t.Fatalf("doc count: %v", err)
	}
	if count != 2 {
		t.Errorf("duplicate url+type overwrote a document: count %d", count)
	}
}

func TestFormatContext(t *testing.T) {
	results := []Result{
		{Doc: Doc{Title: "PayNow FAQ", Content: "Q: What is PayNow?\nA: A transfer service.", Source: "https://example.test/a"}},
		{Doc: Doc{Title: "Card Activation", Content: "Step 1: Log in.", Source: "https://example.test/b"}},
	}

	got := FormatContext(results)
	want := "[Source: PayNow FAQ]\nQ: What is PayNow?\nA: A transfer service.\n(URL: https://example.test/a)" +
		"\n\n---\n\n" +
		"[Source: Card Activation]\nStep 1: Log in.\n(URL: https://example.test/b)"
	if got != want {
		t.Errorf("context format:\n got %q\nwant %q", got, want)
	}
}

func TestFormatContext_Empty(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}
