// Package index is the indexing sink and retrieval layer: chunks go in once
// per ingestion run, top-K lexical search comes out at query time.
package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/iannpc/DBS-Chatbot/internal/kb"
)

const batchSize = 100

// Doc is the flat form of a chunk stored in the index. Metadata keys map to
// top-level fields so they come back on search hits.
type Doc struct {
	Content        string `json:"content"`
	ChunkType      string `json:"chunk_type"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	Source         string `json:"source"`
	Question       string `json:"question,omitempty"`
	SectionHeading string `json:"section_heading,omitempty"`
}

// Result is one search hit.
type Result struct {
	Doc   Doc     `json:"doc"`
	Score float64 `json:"score"`
}

// Searcher is the read side of the store, small enough to mock in handler
// tests.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]Result, error)
	DocCount() (uint64, error)
}

// Store wraps a bleve index holding chunk documents.
type Store struct {
	index bleve.Index
	seq   int
}

// Create makes a new on-disk index at path.
func Create(path string) (*Store, error) {
	idx, err := bleve.New(path, bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Store{index: idx}, nil
}

// Open opens an existing on-disk index.
func Open(path string) (*Store, error) {
	idx, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return &Store{index: idx}, nil
}

// OpenMemory creates an in-memory index, used by tests.
func OpenMemory() (*Store, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create memory index: %w", err)
	}
	return &Store{index: idx}, nil
}

// Add indexes a batch of chunks. Duplicate url+chunk_type combinations are
// fine: every document gets a distinct sequence-suffixed ID.
func (s *Store) Add(chunks []kb.Chunk) error {
	batch := s.index.NewBatch()
	for _, chunk := range chunks {
		doc := docFromChunk(chunk)
		id := fmt.Sprintf("%s#%s#%d", doc.URL, doc.ChunkType, s.seq)
		s.seq++
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("batch chunk %s: %w", id, err)
		}
		if batch.Size() >= batchSize {
			if err := s.index.Batch(batch); err != nil {
				return fmt.Errorf("index batch: %w", err)
			}
			batch = s.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("index final batch: %w", err)
		}
	}
	return nil
}

func docFromChunk(chunk kb.Chunk) Doc {
	return Doc{
		Content:        chunk.Content,
		ChunkType:      string(chunk.Type),
		URL:            chunk.Metadata["url"],
		Title:          chunk.Metadata["title"],
		Category:       chunk.Metadata["category"],
		Source:         chunk.Metadata["source"],
		Question:       chunk.Metadata["question"],
		SectionHeading: chunk.Metadata["section_heading"],
	}
}

// Search runs a match query and returns the top k hits with their stored
// fields.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		k = 5
	}
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = k
	req.Fields = []string{"*"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc := Doc{}
		if v, ok := hit.Fields["content"].(string); ok {
			doc.Content = v
		}
		if v, ok := hit.Fields["chunk_type"].(string); ok {
			doc.ChunkType = v
		}
		if v, ok := hit.Fields["url"].(string); ok {
			doc.URL = v
		}
		if v, ok := hit.Fields["title"].(string); ok {
			doc.Title = v
		}
		if v, ok := hit.Fields["category"].(string); ok {
			doc.Category = v
		}
		if v, ok := hit.Fields["source"].(string); ok {
			doc.Source = v
		}
		if v, ok := hit.Fields["question"].(string); ok {
			doc.Question = v
		}
		if v, ok := hit.Fields["section_heading"].(string); ok {
			doc.SectionHeading = v
		}
		results = append(results, Result{Doc: doc, Score: hit.Score})
	}
	return results, nil
}

// DocCount returns the number of indexed chunk documents.
func (s *Store) DocCount() (uint64, error) {
	return s.index.DocCount()
}

// Close closes the underlying index.
func (s *Store) Close() error {
	return s.index.Close()
}

const contextSeparator = "\n\n---\n\n"

// FormatContext assembles retrieved chunks into the context string handed to
// the completion model. The per-chunk framing and separator are a
// compatibility contract with the prompt.
func FormatContext(results []Result) string {
	formatted := make([]string, 0, len(results))
	for _, r := range results {
		formatted = append(formatted, fmt.Sprintf("[Source: %s]\n%s\n(URL: %s)", r.Doc.Title, r.Doc.Content, r.Doc.Source))
	}
	return strings.Join(formatted, contextSeparator)
}
