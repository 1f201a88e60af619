package kb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ArticleRecord is the normalized, structure-recovered representation of one
// help-center page. All text fields are whitespace-normalized before storage.
type ArticleRecord struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	FullText  string    `json:"full_text"`
	Steps     []string  `json:"steps"`
	FAQPairs  []FAQPair `json:"faq_pairs"`
	Sections  []Section `json:"sections"`
	Notes     []string  `json:"notes"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// FAQPair is a question with its collected answer.
type FAQPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Section is a heading-delimited region of article content.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// ErrMissingURL is the only precondition failure for an ArticleRecord.
var ErrMissingURL = errors.New("article record requires a url")

// Validate checks the record's single required field.
func (a *ArticleRecord) Validate() error {
	if a.URL == "" {
		return ErrMissingURL
	}
	return nil
}

// ChunkType identifies which extraction strategy produced a chunk.
type ChunkType string

const (
	ChunkFAQ     ChunkType = "faq"
	ChunkSteps   ChunkType = "steps"
	ChunkSection ChunkType = "section"
	ChunkText    ChunkType = "text"
	ChunkNote    ChunkType = "note"
)

// Chunk is a bounded text unit ready for indexing. Content always starts with
// the "[category] title" context line; Metadata is a flat string mapping.
type Chunk struct {
	Content  string            `json:"content"`
	Type     ChunkType         `json:"chunk_type"`
	Metadata map[string]string `json:"metadata"`
}

// NewMetadata builds the base metadata shared by every chunk of an article.
func NewMetadata(a *ArticleRecord, typ ChunkType) map[string]string {
	return map[string]string{
		"url":        a.URL,
		"title":      a.Title,
		"category":   a.Category,
		"chunk_type": string(typ),
		"source":     a.URL,
	}
}

// LoadArticles reads a knowledge-base JSON array from disk.
func LoadArticles(path string) ([]ArticleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var articles []ArticleRecord
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	return articles, nil
}

// SaveArticles writes the knowledge-base JSON array to disk.
func SaveArticles(path string, articles []ArticleRecord) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}
