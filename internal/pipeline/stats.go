package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/iannpc/DBS-Chatbot/internal/chunker"
	"github.com/iannpc/DBS-Chatbot/internal/kb"
)

// ScrapeStats summarizes one scraping run, persisted next to the knowledge
// base.
type ScrapeStats struct {
	TotalArticles int            `json:"total_articles"`
	Failed        int            `json:"failed"`
	Categories    map[string]int `json:"categories"`
	ScrapedAt     time.Time      `json:"scraped_at"`
}

// BuildStats tallies a scrape result by category.
func BuildStats(result ScrapeResult) ScrapeStats {
	stats := ScrapeStats{
		TotalArticles: len(result.Articles),
		Failed:        len(result.Failures),
		Categories:    make(map[string]int),
		ScrapedAt:     time.Now(),
	}
	for _, a := range result.Articles {
		stats.Categories[a.Category]++
	}
	return stats
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ChunkAll chunks every article and reports the chunk-type distribution.
// Articles missing their required url are recorded as failures and skipped.
func ChunkAll(articles []kb.ArticleRecord, cfg chunker.Config) ([]kb.Chunk, map[string]int, []Failure) {
	var chunks []kb.Chunk
	var failures []Failure
	typeCounts := make(map[string]int)

	for i := range articles {
		a := &articles[i]
		if err := a.Validate(); err != nil {
			failures = append(failures, Failure{Category: a.Category, Error: err.Error()})
			continue
		}
		for _, c := range chunker.ChunkArticle(a, cfg) {
			typeCounts[string(c.Type)]++
			chunks = append(chunks, c)
		}
	}
	return chunks, typeCounts, failures
}
