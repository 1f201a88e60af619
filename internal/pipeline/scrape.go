// Package pipeline orchestrates the batch stages: scraping catalog pages
// into article records, and chunking records for the index. One bad article
// never aborts a batch; it is recorded and skipped.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/iannpc/DBS-Chatbot/internal/catalog"
	"github.com/iannpc/DBS-Chatbot/internal/extractor"
	"github.com/iannpc/DBS-Chatbot/internal/fetch"
	"github.com/iannpc/DBS-Chatbot/internal/kb"
)

// Fetcher is the page-retrieval dependency, satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) (io.ReadCloser, string, error)
}

// Failure records one article that could not be scraped.
type Failure struct {
	URL      string `json:"url"`
	Category string `json:"category"`
	Error    string `json:"error"`
}

// ScrapeResult carries the records and failures of one batch run.
type ScrapeResult struct {
	Articles []kb.ArticleRecord
	Failures []Failure
}

// Scraper runs the fetch+extract stage over a catalog.
type Scraper struct {
	fetcher Fetcher
	log     *slog.Logger
	delay   time.Duration
	workers int
}

func NewScraper(fetcher Fetcher, log *slog.Logger, delay time.Duration, workers int) *Scraper {
	if workers <= 0 {
		workers = 1
	}
	return &Scraper{fetcher: fetcher, log: log, delay: delay, workers: workers}
}

// Run scrapes every catalog article. With one worker, requests are spaced by
// the configured delay. Output order matches catalog order regardless of
// worker count.
func (s *Scraper) Run(ctx context.Context, articles []catalog.Article) ScrapeResult {
	type slot struct {
		record  kb.ArticleRecord
		failure *Failure
	}
	slots := make([]slot, len(articles))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, art := range articles {
		select {
		case <-ctx.Done():
			slots[i].failure = &Failure{URL: art.URL, Category: art.Category, Error: ctx.Err().Error()}
			continue
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, art catalog.Article) {
			defer func() { <-sem; wg.Done() }()
			rec, err := s.scrapeOne(ctx, art)
			if err != nil {
				s.log.Warn("scrape failed", "url", art.URL, "error", err)
				slots[i].failure = &Failure{URL: art.URL, Category: art.Category, Error: err.Error()}
				return
			}
			s.log.Info("scraped", "url", art.URL, "title", rec.Title)
			slots[i].record = rec
		}(i, art)

		if s.workers == 1 && s.delay > 0 && i < len(articles)-1 {
			wg.Wait()
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
			}
		}
	}
	wg.Wait()

	var result ScrapeResult
	for _, sl := range slots {
		switch {
		case sl.failure != nil:
			result.Failures = append(result.Failures, *sl.failure)
		case sl.record.URL != "":
			result.Articles = append(result.Articles, sl.record)
		}
	}
	return result
}

func (s *Scraper) scrapeOne(ctx context.Context, art catalog.Article) (kb.ArticleRecord, error) {
	var body io.ReadCloser
	var contentType string
	var err error
	for attempt := range fetch.MaxRetries {
		body, contentType, err = s.fetcher.Get(ctx, art.URL)
		if err == nil || !fetch.IsRetryable(err) {
			break
		}
		s.log.Warn("retryable fetch error", "url", art.URL, "attempt", attempt, "error", err)
		select {
		case <-time.After(fetch.Backoff(attempt)):
		case <-ctx.Done():
			return kb.ArticleRecord{}, ctx.Err()
		}
	}
	if err != nil {
		return kb.ArticleRecord{}, err
	}
	defer body.Close()

	doc, err := extractor.Parse(body, contentType)
	if err != nil {
		return kb.ArticleRecord{}, err
	}
	return extractor.FromHTML(doc, art.URL, art.Category)
}
