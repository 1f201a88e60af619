// Command scraper fetches every catalog article page, extracts its
// structure, and writes the knowledge-base JSON plus run statistics.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iannpc/DBS-Chatbot/internal/catalog"
	"github.com/iannpc/DBS-Chatbot/internal/config"
	"github.com/iannpc/DBS-Chatbot/internal/fetch"
	"github.com/iannpc/DBS-Chatbot/internal/kb"
	"github.com/iannpc/DBS-Chatbot/internal/pipeline"
)

func main() {
	cfg := config.Load()

	seeds := flag.String("seeds", cfg.SeedsFile, "seeds file (JSON array of category groups); empty uses the built-in registry")
	output := flag.String("output", cfg.KnowledgeBasePath, "knowledge base output path")
	workers := flag.Int("workers", cfg.ScrapeWorkers, "concurrent fetch workers (1 enables the polite request delay)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	groups, err := catalog.Load(*seeds)
	if err != nil {
		log.Error("load catalog", "error", err)
		os.Exit(1)
	}
	articles := catalog.Resolve(groups, cfg.BaseURL)
	log.Info("starting scrape", "articles", len(articles), "workers", *workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(cfg.RequestTimeout, cfg.FetchSizeCap)
	defer client.Close()

	scraper := pipeline.NewScraper(client, log, cfg.RequestDelay, *workers)
	result := scraper.Run(ctx, articles)

	if err := kb.SaveArticles(*output, result.Articles); err != nil {
		log.Error("save knowledge base", "error", err)
		os.Exit(1)
	}
	log.Info("saved knowledge base", "path", *output, "articles", len(result.Articles))

	stats := pipeline.BuildStats(result)
	if err := pipeline.WriteJSON(cfg.StatsPath, stats); err != nil {
		log.Error("write stats", "error", err)
	}
	if len(result.Failures) > 0 {
		if err := pipeline.WriteJSON(cfg.FailuresPath, result.Failures); err != nil {
			log.Error("write failures", "error", err)
		}
		log.Warn("some pages failed", "failed", len(result.Failures), "path", cfg.FailuresPath)
	}

	for cat, count := range stats.Categories {
		log.Info("category", "name", cat, "articles", count)
	}
	log.Info("scrape complete", "total", stats.TotalArticles, "failed", stats.Failed)
}
