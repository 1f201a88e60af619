// Command ingest loads the scraped knowledge base, chunks every article, and
// builds the search index consumed by the chat server.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iannpc/DBS-Chatbot/internal/chunker"
	"github.com/iannpc/DBS-Chatbot/internal/config"
	"github.com/iannpc/DBS-Chatbot/internal/extractor"
	"github.com/iannpc/DBS-Chatbot/internal/index"
	"github.com/iannpc/DBS-Chatbot/internal/kb"
	"github.com/iannpc/DBS-Chatbot/internal/pipeline"
)

func main() {
	cfg := config.Load()

	input := flag.String("input", cfg.KnowledgeBasePath, "knowledge base JSON produced by the scraper")
	indexPath := flag.String("index", cfg.IndexPath, "search index directory to build")
	mdDir := flag.String("md-dir", "", "optional directory of markdown help articles to index alongside the knowledge base")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	articles, err := kb.LoadArticles(*input)
	if err != nil {
		log.Error("load knowledge base", "error", err)
		os.Exit(1)
	}
	log.Info("loaded knowledge base", "path", *input, "articles", len(articles))

	if *mdDir != "" {
		local, err := loadMarkdownArticles(*mdDir, log)
		if err != nil {
			log.Error("load markdown articles", "dir", *mdDir, "error", err)
			os.Exit(1)
		}
		log.Info("loaded markdown articles", "dir", *mdDir, "articles", len(local))
		articles = append(articles, local...)
	}

	chunkCfg := chunker.Config{
		MaxChunkSize: cfg.MaxChunkSize,
		Overlap:      cfg.ChunkOverlap,
		MinChunkSize: cfg.MinChunkSize,
	}
	chunks, typeCounts, failures := pipeline.ChunkAll(articles, chunkCfg)
	for _, f := range failures {
		log.Warn("skipped article", "category", f.Category, "error", f.Error)
	}
	log.Info("chunked articles", "chunks", len(chunks))
	for typ, count := range typeCounts {
		log.Info("chunk type", "type", typ, "count", count)
	}

	// Rebuild from scratch each run; the index is a derived artifact.
	if err := os.RemoveAll(*indexPath); err != nil && !os.IsNotExist(err) {
		log.Error("remove old index", "error", err)
		os.Exit(1)
	}
	if dir := filepath.Dir(*indexPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Error("create index directory", "error", err)
			os.Exit(1)
		}
	}

	store, err := index.Create(*indexPath)
	if err != nil {
		log.Error("create index", "error", err)
		os.Exit(1)
	}
	if err := store.Add(chunks); err != nil {
		store.Close()
		log.Error("index chunks", "error", err)
		os.Exit(1)
	}
	if err := store.Close(); err != nil {
		log.Error("close index", "error", err)
		os.Exit(1)
	}

	log.Info("ingestion complete", "chunks", len(chunks), "index", *indexPath)
}

// loadMarkdownArticles extracts a record per .md file. The file's parent
// directory name becomes the category; the record url is the file path.
func loadMarkdownArticles(dir string, log *slog.Logger) ([]kb.ArticleRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var articles []kb.ArticleRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Warn("skipping markdown article", "path", path, "error", err)
			continue
		}
		rec, err := extractor.FromMarkdown(f, path, filepath.Base(dir))
		f.Close()
		if err != nil {
			log.Warn("skipping markdown article", "path", path, "error", err)
			continue
		}
		articles = append(articles, rec)
	}
	return articles, nil
}
