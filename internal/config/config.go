package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Scraper
	BaseURL        string
	RequestTimeout time.Duration
	RequestDelay   time.Duration
	FetchSizeCap   int64
	ScrapeWorkers  int
	SeedsFile      string

	// Artifact paths
	KnowledgeBasePath string
	StatsPath         string
	FailuresPath      string
	IndexPath         string

	// Chunking
	MaxChunkSize int
	ChunkOverlap int
	MinChunkSize int

	// Retrieval + answering
	TopK          int
	GeminiAPIKey  string
	GeminiModel   string
	AnswerTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		BaseURL:        envOr("BASE_URL", "https://www.dbs.com.sg/personal/support/"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 15*time.Second),
		RequestDelay:   envDuration("REQUEST_DELAY", 1500*time.Millisecond),
		FetchSizeCap:   envInt64("FETCH_SIZE_CAP", 5*1024*1024),
		ScrapeWorkers:  envInt("SCRAPE_WORKERS", 1),
		SeedsFile:      os.Getenv("SEEDS_FILE"),

		KnowledgeBasePath: envOr("KNOWLEDGE_BASE_PATH", "dbs_knowledge_base.json"),
		StatsPath:         envOr("STATS_PATH", "dbs_scrape_stats.json"),
		FailuresPath:      envOr("FAILURES_PATH", "dbs_scrape_failures.json"),
		IndexPath:         envOr("INDEX_PATH", "kb.bleve"),

		MaxChunkSize: envInt("MAX_CHUNK_SIZE", 1000),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 150),
		MinChunkSize: envInt("MIN_CHUNK_SIZE", 50),

		TopK:          envInt("TOP_K", 5),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		AnswerTimeout: envDuration("ANSWER_TIMEOUT", 60*time.Second),
	}

	if cfg.ScrapeWorkers <= 0 {
		cfg.ScrapeWorkers = 1
	}
	if cfg.FetchSizeCap <= 0 {
		cfg.FetchSizeCap = 5 * 1024 * 1024
	}
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = 1000
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = 150
	}
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = 50
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
