// Command server answers support questions over the indexed knowledge base.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iannpc/DBS-Chatbot/internal/api"
	"github.com/iannpc/DBS-Chatbot/internal/config"
	"github.com/iannpc/DBS-Chatbot/internal/index"
	"github.com/iannpc/DBS-Chatbot/internal/llm"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	store, err := index.Open(cfg.IndexPath)
	if err != nil {
		log.Error("open index", "path", cfg.IndexPath, "error", err)
		os.Exit(1)
	}
	if count, err := store.DocCount(); err == nil {
		log.Info("index opened", "path", cfg.IndexPath, "chunks", count)
	}

	gemini := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	srv := api.NewServer(store, gemini, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)

		gemini.Close()
		store.Close()
	}()

	log.Info("starting chat server", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
