package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iannpc/DBS-Chatbot/internal/config"
	"github.com/iannpc/DBS-Chatbot/internal/index"
)

// Completer generates an answer from a filled prompt. Satisfied by
// *llm.GeminiClient.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Server is the chat/search HTTP API over the chunk index.
type Server struct {
	router   chi.Router
	searcher index.Searcher
	llm      Completer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(searcher index.Searcher, completer Completer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		searcher: searcher,
		llm:      completer,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/ask", s.handleAsk)
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/stats", s.handleStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
