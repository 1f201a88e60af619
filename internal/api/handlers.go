package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/iannpc/DBS-Chatbot/internal/index"
	"github.com/iannpc/DBS-Chatbot/internal/llm"
)

type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

type askSource struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	ChunkType string  `json:"chunk_type"`
	Score     float64 `json:"score"`
}

type askResponse struct {
	Answer  string      `json:"answer"`
	Sources []askSource `json:"sources"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}
	k := req.TopK
	if k <= 0 || k > 20 {
		k = s.cfg.TopK
	}

	results, err := s.searcher.Search(r.Context(), question, k)
	if err != nil {
		s.log.Error("search failed", "error", err)
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}

	// No indexed chunks matched: not an error, just not enough information.
	if len(results) == 0 {
		writeJSON(w, http.StatusOK, askResponse{
			Answer:  llm.InsufficientInfoMessage,
			Sources: []askSource{},
		})
		return
	}

	prompt := llm.BuildAnswerPrompt(index.FormatContext(results), question)

	ctx := r.Context()
	if s.cfg.AnswerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AnswerTimeout)
		defer cancel()
	}
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("completion failed", "error", err)
		jsonError(w, "answer generation failed", http.StatusBadGateway)
		return
	}

	sources := make([]askSource, 0, len(results))
	for _, res := range results {
		sources = append(sources, askSource{
			Title:     res.Doc.Title,
			URL:       res.Doc.Source,
			ChunkType: res.Doc.ChunkType,
			Score:     res.Score,
		})
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: answer, Sources: sources})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonError(w, "q is required", http.StatusBadRequest)
		return
	}
	k := s.cfg.TopK
	if v := r.URL.Query().Get("k"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 20 {
			k = n
		}
	}

	results, err := s.searcher.Search(r.Context(), query, k)
	if err != nil {
		s.log.Error("search failed", "error", err)
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.searcher.DocCount()
	if err != nil {
		s.log.Error("doc count failed", "error", err)
		jsonError(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"indexed_chunks": count})
}
