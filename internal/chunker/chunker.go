// Package chunker turns article records into bounded, semantically coherent
// chunks for indexing. Five strategies apply in order: FAQ pairs, grouped
// steps, heading sections, full-text fallback, and notes.
package chunker

import (
	"fmt"
	"strings"

	"github.com/iannpc/DBS-Chatbot/internal/kb"
)

// Config controls chunk sizing. Sizes are in characters.
type Config struct {
	MaxChunkSize int // Target chunk size; a lone oversized sentence may exceed it.
	Overlap      int // Trailing characters carried into the next packed chunk.
	MinChunkSize int // Packed and note chunks below this are dropped.
}

// DefaultConfig returns the tuned production sizes.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize: 1000,
		Overlap:      150,
		MinChunkSize: 50,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxChunkSize <= 0 {
		c.MaxChunkSize = d.MaxChunkSize
	}
	if c.Overlap <= 0 {
		c.Overlap = d.Overlap
	}
	if c.MinChunkSize <= 0 {
		c.MinChunkSize = d.MinChunkSize
	}
	return c
}

const (
	stepsHeader     = "How to (step-by-step):\n"
	stepsContHeader = "How to (continued):\n"
	notePrefix      = "Important: "

	// A step group flushes only when it holds more than this much content
	// beyond the context prefix.
	minStepContent = 30
)

// ChunkArticle produces the ordered chunk sequence for one article. An
// article with no extractable content yields zero chunks; that is a valid
// empty result, not an error.
func ChunkArticle(a *kb.ArticleRecord, cfg Config) []kb.Chunk {
	cfg = cfg.withDefaults()
	prefix := fmt.Sprintf("[%s] %s\n", a.Category, a.Title)

	var chunks []kb.Chunk
	chunks = append(chunks, faqChunks(a, prefix)...)
	chunks = append(chunks, stepChunks(a, prefix, cfg)...)
	chunks = append(chunks, sectionChunks(a, prefix, cfg)...)

	// Full text is strictly last-resort: only when the structural strategies
	// produced nothing at all.
	if len(chunks) == 0 {
		chunks = append(chunks, textChunks(a, prefix, cfg)...)
	}

	chunks = append(chunks, noteChunks(a, prefix, cfg)...)
	return chunks
}

func faqChunks(a *kb.ArticleRecord, prefix string) []kb.Chunk {
	var chunks []kb.Chunk
	for _, faq := range a.FAQPairs {
		q := strings.TrimSpace(faq.Question)
		ans := strings.TrimSpace(faq.Answer)
		if q == "" || ans == "" {
			continue
		}
		meta := kb.NewMetadata(a, kb.ChunkFAQ)
		meta["question"] = q
		chunks = append(chunks, kb.Chunk{
			Content:  fmt.Sprintf("%sQ: %s\nA: %s", prefix, q, ans),
			Type:     kb.ChunkFAQ,
			Metadata: meta,
		})
	}
	return chunks
}

// stepChunks folds the step list into one or more grouped chunks. The group
// buffer flushes when appending the next step would push it past the size
// target and it already carries real content beyond the prefix.
func stepChunks(a *kb.ArticleRecord, prefix string, cfg Config) []kb.Chunk {
	if len(a.Steps) == 0 {
		return nil
	}

	var chunks []kb.Chunk
	emit := func(group string) {
		chunks = append(chunks, kb.Chunk{
			Content:  strings.TrimSpace(group),
			Type:     kb.ChunkSteps,
			Metadata: kb.NewMetadata(a, kb.ChunkSteps),
		})
	}

	group := prefix + stepsHeader
	for _, step := range a.Steps {
		if len(group)+len(step) > cfg.MaxChunkSize && len(group) > len(prefix)+minStepContent {
			emit(group)
			group = prefix + stepsContHeader
		}
		group += step + "\n"
	}
	if len(strings.TrimSpace(group)) > len(prefix)+minStepContent {
		emit(group)
	}
	return chunks
}

func sectionChunks(a *kb.ArticleRecord, prefix string, cfg Config) []kb.Chunk {
	var chunks []kb.Chunk
	for _, section := range a.Sections {
		if section.Content == "" {
			continue
		}
		sectionMeta := func() map[string]string {
			m := kb.NewMetadata(a, kb.ChunkSection)
			m["section_heading"] = section.Heading
			return m
		}

		whole := fmt.Sprintf("%s%s\n%s", prefix, section.Heading, section.Content)
		if len(whole) <= cfg.MaxChunkSize {
			chunks = append(chunks, kb.Chunk{Content: whole, Type: kb.ChunkSection, Metadata: sectionMeta()})
			continue
		}

		// Oversized: pack the content alone, re-prefixing each piece with
		// the heading.
		for _, piece := range PackSentences(section.Content, cfg.MaxChunkSize, cfg.Overlap, cfg.MinChunkSize) {
			chunks = append(chunks, kb.Chunk{
				Content:  fmt.Sprintf("%s%s\n%s", prefix, section.Heading, piece),
				Type:     kb.ChunkSection,
				Metadata: sectionMeta(),
			})
		}
	}
	return chunks
}

func textChunks(a *kb.ArticleRecord, prefix string, cfg Config) []kb.Chunk {
	if a.FullText == "" {
		return nil
	}
	var chunks []kb.Chunk
	for _, piece := range PackSentences(a.FullText, cfg.MaxChunkSize, cfg.Overlap, cfg.MinChunkSize) {
		chunks = append(chunks, kb.Chunk{
			Content:  prefix + piece,
			Type:     kb.ChunkText,
			Metadata: kb.NewMetadata(a, kb.ChunkText),
		})
	}
	return chunks
}

func noteChunks(a *kb.ArticleRecord, prefix string, cfg Config) []kb.Chunk {
	var chunks []kb.Chunk
	for _, note := range a.Notes {
		if len(note) < cfg.MinChunkSize {
			continue
		}
		chunks = append(chunks, kb.Chunk{
			Content:  prefix + notePrefix + note,
			Type:     kb.ChunkNote,
			Metadata: kb.NewMetadata(a, kb.ChunkNote),
		})
	}
	return chunks
}
