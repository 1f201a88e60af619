package chunker

import "strings"

// SplitSentences splits text at sentence boundaries: '.', '!' or '?'
// followed by whitespace. Each returned sentence is trimmed; empty units are
// dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && isSpace(runes[i+1]) {
			flush()
		}
	}
	flush()
	return sentences
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// PackSentences greedily groups sentences into chunks of at most maxSize
// characters, seeding each new chunk with the trailing overlap of the
// previous one. Chunks shorter than minSize are dropped. A single sentence
// longer than maxSize is deliberately emitted whole: chunk size is a soft
// target bounded by sentence granularity, not a hard cap.
func PackSentences(text string, maxSize, overlap, minSize int) []string {
	var chunks []string
	current := ""

	for _, sentence := range SplitSentences(text) {
		if current != "" && len(current)+len(sentence) > maxSize {
			chunks = append(chunks, strings.TrimSpace(current))
			tail := current
			if len(current) > overlap {
				tail = current[len(current)-overlap:]
			}
			current = tail + " " + sentence
		} else {
			current = strings.TrimSpace(current + " " + sentence)
		}
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	kept := chunks[:0]
	for _, c := range chunks {
		if len(c) >= minSize {
			kept = append(kept, c)
		}
	}
	return kept
}
