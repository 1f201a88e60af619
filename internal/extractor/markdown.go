package extractor

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/iannpc/DBS-Chatbot/internal/kb"
	"github.com/iannpc/DBS-Chatbot/internal/textutil"
)

// FromMarkdown extracts an ArticleRecord from a locally authored markdown
// help article: title from the first h1, sections from h2/h3 headings, notes
// from blockquotes, steps from "Step N" list items or paragraphs.
func FromMarkdown(r io.Reader, url, category string) (kb.ArticleRecord, error) {
	rec := kb.ArticleRecord{
		URL:       url,
		Category:  category,
		ScrapedAt: time.Now(),
	}
	if err := rec.Validate(); err != nil {
		return kb.ArticleRecord{}, err
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return kb.ArticleRecord{}, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		fullParts    []string
		sectionOpen  bool
		sectionTitle string
		sectionParts []string
	)
	closeSection := func() {
		if sectionOpen && len(sectionParts) > 0 {
			rec.Sections = append(rec.Sections, kb.Section{
				Heading: sectionTitle,
				Content: strings.Join(sectionParts, " "),
			})
		}
		sectionParts = nil
		sectionOpen = false
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			headingText := textutil.Clean(string(node.Text(src)))
			fullParts = append(fullParts, headingText)
			switch {
			case node.Level == 1:
				closeSection()
				if rec.Title == "" {
					rec.Title = headingText
				}
			case node.Level == 2 || node.Level == 3:
				closeSection()
				if headingText != "" && !sectionDenyList[headingText] {
					sectionOpen = true
					sectionTitle = headingText
				}
			default:
				// Deeper headings read as section body text.
				if sectionOpen && len(headingText) > 3 {
					sectionParts = append(sectionParts, headingText)
				}
			}

		case *ast.Blockquote:
			noteText := textutil.Clean(blockText(node, src))
			fullParts = append(fullParts, noteText)
			if len(noteText) > minNoteLen {
				rec.Notes = append(rec.Notes, noteText)
			}
			if sectionOpen && len(noteText) > 3 {
				sectionParts = append(sectionParts, noteText)
			}

		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				itemText := textutil.Clean(blockText(item, src))
				if itemText == "" {
					continue
				}
				fullParts = append(fullParts, itemText)
				if stepMarkerRe.MatchString(itemText) && len(itemText) > minStepLen {
					rec.Steps = append(rec.Steps, itemText)
				}
				if sectionOpen && len(itemText) > 3 {
					sectionParts = append(sectionParts, itemText)
				}
			}

		default:
			blockStr := textutil.Clean(blockText(n, src))
			if blockStr == "" {
				continue
			}
			fullParts = append(fullParts, blockStr)
			if stepMarkerRe.MatchString(blockStr) && len(blockStr) > minStepLen {
				rec.Steps = append(rec.Steps, blockStr)
			}
			if sectionOpen && len(blockStr) > 3 {
				sectionParts = append(sectionParts, blockStr)
			}
		}
	}
	closeSection()

	rec.FullText = textutil.Truncate(textutil.Clean(strings.Join(fullParts, " ")), maxFullText)
	return rec, nil
}

// blockText gathers the raw text of a goldmark block node. Leaf blocks carry
// their source lines directly; container blocks recurse into children.
func blockText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
			buf.WriteByte('\n')
		}
		return buf.String()
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.WriteString(blockText(c, src))
		buf.WriteByte(' ')
	}
	return buf.String()
}
