// Package extractor recovers article structure from parsed help-center
// pages: title, step lists, FAQ pairs, heading sections, notes, and a
// full-text fallback. Every sub-extraction is best-effort; a page with no
// recognizable structure still yields a valid record.
package extractor

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/iannpc/DBS-Chatbot/internal/kb"
	"github.com/iannpc/DBS-Chatbot/internal/textutil"
)

const (
	siteTitleSuffix = " | DBS Singapore"
	maxFullText     = 15000
	minStepLen      = 5
	minQuestionLen  = 10
	minNoteLen      = 10
	maxAnswerParts  = 5
)

var (
	mainClassRe  = regexp.MustCompile(`(?i)(article|content|main-body|ps3-revamp)`)
	mainIDRe     = regexp.MustCompile(`(?i)(content|article)`)
	stepMarkerRe = regexp.MustCompile(`(?i)^step \d+`)
	noteClassRe  = regexp.MustCompile(`(?i)(note|important|tip|info|warning)`)
)

// sectionDenyList holds boilerplate headings that never start a section.
var sectionDenyList = map[string]bool{
	"Popular Articles": true,
	"Popular Guides":   true,
	"Popular Article":  true,
}

// Parse decodes a fetched page body to UTF-8 and builds the document tree.
func Parse(r io.Reader, contentType string) (*goquery.Document, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return nil, err
		}
		decoded = data
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(decoded))
}

// FromHTML extracts one ArticleRecord from a parsed page. The category is
// assigned by the caller, never derived from content. The document may be
// mutated (boilerplate subtrees are removed for the full-text pass).
func FromHTML(doc *goquery.Document, url, category string) (kb.ArticleRecord, error) {
	rec := kb.ArticleRecord{
		URL:       url,
		Category:  category,
		ScrapedAt: time.Now(),
	}
	if err := rec.Validate(); err != nil {
		return kb.ArticleRecord{}, err
	}

	rec.Title = extractTitle(doc)
	main := findMainRegion(doc)
	rec.Steps = extractSteps(doc)
	rec.FAQPairs = extractFAQPairs(doc)
	rec.Sections = extractSections(doc)
	rec.FullText = extractFullText(main)
	rec.Notes = extractNotes(doc)
	return rec, nil
}

// extractTitle prefers the first h1; otherwise the document title with the
// site-name suffix removed.
func extractTitle(doc *goquery.Document) string {
	if t := textutil.Clean(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	t := textutil.Clean(doc.Find("title").First().Text())
	return strings.ReplaceAll(t, siteTitleSuffix, "")
}

// findMainRegion picks the node bounding the full-text fallback. First match
// wins: class-pattern container, semantic main, id-pattern container, body.
func findMainRegion(doc *goquery.Document) *goquery.Selection {
	if s := firstMatchingAttr(doc.Find("div[class]"), "class", mainClassRe); s != nil {
		return s
	}
	if s := doc.Find("main").First(); s.Length() > 0 {
		return s
	}
	if s := firstMatchingAttr(doc.Find("div[id]"), "id", mainIDRe); s != nil {
		return s
	}
	return doc.Find("body").First()
}

func firstMatchingAttr(candidates *goquery.Selection, attr string, re *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection
	candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(attr); ok && re.MatchString(v) {
			found = s
			return false
		}
		return true
	})
	return found
}

// blockTags are the block-level categories a step marker resolves against.
var blockTags = map[string]bool{
	"p": true, "li": true, "div": true, "td": true, "th": true,
	"section": true, "article": true, "blockquote": true,
	"ol": true, "ul": true, "body": true,
}

// extractSteps finds every "Step N" text marker and records the full text of
// its nearest block-level ancestor, in document order.
func extractSteps(doc *goquery.Document) []string {
	var steps []string
	for _, root := range doc.Selection.Nodes {
		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode && stepMarkerRe.MatchString(strings.TrimSpace(n.Data)) {
				if block := nearestBlock(n); block != nil {
					text := textutil.Clean(nodeText(block))
					if len(text) > minStepLen {
						steps = append(steps, text)
					}
				}
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(root)
	}
	return steps
}

func nearestBlock(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && blockTags[p.Data] {
			return p
		}
	}
	return n.Parent
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// extractFAQPairs collects question/answer pairs. A candidate question is an
// emphasis or heading element whose text ends with "?". Answer fragments are
// gathered by walking forward through sibling elements until a heading, an
// empty sibling, another question, or five fragments.
func extractFAQPairs(doc *goquery.Document) []kb.FAQPair {
	var pairs []kb.FAQPair
	doc.Find("strong,b,h3,h4").Each(func(_ int, s *goquery.Selection) {
		question := textutil.Clean(s.Text())
		if !isQuestionLike(question) {
			return
		}

		// Inline emphasis lives inside a block; walk that block's siblings.
		start := s
		if tag := goquery.NodeName(s); tag == "strong" || tag == "b" {
			start = s.Parent()
		}

		var answerParts []string
		for sib := start.Next(); sib.Length() > 0; sib = sib.Next() {
			tag := goquery.NodeName(sib)
			if tag == "h1" || tag == "h2" || tag == "h3" || tag == "h4" {
				break
			}
			text := textutil.Clean(sib.Text())
			if text == "" {
				break
			}
			if isQuestionLike(text) {
				break
			}
			answerParts = append(answerParts, text)
			if len(answerParts) >= maxAnswerParts {
				break
			}
		}
		if len(answerParts) > 0 {
			pairs = append(pairs, kb.FAQPair{
				Question: question,
				Answer:   strings.Join(answerParts, " "),
			})
		}
	})
	return pairs
}

func isQuestionLike(text string) bool {
	return strings.HasSuffix(text, "?") && len(text) > minQuestionLen
}

// extractSections starts a section at every h2/h3 outside the deny-list and
// collects sibling text until the next h2/h3.
func extractSections(doc *goquery.Document) []kb.Section {
	var sections []kb.Section
	doc.Find("h2,h3").Each(func(_ int, s *goquery.Selection) {
		heading := textutil.Clean(s.Text())
		if heading == "" || sectionDenyList[heading] {
			return
		}

		var parts []string
		for sib := s.Next(); sib.Length() > 0; sib = sib.Next() {
			tag := goquery.NodeName(sib)
			if tag == "h2" || tag == "h3" {
				break
			}
			if text := textutil.Clean(sib.Text()); len(text) > 3 {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			sections = append(sections, kb.Section{
				Heading: heading,
				Content: strings.Join(parts, " "),
			})
		}
	})
	return sections
}

// extractFullText strips boilerplate subtrees from the main region and takes
// the remaining normalized text, truncated to the record cap.
func extractFullText(main *goquery.Selection) string {
	if main == nil || main.Length() == 0 {
		return ""
	}
	main.Find("nav,footer,header,script,style,noscript").Remove()
	return textutil.Truncate(textutil.Clean(main.Text()), maxFullText)
}

// extractNotes picks up callout elements by class attribute pattern.
func extractNotes(doc *goquery.Document) []string {
	var notes []string
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !noteClassRe.MatchString(class) {
			return
		}
		if text := textutil.Clean(s.Text()); len(text) > minNoteLen {
			notes = append(notes, text)
		}
	})
	return notes
}
