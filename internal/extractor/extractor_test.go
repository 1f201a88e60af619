package extractor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/iannpc/DBS-Chatbot/internal/kb"
)

const articleFixture = `<html>
<head><title>Activate Card | DBS Singapore</title></head>
<body>
<div class="main-content">
  <h1>How to activate your new card</h1>
  <div class="intro">
    <p>Step 1: Log in to digibank online with your User ID and PIN.</p>
    <p>Step 2: Select Card Activation under the Cards tab.</p>
  </div>
  <div class="body-copy">
    <h2>Activating via digibank</h2>
    <p>You can activate your card in digibank online or the mobile app.</p>
    <p>Activation takes effect immediately.</p>
    <h2>Popular Articles</h2>
    <p>Some boilerplate list of links.</p>
  </div>
  <div class="faq">
    <h3>What is card activation?</h3>
    <p>Card activation enables your card for transactions.</p>
    <p>It is required for all newly issued cards.</p>
    <p><strong>Can I use the card overseas?</strong></p>
    <p>Yes, enable overseas use first in the app settings.</p>
  </div>
  <div class="note-box">Your card must be activated before it can be used overseas.</div>
  <nav>Quick links</nav>
</div>
</body>
</html>`

func parseFixture(t *testing.T, htmlSrc string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestFromHTML_FullArticle(t *testing.T) {
	doc := parseFixture(t, articleFixture)
	rec, err := FromHTML(doc, "https://www.dbs.com.sg/personal/support/card-activation.html", "Cards")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}

	if rec.Title != "How to activate your new card" {
		t.Errorf("title: got %q", rec.Title)
	}
	if rec.Category != "Cards" {
		t.Errorf("category: got %q", rec.Category)
	}
	if rec.ScrapedAt.IsZero() {
		t.Errorf("scraped_at not set")
	}

	if len(rec.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d: %v", len(rec.Steps), rec.Steps)
	}
	if rec.Steps[0] != "Step 1: Log in to digibank online with your User ID and PIN." {
		t.Errorf("step 1: got %q", rec.Steps[0])
	}
	if rec.Steps[1] != "Step 2: Select Card Activation under the Cards tab." {
		t.Errorf("step 2: got %q", rec.Steps[1])
	}

	if len(rec.FAQPairs) != 2 {
		t.Fatalf("expected 2 faq pairs, got %d: %v", len(rec.FAQPairs), rec.FAQPairs)
	}
	if rec.FAQPairs[0].Question != "What is card activation?" {
		t.Errorf("faq question: got %q", rec.FAQPairs[0].Question)
	}
	wantAnswer := "Card activation enables your card for transactions. It is required for all newly issued cards."
	if rec.FAQPairs[0].Answer != wantAnswer {
		t.Errorf("faq answer:\n got %q\nwant %q", rec.FAQPairs[0].Answer, wantAnswer)
	}
	if rec.FAQPairs[1].Question != "Can I use the card overseas?" {
		t.Errorf("emphasis question: got %q", rec.FAQPairs[1].Question)
	}
	if rec.FAQPairs[1].Answer != "Yes, enable overseas use first in the app settings." {
		t.Errorf("emphasis answer: got %q", rec.FAQPairs[1].Answer)
	}

	var headings []string
	for _, s := range rec.Sections {
		headings = append(headings, s.Heading)
	}
	if len(rec.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %v", headings)
	}
	if rec.Sections[0].Heading != "Activating via digibank" {
		t.Errorf("section heading: got %q", rec.Sections[0].Heading)
	}
	if rec.Sections[0].Content != "You can activate your card in digibank online or the mobile app. Activation takes effect immediately." {
		t.Errorf("section content: got %q", rec.Sections[0].Content)
	}
	for _, h := range headings {
		if h == "Popular Articles" {
			t.Errorf("deny-listed heading produced a section")
		}
	}

	if len(rec.Notes) != 1 {
		t.Fatalf("expected 1 note, got %v", rec.Notes)
	}
	if rec.Notes[0] != "Your card must be activated before it can be used overseas." {
		t.Errorf("note: got %q", rec.Notes[0])
	}

	if !strings.Contains(rec.FullText, "Step 1: Log in to digibank") {
		t.Errorf("full text missing article content")
	}
	if strings.Contains(rec.FullText, "Quick links") {
		t.Errorf("full text retained nav boilerplate")
	}
}

func TestFromHTML_MissingURL(t *testing.T) {
	doc := parseFixture(t, articleFixture)
	_, err := FromHTML(doc, "", "Cards")
	if !errors.Is(err, kb.ErrMissingURL) {
		t.Errorf("expected ErrMissingURL, got %v", err)
	}
}

func TestExtractTitle_FallbackStripsSiteSuffix(t *testing.T) {
	doc := parseFixture(t, `<html><head><title>Card Help | DBS Singapore</title></head><body><main><p>hello world</p></main></body></html>`)
	if got := extractTitle(doc); got != "Card Help" {
		t.Errorf("expected suffix stripped, got %q", got)
	}
}

func TestFindMainRegion_Priority(t *testing.T) {
	// A class-pattern container wins over a semantic main element.
	doc := parseFixture(t, `<html><body><main><p>semantic</p></main><div class="promo-article"><p>class match</p></div></body></html>`)
	region := findMainRegion(doc)
	if !strings.Contains(region.Text(), "class match") {
		t.Errorf("expected class-pattern container, got %q", region.Text())
	}

	// Without a class match, semantic main is next.
	doc = parseFixture(t, `<html><body><main><p>semantic</p></main><div id="page-content"><p>id match</p></div></body></html>`)
	region = findMainRegion(doc)
	if !strings.Contains(region.Text(), "semantic") {
		t.Errorf("expected semantic main, got %q", region.Text())
	}

	// Id-pattern container before plain body.
	doc = parseFixture(t, `<html><body><div id="page-content"><p>id match</p></div><p>outside</p></body></html>`)
	region = findMainRegion(doc)
	if strings.Contains(region.Text(), "outside") {
		t.Errorf("expected id-pattern container, got body")
	}
}

func TestExtractFAQPairs_StopConditions(t *testing.T) {
	doc := parseFixture(t, `<html><body>
<h3>How many fragments can an answer hold?</h3>
<p>One.</p><p>Two.</p><p>Three.</p><p>Four.</p><p>Five.</p><p>Six.</p>
<h3>Does a heading stop the walk here?</h3>
<p>Yes it does.</p>
<h2>Next topic</h2>
<p>Unrelated text.</p>
</body></html>`)

	pairs := extractFAQPairs(doc)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %v", len(pairs), pairs)
	}
	if pairs[0].Answer != "One. Two. Three. Four. Five." {
		t.Errorf("expected answer capped at five fragments, got %q", pairs[0].Answer)
	}
	if pairs[1].Answer != "Yes it does." {
		t.Errorf("expected walk stopped at heading, got %q", pairs[1].Answer)
	}
}

func TestExtractFAQPairs_ShortQuestionIgnored(t *testing.T) {
	doc := parseFixture(t, `<html><body><h3>Why?</h3><p>Too short to be a question candidate.</p></body></html>`)
	if pairs := extractFAQPairs(doc); len(pairs) != 0 {
		t.Errorf("expected short question ignored, got %v", pairs)
	}
}

func TestExtractFullText_Truncation(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 1000) // well over the cap
	doc := parseFixture(t, `<html><body><div class="content"><p>`+long+`</p></div></body></html>`)
	rec, err := FromHTML(doc, "https://example.test/long", "Misc")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(rec.FullText) > 15000 {
		t.Errorf("full text not truncated: %d bytes", len(rec.FullText))
	}
}

func TestParse_DecodesLegacyCharset(t *testing.T) {
	raw := []byte("<html><body><p>caf\xe9 latte</p></body></html>")
	doc, err := Parse(bytes.NewReader(raw), "text/html; charset=iso-8859-1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Find("p").Text(); got != "café latte" {
		t.Errorf("expected decoded text, got %q", got)
	}
}
