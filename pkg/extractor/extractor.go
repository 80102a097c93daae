// Package extractor walks parsed HTML and emits ordered text blocks for the
// recognized tag set.
package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sitemap2text/models"
	readability "github.com/go-shiori/go-readability"
)

// Extractor converts raw HTML into a models.Page. It is stateless and safe
// for concurrent use by the worker pool.
type Extractor struct {
	tags        map[models.TagKind]struct{}
	selector    string
	readability bool
}

// New creates an Extractor for the given tag kinds. When useReadability is
// set, the main article content is distilled first and the tag walk runs on
// the distilled fragment instead of the full document.
func New(kinds []models.TagKind, useReadability bool) *Extractor {
	tags := make(map[models.TagKind]struct{}, len(kinds))
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		tags[k] = struct{}{}
		names = append(names, string(k))
	}
	return &Extractor{
		tags:        tags,
		selector:    strings.Join(names, ","),
		readability: useReadability,
	}
}

// Extract parses rawHTML and returns one block per matching element in
// document order. Empty elements are skipped. Malformed HTML is tolerated:
// the parser recovers what it can and unparseable fragments are dropped.
func (e *Extractor) Extract(rawURL string, rawHTML []byte) (*models.Page, error) {
	html := rawHTML
	title := ""

	if e.readability {
		distilled, articleTitle, err := distill(rawURL, rawHTML)
		if err == nil && len(distilled) > 0 {
			html = distilled
			title = articleTitle
		}
		// On distillation failure, fall through to the full document.
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title == "" {
		title = normalizeText(doc.Find("title").First().Text())
	}

	var blocks []models.Block
	doc.Find(e.selector).Each(func(i int, s *goquery.Selection) {
		kind, ok := models.KindForTag(goquery.NodeName(s))
		if !ok {
			return
		}
		if _, wanted := e.tags[kind]; !wanted {
			return
		}
		text := normalizeText(s.Text())
		if text == "" {
			return
		}
		blocks = append(blocks, models.Block{Kind: kind, Text: text})
	})

	page := &models.Page{
		URL:    rawURL,
		Title:  title,
		Blocks: blocks,
	}
	page.ComputeMeta()
	return page, nil
}

// distill runs go-readability over the document and returns the clean
// article HTML plus its title.
func distill(rawURL string, rawHTML []byte) ([]byte, string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", err
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(rawHTML), parsedURL)
	if err != nil {
		return nil, "", err
	}
	return []byte(article.Content), normalizeText(article.Title), nil
}

// normalizeText trims each line and joins non-empty lines with single spaces,
// collapsing the excess whitespace HTML sources tend to carry. Splitting on
// newlines directly keeps arbitrarily long lines intact; a token-based scanner
// would truncate past its buffer limit.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
