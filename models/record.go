// Package models defines data structures shared across the pipeline.
package models

import "strings"

// TagKind identifies one of the recognized content-bearing HTML tags.
type TagKind string

const (
	TagTitle TagKind = "title"
	TagH1    TagKind = "h1"
	TagH2    TagKind = "h2"
	TagH3    TagKind = "h3"
	TagP     TagKind = "p"
	TagLI    TagKind = "li"
)

// KindForTag maps an HTML tag name to its TagKind. The second return is
// false for every tag outside the recognized set; callers ignore those.
func KindForTag(name string) (TagKind, bool) {
	switch TagKind(strings.ToLower(name)) {
	case TagTitle, TagH1, TagH2, TagH3, TagP, TagLI:
		return TagKind(strings.ToLower(name)), true
	}
	return "", false
}

// DefaultTags is the default extraction set. The title and h3 tags are
// recognized but only extracted when listed in the config.
var DefaultTags = []TagKind{TagH1, TagH2, TagP, TagLI}

// Block represents one extracted unit of visible text. How each kind renders
// in the export is the report assembler's concern.
type Block struct {
	Kind TagKind `json:"kind"`
	Text string  `json:"text"`
}

// PageMeta holds cheap per-page enrichment computed after extraction.
type PageMeta struct {
	WordCount          int     `json:"word_count"`
	Language           string  `json:"language,omitempty"` // ISO-639-1 if detected
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// Page is the structured extraction result for a single URL.
type Page struct {
	URL    string   `json:"url"`
	Title  string   `json:"title,omitempty"`
	Blocks []Block  `json:"blocks"`
	Meta   PageMeta `json:"meta"`
}

// ToPlainText concatenates the text of all blocks, one per line.
func (p *Page) ToPlainText() string {
	var sb strings.Builder
	for _, b := range p.Blocks {
		sb.WriteString(b.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ComputeMeta fills in word count. Language detection is done separately by
// pkg/detector since it needs the loaded models.
func (p *Page) ComputeMeta() {
	p.Meta.WordCount = len(strings.Fields(p.ToPlainText()))
}
