// Package report assembles the consolidated Markdown export and the run log.
// Assembly is pure in-memory text building; writing files is the
// orchestrator's job.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dtnitsch/sitemap2text/models"
	"github.com/nao1215/markdown"
)

// logTimeFormat is the timestamp format used for run log lines.
const logTimeFormat = "2006-01-02 15:04:05"

// Outcome is the per-input-line result handed to the assembler, already
// restored to input order by the orchestrator.
type Outcome struct {
	Line        string // raw input line
	URL         string // sanitized URL, empty for invalid lines
	Valid       bool
	Reason      string // rejection reason for invalid lines
	StatusCode  int
	ErrKind     models.ErrorKind
	ErrDetail   string
	Page        *models.Page // nil unless fetch+extract succeeded
	CompletedAt time.Time    // when this line's processing finished
}

// Succeeded reports whether the line produced extracted content.
func (o Outcome) Succeeded() bool {
	return o.Valid && o.ErrKind == "" && o.Page != nil
}

// Summary holds the run-level counts for the report header.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts outcomes. Invalid lines and fetch failures both count as
// failed; total equals the number of input lines.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Succeeded() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// BuildDocument renders the consolidated Markdown export: a summary block
// followed by one section per valid URL in input order. Invalid lines get no
// section. Per-URL sections carry no timestamps so unchanged pages render
// byte-identical across runs.
func BuildDocument(inputFile string, runDate time.Time, outcomes []Outcome) (string, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	summary := Summarize(outcomes)

	md.H2("Summary Report")
	md.PlainText("")
	md.BulletList(
		"Run date: "+runDate.Format(logTimeFormat),
		"Input file: "+inputFile,
		"Total URLs scanned: "+strconv.Itoa(summary.Total),
		"Pages successfully scraped: "+strconv.Itoa(summary.Succeeded),
		"Pages skipped or failed: "+strconv.Itoa(summary.Failed),
	)
	md.PlainText("")

	for _, o := range outcomes {
		if !o.Valid {
			continue
		}
		md.HorizontalRule()
		md.H3("URL: " + markdown.Link(o.URL, o.URL))
		md.PlainText("")

		if !o.Succeeded() {
			md.PlainText(markdown.Bold("Error accessing "+o.URL) + ": " + o.errorText())
			md.PlainText("")
			continue
		}

		for _, block := range o.Page.Blocks {
			writeBlock(md, block)
		}
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return "", fmt.Errorf("failed to build markdown document: %w", err)
	}
	return buf.String(), nil
}

// writeBlock renders one extracted block with its Markdown prefix.
func writeBlock(md *markdown.Markdown, block models.Block) {
	switch block.Kind {
	case models.TagTitle, models.TagH1:
		md.H1(block.Text)
	case models.TagH2:
		md.H2(block.Text)
	case models.TagH3:
		md.H3(block.Text)
	case models.TagLI:
		md.BulletList(block.Text)
	default:
		md.PlainText(block.Text)
	}
}

// BuildLog renders the run log: exactly one line per input line, in input
// order, each carrying a timestamp and the status or error kind.
func BuildLog(outcomes []Outcome) string {
	var sb strings.Builder
	for _, o := range outcomes {
		sb.WriteString(logLine(o))
		sb.WriteString("\n")
	}
	return sb.String()
}

// logLine formats a single log entry.
func logLine(o Outcome) string {
	stamp := "[" + o.CompletedAt.Format(logTimeFormat) + "]"

	if !o.Valid {
		return fmt.Sprintf("%s INVALID: %s | %s", stamp, strings.TrimSpace(o.Line), o.Reason)
	}

	if o.ErrKind != "" {
		detail := o.ErrDetail
		if o.ErrKind == models.ErrHTTPStatus {
			detail = fmt.Sprintf("HTTP %d", o.StatusCode)
		}
		return fmt.Sprintf("%s FAILED (%s): %s | %s", stamp, o.ErrKind, o.URL, detail)
	}

	extra := fmt.Sprintf("blocks=%d", len(o.Page.Blocks))
	if o.Page.Meta.Language != "" {
		extra += fmt.Sprintf(" lang=%s", o.Page.Meta.Language)
	}
	return fmt.Sprintf("%s OK (%d): %s | %s", stamp, o.StatusCode, o.URL, extra)
}

// errorText is the human-readable error used inside the document section.
func (o Outcome) errorText() string {
	if o.ErrKind == models.ErrHTTPStatus {
		return fmt.Sprintf("HTTP %d", o.StatusCode)
	}
	if o.ErrDetail != "" {
		return fmt.Sprintf("%s (%s)", o.ErrDetail, o.ErrKind)
	}
	return string(o.ErrKind)
}
