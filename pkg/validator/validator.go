// Package validator classifies sitemap lines as fetchable URLs or rejects.
package validator

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/dtnitsch/sitemap2text/models"
	"golang.org/x/sync/errgroup"
)

// urlPattern is the fast-path format check. Must start with http:// or
// https:// and have a plausible domain; net/url does the structural check.
var urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?(/[^\s]*)?$`)

// markdownLinkPattern extracts the URL from a pasted markdown link.
var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// Record is the classification of one input line.
type Record struct {
	Raw    string // line as read from the input file
	URL    string // sanitized URL, empty when invalid
	Valid  bool
	Reason string           // why the line was rejected, empty when valid
	Kind   models.ErrorKind // unreachable for preflight rejects, empty otherwise
}

// Sanitize performs basic cleanup on a line to tolerate common copy-paste
// issues: surrounding whitespace, trailing punctuation, markdown link syntax.
func Sanitize(line string) string {
	cleaned := strings.TrimSpace(line)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, ch := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, ch)
	}
	for _, ch := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, ch)
	}

	return strings.TrimSpace(cleaned)
}

// Classify sanitizes and validates a single input line.
func Classify(line string) Record {
	record := Record{Raw: line}

	cleaned := Sanitize(line)
	if cleaned == "" {
		record.Reason = "empty line"
		return record
	}
	if strings.Contains(cleaned, " ") {
		record.Reason = "URL contains literal spaces (encode as %20)"
		return record
	}
	if !urlPattern.MatchString(cleaned) {
		record.Reason = "not an absolute http(s) URL"
		return record
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		record.Reason = "unparseable URL: " + err.Error()
		return record
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		record.Reason = "scheme must be http or https"
		return record
	}
	if parsed.Host == "" {
		record.Reason = "missing host"
		return record
	}
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		record.Reason = "malformed host"
		return record
	}

	record.URL = cleaned
	record.Valid = true
	return record
}

// ClassifyAll classifies every line, preserving input order.
func ClassifyAll(lines []string) []Record {
	records := make([]Record, len(lines))
	for i, line := range lines {
		records[i] = Classify(line)
	}
	return records
}

// HeadClient issues HEAD requests for preflight reachability checks.
type HeadClient interface {
	Head(ctx context.Context, url string) (int, error)
}

// Preflight issues concurrent HEAD requests for every valid record and marks
// unreachable ones (connection failure or status >= 400) invalid. Each record
// slot is owned by exactly one goroutine, so no locking is needed. The
// concurrency limit bounds simultaneous requests.
func Preflight(ctx context.Context, client HeadClient, records []Record, concurrency int) error {
	if concurrency <= 0 {
		concurrency = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range records {
		if !records[i].Valid {
			continue
		}
		record := &records[i]
		g.Go(func() error {
			status, err := client.Head(ctx, record.URL)
			if err != nil {
				record.Valid = false
				record.Reason = "unreachable: " + err.Error()
				record.Kind = models.ErrUnreachable
				return nil
			}
			if status >= http.StatusBadRequest {
				record.Valid = false
				record.Reason = "unreachable: HTTP " + http.StatusText(status)
				record.Kind = models.ErrUnreachable
			}
			return nil
		})
	}

	return g.Wait()
}
