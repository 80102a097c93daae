package report

import (
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/sitemap2text/models"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// threeLineOutcomes models the canonical mixed run: one success, one invalid
// line, one timeout.
func threeLineOutcomes() []Outcome {
	return []Outcome{
		{
			Line:       "https://ok.example/a",
			URL:        "https://ok.example/a",
			Valid:      true,
			StatusCode: 200,
			Page: &models.Page{
				URL: "https://ok.example/a",
				Blocks: []models.Block{
					{Kind: models.TagH1, Text: "A"},
					{Kind: models.TagP, Text: "hi"},
				},
			},
			CompletedAt: testTime,
		},
		{
			Line:        "not-a-url",
			Valid:       false,
			Reason:      "not an absolute http(s) URL",
			CompletedAt: testTime,
		},
		{
			Line:        "https://ok.example/b",
			URL:         "https://ok.example/b",
			Valid:       true,
			ErrKind:     models.ErrTimeout,
			ErrDetail:   "timeout: context deadline exceeded",
			CompletedAt: testTime,
		},
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		outcomes      []Outcome
		wantTotal     int
		wantSucceeded int
		wantFailed    int
	}{
		{
			name:          "mixed run",
			outcomes:      threeLineOutcomes(),
			wantTotal:     3,
			wantSucceeded: 1,
			wantFailed:    2,
		},
		{
			name:          "empty input",
			outcomes:      nil,
			wantTotal:     0,
			wantSucceeded: 0,
			wantFailed:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.outcomes)
			if s.Total != tt.wantTotal || s.Succeeded != tt.wantSucceeded || s.Failed != tt.wantFailed {
				t.Errorf("Summarize() = %+v, want total=%d succeeded=%d failed=%d",
					s, tt.wantTotal, tt.wantSucceeded, tt.wantFailed)
			}
		})
	}
}

func TestBuildDocumentMixedRun(t *testing.T) {
	doc, err := BuildDocument("sitemap.txt", testTime, threeLineOutcomes())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	for _, want := range []string{
		"## Summary Report",
		"Input file: sitemap.txt",
		"Total URLs scanned: 3",
		"Pages successfully scraped: 1",
		"Pages skipped or failed: 2",
		"[https://ok.example/a](https://ok.example/a)",
		"# A",
		"hi",
		"[https://ok.example/b](https://ok.example/b)",
		"**Error accessing https://ok.example/b**",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n---\n%s", want, doc)
		}
	}

	// Both valid URLs get a section; the invalid line gets none.
	if got := strings.Count(doc, "### URL:"); got != 2 {
		t.Errorf("document has %d URL sections, want 2", got)
	}
	if strings.Contains(doc, "not-a-url") {
		t.Error("invalid line leaked into the document")
	}
}

func TestBuildDocumentSectionOrderMatchesInput(t *testing.T) {
	doc, err := BuildDocument("sitemap.txt", testTime, threeLineOutcomes())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	posA := strings.Index(doc, "https://ok.example/a")
	posB := strings.Index(doc, "https://ok.example/b")
	if posA < 0 || posB < 0 || posA > posB {
		t.Errorf("sections out of input order: a@%d b@%d", posA, posB)
	}
}

func TestBuildDocumentEmptyInput(t *testing.T) {
	doc, err := BuildDocument("empty.txt", testTime, nil)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	if !strings.Contains(doc, "Total URLs scanned: 0") {
		t.Errorf("document missing zero summary:\n%s", doc)
	}
	if strings.Contains(doc, "### URL:") {
		t.Error("empty input produced URL sections")
	}
}

func TestBuildDocumentIsDeterministic(t *testing.T) {
	first, err := BuildDocument("sitemap.txt", testTime, threeLineOutcomes())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	second, err := BuildDocument("sitemap.txt", testTime, threeLineOutcomes())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if first != second {
		t.Error("identical inputs produced different documents")
	}
}

func TestBuildLogOneLinePerInputLine(t *testing.T) {
	log := BuildLog(threeLineOutcomes())

	lines := strings.Split(strings.TrimRight(log, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("log has %d lines, want 3:\n%s", len(lines), log)
	}

	if !strings.Contains(lines[0], "OK (200)") {
		t.Errorf("line 1 = %q, want success entry", lines[0])
	}
	if !strings.Contains(lines[1], "INVALID") || !strings.Contains(lines[1], "not-a-url") {
		t.Errorf("line 2 = %q, want invalid entry", lines[1])
	}
	if !strings.Contains(lines[2], string(models.ErrTimeout)) {
		t.Errorf("line 3 = %q, want timeout entry", lines[2])
	}
}

func TestBuildLogEmptyInput(t *testing.T) {
	if log := BuildLog(nil); log != "" {
		t.Errorf("BuildLog(nil) = %q, want empty body", log)
	}
}

func TestLogLineHTTPError(t *testing.T) {
	o := Outcome{
		Line:        "https://gone.example/",
		URL:         "https://gone.example/",
		Valid:       true,
		StatusCode:  404,
		ErrKind:     models.ErrHTTPStatus,
		CompletedAt: testTime,
	}

	line := logLine(o)
	if !strings.Contains(line, "HTTP 404") || !strings.Contains(line, string(models.ErrHTTPStatus)) {
		t.Errorf("logLine() = %q, want HTTP 404 detail", line)
	}
}

func TestBuildDocumentRendersBlockKinds(t *testing.T) {
	outcomes := []Outcome{{
		Line:       "https://ok.example/",
		URL:        "https://ok.example/",
		Valid:      true,
		StatusCode: 200,
		Page: &models.Page{
			URL: "https://ok.example/",
			Blocks: []models.Block{
				{Kind: models.TagH1, Text: "Top"},
				{Kind: models.TagH2, Text: "Mid"},
				{Kind: models.TagH3, Text: "Low"},
				{Kind: models.TagP, Text: "plain"},
				{Kind: models.TagLI, Text: "item"},
			},
		},
		CompletedAt: testTime,
	}}

	doc, err := BuildDocument("sitemap.txt", testTime, outcomes)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	for _, want := range []string{"# Top", "## Mid", "### Low", "plain", "- item"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing rendered block %q\n%s", want, doc)
		}
	}
}
