package convert

import (
	"time"

	"github.com/dtnitsch/sitemap2text/models"
)

// Job is one fetch+extract task. Index is the position of the line in the
// input file; it is how results are joined back into input order.
type Job struct {
	Index int
	URL   string
}

// Result holds the outcome of a processed job.
type Result struct {
	Index       int
	URL         string
	StatusCode  int
	ErrKind     models.ErrorKind
	ErrDetail   string
	Page        *models.Page
	CompletedAt time.Time
}

// Stats provides summary statistics for the run.
type Stats struct {
	Total            int
	Succeeded        int
	Failed           int
	TotalTimeSeconds float64
}
