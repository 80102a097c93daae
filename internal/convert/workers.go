package convert

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dtnitsch/sitemap2text/models"
	"github.com/dtnitsch/sitemap2text/pkg/detector"
	"github.com/dtnitsch/sitemap2text/pkg/extractor"
	"github.com/dtnitsch/sitemap2text/pkg/fetcher"
)

// Pipeline bundles the per-URL stages shared by all workers. All of them are
// safe for concurrent use; workers share nothing mutable beyond the channels.
type Pipeline struct {
	Fetcher   *fetcher.Fetcher
	Extractor *extractor.Extractor
	Detector  *detector.Detector // nil disables language detection
}

// run dispatches jobs across a fixed-size worker pool and collects all
// results after the join. Result order is not meaningful here; the caller
// restores input order via Result.Index.
func run(ctx context.Context, logger *slog.Logger, pipeline *Pipeline, jobList []Job, workerCount int) []Result {
	logger.Info("Starting concurrent fetch phase", "url_count", len(jobList), "workers", workerCount)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(jobList))
	results := make(chan Result, len(jobList))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, pipeline, &wg, jobs, results)
	}

	for _, job := range jobList {
		jobs <- job
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All fetch workers finished")

	collected := make([]Result, 0, len(jobList))
	for result := range results {
		collected = append(collected, result)
	}
	return collected
}

// worker processes jobs from the jobs channel and sends results to the
// results channel. Each result slot is owned exclusively by one worker.
func worker(ctx context.Context, id int, logger *slog.Logger, pipeline *Pipeline, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		results <- processURL(ctx, id, logger, pipeline, job)
	}
}

// processURL runs fetch, extract, and language detection for one URL.
// Every failure is terminal for this URL only.
func processURL(ctx context.Context, id int, logger *slog.Logger, pipeline *Pipeline, job Job) (result Result) {
	result = Result{Index: job.Index, URL: job.URL}
	defer func() {
		result.CompletedAt = time.Now()
	}()

	body, status, err := pipeline.Fetcher.Get(ctx, job.URL)
	result.StatusCode = status
	if err != nil {
		var fetchErr *fetcher.Error
		if errors.As(err, &fetchErr) {
			result.ErrKind = fetchErr.Kind
			result.ErrDetail = fetchErr.Error()
		} else {
			result.ErrKind = models.ErrConnection
			result.ErrDetail = err.Error()
		}
		logger.Error("Error fetching URL", "worker_id", id, "url", job.URL, "error", err)
		return result
	}

	page, err := pipeline.Extractor.Extract(job.URL, body)
	if err != nil {
		result.ErrKind = models.ErrParse
		result.ErrDetail = err.Error()
		logger.Error("Error parsing HTML", "worker_id", id, "url", job.URL, "error", err)
		return result
	}

	if pipeline.Detector != nil {
		lang, confidence := pipeline.Detector.Detect(page.ToPlainText())
		page.Meta.Language = lang
		page.Meta.LanguageConfidence = confidence
	}

	result.Page = page
	logger.Info("Worker finished job", "worker_id", id, "url", job.URL, "blocks", len(page.Blocks))
	return result
}
