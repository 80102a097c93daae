package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/sitemap2text/internal/report"
	"github.com/dtnitsch/sitemap2text/models"
	"github.com/dtnitsch/sitemap2text/pkg/db"
	"github.com/dtnitsch/sitemap2text/pkg/detector"
	"github.com/dtnitsch/sitemap2text/pkg/extractor"
	"github.com/dtnitsch/sitemap2text/pkg/fetcher"
	"github.com/dtnitsch/sitemap2text/pkg/storage"
	"github.com/dtnitsch/sitemap2text/pkg/validator"
	"github.com/urfave/cli/v2"
)

// ConvertAction drives the whole pipeline: read input, validate, fetch and
// extract across the worker pool, assemble the report, write the output
// folder. Per-URL failures are recorded and recovered; only I/O on the input
// file or output folder aborts the run.
func ConvertAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config, err := loadConfig(c)
	if err != nil {
		return err
	}

	timeout, err := config.FetchTimeout()
	if err != nil {
		return err
	}
	kinds, err := config.TagKinds()
	if err != nil {
		return err
	}

	inputPath := c.String("input")
	store := &storage.Storage{}
	lines, err := store.ReadLines(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}

	runDir, err := storage.NewRunDir(c.String("output-dir"), inputPath, startTime)
	if err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}
	logger.Info("Run directory created", "dir", runDir.Dir)

	// Run history is best-effort; a missing or broken DB never fails the run.
	var database *db.DB
	var runID int64
	if !c.Bool("no-history") {
		database, err = db.Open(c.String("db"))
		if err != nil {
			logger.Warn("Failed to open history database, continuing without", "error", err)
		} else {
			defer database.Close()
			runID, err = database.InsertRun(inputPath, runDir.Dir)
			if err != nil {
				logger.Warn("Failed to record run", "error", err)
			}
		}
	}

	outcomes, stats := runPipeline(c.Context, logger, config, timeout, kinds, lines)

	document, err := report.BuildDocument(filepath.Base(inputPath), startTime, outcomes)
	if err != nil {
		return err
	}
	if err := store.SaveFile(runDir.OutputPath, []byte(document)); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	if err := store.SaveFile(runDir.LogPath, []byte(report.BuildLog(outcomes))); err != nil {
		return fmt.Errorf("cannot write log file: %w", err)
	}

	stats.TotalTimeSeconds = time.Since(startTime).Seconds()
	recordHistory(logger, database, runID, outcomes, stats)

	logger.Info("Conversion complete",
		"total", stats.Total,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"duration_seconds", stats.TotalTimeSeconds,
	)
	fmt.Printf("%d/%d URLs succeeded\nOutput: %s\n", stats.Succeeded, stats.Total, runDir.Dir)

	if stats.Total > 0 && stats.Failed == stats.Total {
		return cli.Exit("all URLs failed", 2)
	}
	if stats.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c *cli.Context) (*models.Config, error) {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("timeout") {
		config.Timeout = c.String("timeout")
	}
	if c.IsSet("tags") {
		config.Tags = strings.Split(c.String("tags"), ",")
	}
	if c.IsSet("readability") {
		config.Readability = c.Bool("readability")
	}
	if c.IsSet("preflight") {
		config.Preflight = c.Bool("preflight")
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	return config, nil
}

// runPipeline validates the lines, runs the worker pool over the valid URLs,
// and joins everything back into input order.
func runPipeline(ctx context.Context, logger *slog.Logger, config *models.Config, timeout time.Duration, kinds []models.TagKind, lines []string) ([]report.Outcome, Stats) {
	opts := []fetcher.Option{fetcher.WithUserAgent(config.UserAgent)}
	if !config.FollowRedirects {
		opts = append(opts, fetcher.WithoutRedirects())
	}

	pipeline := &Pipeline{
		Fetcher:   fetcher.NewFetcher(timeout, opts...),
		Extractor: extractor.New(kinds, config.Readability),
	}
	if config.DetectLanguage {
		pipeline.Detector = detector.New()
	}

	records := validator.ClassifyAll(lines)
	if config.Preflight {
		if err := validator.Preflight(ctx, pipeline.Fetcher, records, config.WorkerCount); err != nil {
			logger.Warn("Preflight aborted", "error", err)
		}
	}

	validatedAt := time.Now()
	outcomes := make([]report.Outcome, len(records))
	var jobList []Job
	for i, record := range records {
		outcomes[i] = report.Outcome{
			Line:        record.Raw,
			URL:         record.URL,
			Valid:       record.Valid,
			Reason:      record.Reason,
			ErrKind:     record.Kind,
			CompletedAt: validatedAt,
		}
		if !record.Valid {
			logger.Info("Skipping invalid line", "line", record.Raw, "reason", record.Reason)
			continue
		}
		jobList = append(jobList, Job{Index: i, URL: record.URL})
	}

	// Single-writer join phase: workers own their result exclusively and the
	// index-keyed copy below happens only after all of them finish.
	for _, result := range run(ctx, logger, pipeline, jobList, config.WorkerCount) {
		o := &outcomes[result.Index]
		o.StatusCode = result.StatusCode
		o.ErrKind = result.ErrKind
		o.ErrDetail = result.ErrDetail
		o.Page = result.Page
		o.CompletedAt = result.CompletedAt
	}

	summary := report.Summarize(outcomes)
	return outcomes, Stats{Total: summary.Total, Succeeded: summary.Succeeded, Failed: summary.Failed}
}

// recordHistory writes per-URL outcomes and final counts to the history DB.
func recordHistory(logger *slog.Logger, database *db.DB, runID int64, outcomes []report.Outcome, stats Stats) {
	if database == nil || runID == 0 {
		return
	}

	for i, o := range outcomes {
		result := db.URLResult{
			Position:   i,
			URL:        o.URL,
			StatusCode: o.StatusCode,
			Success:    o.Succeeded(),
		}
		if o.URL == "" {
			result.URL = strings.TrimSpace(o.Line)
		}
		// Preflight rejects carry their own kind; format rejects are invalid_url.
		if o.ErrKind != "" {
			result.ErrorKind = string(o.ErrKind)
		} else if !o.Valid {
			result.ErrorKind = string(models.ErrInvalidURL)
		}
		if o.Page != nil {
			result.BlockCount = len(o.Page.Blocks)
			result.Language = o.Page.Meta.Language
		}
		if err := database.InsertURLResult(runID, result); err != nil {
			logger.Warn("Failed to record URL result", "url", o.URL, "error", err)
		}
	}

	duration := time.Duration(stats.TotalTimeSeconds * float64(time.Second))
	if err := database.FinishRun(runID, stats.Total, stats.Succeeded, stats.Failed, duration); err != nil {
		logger.Warn("Failed to finalize run record", "error", err)
	}
}
