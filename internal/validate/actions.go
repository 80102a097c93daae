// Package validate implements the validate command: a classification pass
// over the input file that fetches nothing and writes nothing.
package validate

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/sitemap2text/models"
	"github.com/dtnitsch/sitemap2text/pkg/fetcher"
	"github.com/dtnitsch/sitemap2text/pkg/storage"
	"github.com/dtnitsch/sitemap2text/pkg/validator"
	"github.com/urfave/cli/v2"
)

// ValidateAction classifies every input line and prints a per-line verdict.
// With --preflight it also checks reachability via concurrent HEAD requests.
func ValidateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	store := &storage.Storage{}
	lines, err := store.ReadLines(c.String("input"))
	if err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}

	records := validator.ClassifyAll(lines)

	if c.Bool("preflight") {
		timeout, err := config.FetchTimeout()
		if err != nil {
			return err
		}
		client := fetcher.NewFetcher(timeout, fetcher.WithUserAgent(config.UserAgent))
		logger.Info("Running preflight reachability checks", "workers", config.WorkerCount)
		if err := validator.Preflight(c.Context, client, records, config.WorkerCount); err != nil {
			logger.Warn("Preflight aborted", "error", err)
		}
	}

	valid := 0
	for i, record := range records {
		if record.Valid {
			valid++
			fmt.Printf("%4d  OK       %s\n", i+1, record.URL)
		} else {
			fmt.Printf("%4d  INVALID  %s (%s)\n", i+1, record.Raw, record.Reason)
		}
	}
	fmt.Printf("\n%d/%d lines valid\n", valid, len(records))

	if valid < len(records) {
		return cli.Exit("", 1)
	}
	return nil
}
