// Package history implements the history command over the run database.
package history

import (
	"fmt"
	"strconv"

	"github.com/dtnitsch/sitemap2text/pkg/db"
	"github.com/urfave/cli/v2"
)

// HistoryAction lists past runs, newest first. With --run it prints the
// per-URL outcomes of one run instead.
func HistoryAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("cannot open history database: %w", err)
	}
	defer database.Close()

	if c.IsSet("run") {
		return printRunResults(database, int64(c.Int("run")))
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-5s %-20s %-30s %8s %10s %7s %9s\n",
		"ID", "STARTED", "INPUT", "TOTAL", "SUCCEEDED", "FAILED", "DURATION")
	for _, run := range runs {
		fmt.Printf("%-5d %-20s %-30s %8d %10d %7d %8.1fs\n",
			run.RunID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			truncate(run.InputFile, 30),
			run.Total, run.Succeeded, run.Failed, run.Duration,
		)
	}
	return nil
}

// printRunResults prints the per-URL outcomes of a single run in input order.
func printRunResults(database *db.DB, runID int64) error {
	results, err := database.GetRunResults(runID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("Run %d has no recorded URLs.\n", runID)
		return nil
	}

	for _, r := range results {
		status := "OK " + strconv.Itoa(r.StatusCode)
		if !r.Success {
			status = "FAILED"
			if r.ErrorKind != "" {
				status += " (" + r.ErrorKind + ")"
			}
		}
		extra := ""
		if r.Success {
			extra = fmt.Sprintf("  blocks=%d", r.BlockCount)
			if r.Language != "" {
				extra += " lang=" + r.Language
			}
		}
		fmt.Printf("%4d  %-28s %s%s\n", r.Position+1, status, r.URL, extra)
	}
	return nil
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
