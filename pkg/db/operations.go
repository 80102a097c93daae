package db

import (
	"database/sql"
	"fmt"
	"time"
)

// RunInfo is one row of the runs table.
type RunInfo struct {
	RunID     int64
	StartedAt time.Time
	InputFile string
	OutputDir string
	Total     int
	Succeeded int
	Failed    int
	Duration  float64
}

// URLResult is one row of the run_urls table.
type URLResult struct {
	Position   int
	URL        string
	StatusCode int
	ErrorKind  string
	BlockCount int
	Language   string
	Success    bool
}

// InsertRun records the start of a run and returns its ID.
func (db *DB) InsertRun(inputFile, outputDir string) (int64, error) {
	res, err := db.Exec(
		"INSERT INTO runs (input_file, output_dir) VALUES (?, ?)",
		inputFile, outputDir,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stores the final counts and duration for a run.
func (db *DB) FinishRun(runID int64, total, succeeded, failed int, duration time.Duration) error {
	_, err := db.Exec(
		"UPDATE runs SET total = ?, succeeded = ?, failed = ?, duration_seconds = ? WHERE run_id = ?",
		total, succeeded, failed, duration.Seconds(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertURLResult records one URL outcome for a run.
func (db *DB) InsertURLResult(runID int64, r URLResult) error {
	_, err := db.Exec(
		`INSERT INTO run_urls (run_id, position, url, status_code, error_kind, block_count, language, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Position, r.URL, nullableInt(r.StatusCode), nullableString(r.ErrorKind),
		r.BlockCount, nullableString(r.Language), r.Success,
	)
	if err != nil {
		return fmt.Errorf("failed to insert url result: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT run_id, started_at, input_file, COALESCE(output_dir, ''),
		        total, succeeded, failed, COALESCE(duration_seconds, 0)
		 FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.InputFile, &r.OutputDir,
			&r.Total, &r.Succeeded, &r.Failed, &r.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunResults returns the per-URL outcomes of a run in input order.
func (db *DB) GetRunResults(runID int64) ([]URLResult, error) {
	rows, err := db.Query(
		`SELECT position, url, COALESCE(status_code, 0), COALESCE(error_kind, ''),
		        COALESCE(block_count, 0), COALESCE(language, ''), success
		 FROM run_urls WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run results: %w", err)
	}
	defer rows.Close()

	var results []URLResult
	for rows.Next() {
		var r URLResult
		if err := rows.Scan(&r.Position, &r.URL, &r.StatusCode, &r.ErrorKind,
			&r.BlockCount, &r.Language, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan url result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}
