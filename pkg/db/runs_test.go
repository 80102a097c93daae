package db

import (
	"testing"
	"time"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// Each pooled connection would get its own in-memory database.
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertAndFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("sitemap.txt", "out/20250601-120000-sitemap")
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("InsertRun() returned 0 ID")
	}

	if err := db.FinishRun(runID, 3, 1, 2, 4200*time.Millisecond); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns() returned %d runs, want 1", len(runs))
	}

	run := runs[0]
	if run.RunID != runID || run.Total != 3 || run.Succeeded != 1 || run.Failed != 2 {
		t.Errorf("run = %+v, want total=3 succeeded=1 failed=2", run)
	}
	if run.Duration < 4.1 || run.Duration > 4.3 {
		t.Errorf("duration = %f, want ~4.2", run.Duration)
	}
}

func TestInsertURLResultAndGetRunResults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("sitemap.txt", "")
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	results := []URLResult{
		{Position: 0, URL: "https://ok.example/a", StatusCode: 200, BlockCount: 5, Language: "en", Success: true},
		{Position: 1, URL: "not-a-url", ErrorKind: "invalid_url", Success: false},
		{Position: 2, URL: "https://ok.example/b", ErrorKind: "timeout", Success: false},
	}
	for _, r := range results {
		if err := db.InsertURLResult(runID, r); err != nil {
			t.Fatalf("InsertURLResult(%+v) error = %v", r, err)
		}
	}

	got, err := db.GetRunResults(runID)
	if err != nil {
		t.Fatalf("GetRunResults() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("GetRunResults() returned %d rows, want 3", len(got))
	}

	for i, r := range got {
		if r.Position != i {
			t.Errorf("row %d position = %d, input order not preserved", i, r.Position)
		}
	}
	if got[0].Language != "en" || got[0].BlockCount != 5 || !got[0].Success {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1].ErrorKind != "invalid_url" || got[1].Success {
		t.Errorf("row 1 = %+v", got[1])
	}
	if got[2].ErrorKind != "timeout" {
		t.Errorf("row 2 = %+v", got[2])
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := db.InsertRun("a.txt", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.InsertRun("b.txt", "")
	if err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].RunID != second || runs[1].RunID != first {
		t.Errorf("runs not newest-first: %d then %d", runs[0].RunID, runs[1].RunID)
	}
}

func TestListRunsLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i := 0; i < 5; i++ {
		if _, err := db.InsertRun("sitemap.txt", ""); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRuns(2) returned %d runs", len(runs))
	}
}
