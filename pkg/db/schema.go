package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per end-to-end conversion
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input_file TEXT NOT NULL,
    output_dir TEXT,
    total INTEGER NOT NULL DEFAULT 0,
    succeeded INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0,
    duration_seconds REAL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Per-URL outcomes of a run, in input order
CREATE TABLE IF NOT EXISTS run_urls (
    run_url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    url TEXT NOT NULL,
    status_code INTEGER,
    error_kind TEXT,
    block_count INTEGER DEFAULT 0,
    language TEXT,
    success BOOLEAN NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_urls_run ON run_urls(run_id);
CREATE INDEX IF NOT EXISTS idx_run_urls_success ON run_urls(success);
`
