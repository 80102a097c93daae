// Package storage handles input reading and per-run output writing.
package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage performs the file I/O for a run. Failures here are run-fatal.
type Storage struct{}

// ReadLines reads the sitemap input file and returns its lines. Trailing
// newline does not produce a phantom empty line; interior blank lines are
// kept so the log stays one-line-per-input-line.
func (s *Storage) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	return lines, nil
}

// SaveFile writes content to filePath.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// InputBase returns the input filename without directory or extension,
// used to name the run directory and output files.
func InputBase(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RunDir holds the paths of one run's output folder and its two files.
type RunDir struct {
	Dir        string
	OutputPath string // <base>-full_text_output.txt
	LogPath    string // <base>-log.txt
}

// NewRunDir creates a timestamped output folder under outputRoot and returns
// the paths for the two output files. The timestamp lives only in the folder
// name so re-runs produce byte-comparable files.
func NewRunDir(outputRoot, inputPath string, now time.Time) (*RunDir, error) {
	base := InputBase(inputPath)
	dir := filepath.Join(outputRoot, fmt.Sprintf("%s-%s", now.Format("20060102-150405"), base))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}
	return &RunDir{
		Dir:        dir,
		OutputPath: filepath.Join(dir, base+"-full_text_output.txt"),
		LogPath:    filepath.Join(dir, base+"-log.txt"),
	}, nil
}
