package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "urls with trailing newline",
			content: "https://a.example\nhttps://b.example\n",
			want:    []string{"https://a.example", "https://b.example"},
		},
		{
			name:    "interior blank line kept",
			content: "https://a.example\n\nhttps://b.example\n",
			want:    []string{"https://a.example", "", "https://b.example"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			s := &Storage{}
			got, err := s.ReadLines(path)
			if err != nil {
				t.Fatalf("ReadLines() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLines() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	s := &Storage{}
	if _, err := s.ReadLines(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("ReadLines() expected error for missing file")
	}
}

func TestNewRunDir(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	runDir, err := NewRunDir(root, "/some/where/sitemap.txt", now)
	if err != nil {
		t.Fatalf("NewRunDir() error = %v", err)
	}

	wantDir := filepath.Join(root, "20250601-123045-sitemap")
	if runDir.Dir != wantDir {
		t.Errorf("Dir = %q, want %q", runDir.Dir, wantDir)
	}
	if info, err := os.Stat(runDir.Dir); err != nil || !info.IsDir() {
		t.Errorf("run directory not created: %v", err)
	}

	if !strings.HasSuffix(runDir.OutputPath, "sitemap-full_text_output.txt") {
		t.Errorf("OutputPath = %q", runDir.OutputPath)
	}
	if !strings.HasSuffix(runDir.LogPath, "sitemap-log.txt") {
		t.Errorf("LogPath = %q", runDir.LogPath)
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	s := &Storage{}
	if err := s.SaveFile(path, []byte("content")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content" {
		t.Errorf("file content = %q", data)
	}
}

func TestInputBase(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"sitemap.txt", "sitemap"},
		{"/a/b/pages.txt", "pages"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := InputBase(tt.path); got != tt.want {
			t.Errorf("InputBase(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
