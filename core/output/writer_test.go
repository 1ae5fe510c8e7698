package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"setext heading", "Meeting Notes\n=============\n\nbody", "meeting-notes"},
		{"atx heading", "## Release 1.2 ##", "release-1.2"},
		{"quote and list markers", "> - Quoted item", "quoted-item"},
		{"invalid characters", `What? A "path/to\file": <x>|*`, "what-a-pathtofile-x"},
		{"whitespace runs", "a \t  b", "a-b"},
		{"inner hyphens are kept", "well-known name", "well-known-name"},
		{"only markers", "* * * * *\n\ntext", DefaultName},
		{"empty document", "", DefaultName},
		{"long first line is capped", strings.Repeat("word ", 60), strings.TrimSuffix(strings.Repeat("word-", 20), "-")},
		{"cap counts runes", strings.Repeat("é", 150), strings.Repeat("é", MaxNameRunes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.markdown); got != tt.want {
				t.Fatalf("expected %q, got: %q", tt.want, got)
			}
		})
	}
}

func TestWriter(t *testing.T) {
	t.Run("creates the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		w, err := New(dir, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		path, err := w.Write("notes", ".md", []byte("hello"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != filepath.Join(dir, "notes.md") {
			t.Fatalf("unexpected path: %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "hello" {
			t.Fatalf("expected file content 'hello', got: %q (%v)", data, err)
		}
	})

	t.Run("picks a free name instead of overwriting", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(dir, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"notes.md", "notes-1.md", "notes-2.md"}
		for i, name := range want {
			path, err := w.Write("notes", ".md", []byte{byte('a' + i)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filepath.Base(path) != name {
				t.Fatalf("expected %s, got: %s", name, filepath.Base(path))
			}
		}

		data, _ := os.ReadFile(filepath.Join(dir, "notes.md"))
		if string(data) != "a" {
			t.Fatalf("expected the first file to be untouched, got: %q", data)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(dir, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := w.Write("notes", ".md", []byte("old")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		path, err := w.Write("notes", ".md", []byte("new"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := os.ReadFile(path)
		if filepath.Base(path) != "notes.md" || string(data) != "new" {
			t.Fatalf("expected notes.md to hold 'new', got: %s = %q", path, data)
		}
	})

	t.Run("empty name falls back to the default", func(t *testing.T) {
		w, err := New(t.TempDir(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		path, err := w.Write("", ".json", []byte("{}"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filepath.Base(path) != DefaultName+".json" {
			t.Fatalf("expected %s.json, got: %s", DefaultName, filepath.Base(path))
		}
	})
}
