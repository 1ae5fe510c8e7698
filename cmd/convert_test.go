package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/clipmark/core"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	flagURL, flagReader = "", false
	flagMarkdown, flagJSON, flagHTML, flagPDF = false, false, false, false
	flagOutputDir, flagForce = "", false
	flagLogLevel, flagLogFormat = "", ""

	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	t.Run("reads stdin and writes markdown to stdout", func(t *testing.T) {
		out, err := run(t, "<h1>Notes</h1><ul><li>one</li><li>two</li></ul>", "convert")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Notes\n=====\n\n-   one\n-   two\n"
		if out != want {
			t.Fatalf("expected %q, got: %q", want, out)
		}
	})

	t.Run("reads a file and renders json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(path, []byte(`<p>See <a href="https://x.com">x</a></p>`), 0644); err != nil {
			t.Fatal(err)
		}

		out, err := run(t, "", "convert", path, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var doc core.DocumentJSON
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("expected JSON, got: %q", out)
		}
		if doc.Metadata.Source != path || len(doc.Structure.Links) != 1 {
			t.Fatalf("unexpected document: %+v", doc)
		}
	})

	t.Run("writes into the output directory", func(t *testing.T) {
		dir := t.TempDir()
		for _, want := range []string{"weekly-report.md", "weekly-report-1.md"} {
			out, err := run(t, "<h2>Weekly Report</h2><p>done</p>", "convert", "-", "--output_dir", dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != "✓ Written: "+filepath.Join(dir, want)+"\n" {
				t.Fatalf("unexpected output: %q", out)
			}
		}

		if _, err := run(t, "<h2>Weekly Report</h2><p>new</p>", "convert", "--output_dir", dir, "--force"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "weekly-report.md"))
		if !strings.HasSuffix(string(data), "new") {
			t.Fatalf("expected forced overwrite, got: %q", data)
		}
	})

	t.Run("writes a pdf file", func(t *testing.T) {
		dir := t.TempDir()
		out, err := run(t, "<h1>Doc</h1><p>body</p>", "convert", "--pdf", "--output_dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "doc.pdf") {
			t.Fatalf("unexpected output: %q", out)
		}
	})

	t.Run("fetches a url in reader mode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body><nav>Menu</nav><article><p>Story</p></article></body></html>`))
		}))
		defer srv.Close()

		out, err := run(t, "", "convert", "--url", srv.URL, "--reader")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "Story\n" {
			t.Fatalf("expected reader output, got: %q", out)
		}
	})

	t.Run("rejects inconsistent flags", func(t *testing.T) {
		tests := []struct {
			args []string
			want string
		}{
			{[]string{"convert", "--json", "--html"}, "only one output format"},
			{[]string{"convert", "--pdf"}, "--pdf requires --output_dir"},
			{[]string{"convert", "--url", "example.com"}, "invalid URL"},
			{[]string{"convert", "a.html", "--url", "https://example.com"}, "mutually exclusive"},
			{[]string{"convert", "--log-level", "loud"}, "unknown log level"},
		}
		for _, tt := range tests {
			_, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("%v: expected error containing %q, got: %v", tt.args, tt.want, err)
			}
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := run(t, "", "convert", filepath.Join(t.TempDir(), "nope.html"))
		if err == nil || !strings.Contains(err.Error(), "reading") {
			t.Fatalf("expected a read error, got: %v", err)
		}
	})
}
