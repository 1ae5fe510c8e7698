// convert command.
// Orchestrates the pipeline for one input:
// read (file, stdin or fetch) → extract → normalize → render → write.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/clipmark/core"
	"github.com/gaurav-prasanna/clipmark/core/fetch"
	"github.com/gaurav-prasanna/clipmark/core/output"
	"github.com/gaurav-prasanna/clipmark/core/pipeline"
	"github.com/gaurav-prasanna/clipmark/core/render"
)

// Flag variables.
var (
	flagURL       string
	flagReader    bool
	flagMarkdown  bool
	flagJSON      bool
	flagHTML      bool
	flagPDF       bool
	flagOutputDir string
	flagForce     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert HTML to Markdown (or JSON, HTML, PDF)",
	Long: `Convert reads HTML from a file, from stdin (no argument or "-") or from a URL,
converts it to Pandoc-flavoured Markdown and renders the chosen output format.

Examples:
  xclip -o -t text/html | clipmark convert
  clipmark convert page.html --json
  clipmark convert --url https://example.com --reader --output_dir ./out
  clipmark convert notes.html --pdf --output_dir ./out --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Input flags.
	convertCmd.Flags().StringVar(&flagURL, "url", "", "Fetch the HTML from this URL instead of reading a file")
	convertCmd.Flags().BoolVar(&flagReader, "reader", false, "Keep only the main content of a full page")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown (default)")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an HTML preview")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF (requires --output_dir)")

	// Output location.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write a file named after the first line into this directory instead of stdout")
	convertCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file instead of picking a free name")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateFlags(args); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	source, html, err := readInput(cmd.Context(), cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	res, err := pipeline.New(flagReader).Run(source, html, renderer)
	if err != nil {
		return err
	}

	if flagOutputDir == "" {
		_, err := cmd.OutOrStdout().Write(terminate(res.Data, renderer))
		return err
	}

	writer, err := output.New(flagOutputDir, flagForce)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(res.Meta.Filename, renderer.Extension(), res.Data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// readInput returns the source label and the HTML to convert.
func readInput(ctx context.Context, stdin io.Reader, args []string) (string, string, error) {
	if flagURL != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := fetch.New().Fetch(ctx, flagURL)
		if err != nil {
			return "", "", fmt.Errorf("fetch: %w", err)
		}
		return flagURL, result.HTML, nil
	}

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// terminate adds a trailing newline to textual output on a terminal stream.
func terminate(data []byte, r core.Renderer) []byte {
	if r.Extension() == ".pdf" || len(data) == 0 || data[len(data)-1] == '\n' {
		return data
	}
	return append(data, '\n')
}

// validateFlags checks that at most one output format is chosen and that
// the input and output flags are consistent.
func validateFlags(args []string) error {
	formatCount := 0
	for _, set := range []bool{flagMarkdown, flagJSON, flagHTML, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagURL != "" {
		if len(args) > 0 {
			return fmt.Errorf("--url and a file argument are mutually exclusive")
		}
		checked, err := fetch.CheckURL(flagURL)
		if err != nil {
			return err
		}
		flagURL = checked
	}

	if flagPDF && flagOutputDir == "" {
		return fmt.Errorf("--pdf requires --output_dir")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagJSON:
		return render.ForFormat("json")
	case flagHTML:
		return render.ForFormat("html")
	case flagPDF:
		return render.ForFormat("pdf")
	default:
		return render.ForFormat("markdown")
	}
}
