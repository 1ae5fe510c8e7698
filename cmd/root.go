// Package cmd implements the CLI commands for clipmark using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/clipmark/internal/config"
	"github.com/gaurav-prasanna/clipmark/internal/logging"
)

// Persistent flag variables.
var (
	flagLogLevel  string
	flagLogFormat string
)

// cfg is loaded from the environment before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "clipmark",
	Short: "clipmark turns pasted rich text into clean Markdown",
	Long: `clipmark converts HTML (a clipboard paste, a saved page or a URL) into
Pandoc-flavoured Markdown, and can render the result as JSON, HTML or PDF.

Usage:
  clipmark convert [file|-] [flags]
  clipmark serve [flags]`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from CLIPMARK_LOG_LEVEL or info)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json (default from CLIPMARK_LOG_FORMAT or text)")
}

// setup loads configuration and installs the logger. Logs go to stderr so
// converted output on stdout stays clean.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		loaded.LogFormat = flagLogFormat
	}

	if _, err := logging.Setup(os.Stderr, loaded.LogLevel, loaded.LogFormat); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
