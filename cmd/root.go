package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/survey-snapshot/internal/config"
	"github.com/KaramelBytes/survey-snapshot/internal/pipeline"
	"github.com/KaramelBytes/survey-snapshot/internal/utils"
)

var (
	// Global flags
	cfgFile string
	rootDir string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "survey-snapshot",
	Short: "Anonymize a survey export and write a summary report",
	Long: `survey-snapshot reads a survey export (survey_responses.xlsx, or the previously
written data/cleaned_responses.csv), drops personally identifying columns, and writes
descriptive statistics, an NPS-style score, open-text sentiment and charts to
artifacts/summary.md.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), c.LogLevel, debug)
		res, err := pipeline.Run(c, pipeline.NewDeps(c, logger))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := res.Paths
		if res.CSVWritten {
			fmt.Fprintf(out, "✓ Wrote anonymized data to %s\n", utils.RelSlash(p.Root, p.CleanCSV))
		} else {
			fmt.Fprintf(out, "⚠ Warning: anonymized data not written to %s\n", utils.RelSlash(p.Root, p.CleanCSV))
		}
		if n := len(res.Summary.Figures); n > 0 {
			fmt.Fprintf(out, "✓ Rendered %d figure(s) in %s\n", n, utils.RelSlash(p.Root, p.FiguresDir))
		}
		if res.HTMLWritten {
			fmt.Fprintf(out, "✓ Wrote HTML summary to %s\n", utils.RelSlash(p.Root, p.SummaryHTML))
		}
		fmt.Fprintf(out, "✓ Wrote summary to %s\n", utils.RelSlash(p.Root, p.SummaryMD))
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/survey.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root holding the input and outputs (default is root_dir from config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	cfg, cfgErr = cfgpkg.Load(cfgFile, rootDir)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", cfgErr)
	}
}

// requireConfig returns the loaded configuration or the reason it is missing.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, cfgErr
		}
		return nil, fmt.Errorf("no config loaded")
	}
	return cfg, nil
}

// newLogger returns a text logger on w tagged with a fresh run id.
func newLogger(w io.Writer, level string, debug bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("run_id", uuid.NewString())
}
