// Package report assembles the survey summary document.
package report

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KaramelBytes/survey-snapshot/internal/analysis"
	"github.com/KaramelBytes/survey-snapshot/internal/utils"
)

const (
	noStats     = "No numeric satisfaction-like columns detected."
	noNPS       = "No recommendation/NPS column detected."
	noSentiment = "No open-ended feedback column detected or sentiment engine unavailable."
	noFigures   = "No figures generated (plotting disabled or no suitable columns)."
)

// Summary carries everything the report prints. Figures are paths relative
// to the project root.
type Summary struct {
	Rows      int
	Columns   int
	Stats     []analysis.StatsRecord
	NPS       *analysis.NPSResult
	Sentiment *analysis.SentimentRecord
	Figures   []string
}

var counts = message.NewPrinter(language.English)

// Markdown renders the summary document.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("# Summary\n\n")
	b.WriteString(counts.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(counts.Sprintf("Columns: %d\n", s.Columns))

	b.WriteString("\n## Basic statistics\n")
	if len(s.Stats) > 0 {
		rows := make([][]string, len(s.Stats))
		for i, r := range s.Stats {
			rows[i] = []string{
				r.Metric, fmt.Sprintf("%d", r.Count), num(r.Mean), num(r.Std), num(r.Min),
				num(r.P25), num(r.Median), num(r.P75), num(r.Max),
			}
		}
		writeTable(&b, []string{"metric", "count", "mean", "std", "min", "p25", "median", "p75", "max"}, rows)
	} else {
		b.WriteString(noStats + "\n")
	}

	b.WriteString("\n## NPS-style score\n")
	switch {
	case s.NPS == nil:
		b.WriteString(noNPS + "\n")
	case s.NPS.Empty():
		b.WriteString(fmt.Sprintf("Column: `%s` has no responses; NPS not computed.\n", s.NPS.Column))
	default:
		b.WriteString(fmt.Sprintf("Column: `%s` | NPS: %.1f\n", s.NPS.Column, s.NPS.Score))
		rows := make([][]string, len(s.NPS.Breakdown))
		for i, sh := range s.NPS.Breakdown {
			rows[i] = []string{string(sh.Category), fmt.Sprintf("%.1f%%", sh.Fraction*100)}
		}
		writeTable(&b, []string{"category", "share"}, rows)
	}

	b.WriteString("\n## Open-ended sentiment\n")
	if t := s.Sentiment; t != nil {
		writeTable(&b,
			[]string{"column", "count", "mean_polarity", "p25", "median", "p75"},
			[][]string{{t.Column, fmt.Sprintf("%d", t.Count), num(t.Mean), num(t.P25), num(t.Median), num(t.P75)}})
	} else {
		b.WriteString(noSentiment + "\n")
	}

	b.WriteString("\n## Figures\n")
	if len(s.Figures) > 0 {
		for _, f := range s.Figures {
			b.WriteString("- " + f + "\n")
		}
	} else {
		b.WriteString(noFigures + "\n")
	}
	return b.String()
}

// Write renders the summary to path, creating the parent directory.
func (s *Summary) Write(path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	if err := utils.SafeWriteFile(path, []byte(s.Markdown())); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = safeVal(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.6g", v)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
