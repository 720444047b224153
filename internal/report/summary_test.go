package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/survey-snapshot/internal/analysis"
)

func fullSummary() *Summary {
	return &Summary{
		Rows:    1234,
		Columns: 7,
		Stats: []analysis.StatsRecord{{
			Metric:  "satisfaction_score",
			Summary: analysis.Summary{Count: 5, Mean: 7.6, Std: math.Sqrt(1.04), Min: 6, P25: 7, Median: 8, P75: 8, Max: 9},
		}},
		NPS: &analysis.NPSResult{
			Column:    "recommend_score",
			Score:     28.571428,
			Responses: 7,
			Breakdown: []analysis.Share{
				{Category: analysis.Detractor, Fraction: 2.0 / 7},
				{Category: analysis.Passive, Fraction: 1.0 / 7},
				{Category: analysis.Promoter, Fraction: 4.0 / 7},
			},
		},
		Sentiment: &analysis.SentimentRecord{Column: "Any other feedback", Count: 4, Mean: 0.25, P25: -0.1, Median: 0.4, P75: 0.6},
		Figures:   []string{"artifacts/figures/dist_satisfaction_score.png", "artifacts/figures/counts_Batch.png"},
	}
}

func mustContain(t *testing.T, doc string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(doc, want) {
			t.Fatalf("missing %q in:\n%s", want, doc)
		}
	}
}

func TestMarkdownFullReport(t *testing.T) {
	md := fullSummary().Markdown()
	mustContain(t, md,
		"# Summary\n\nRows: 1,234\nColumns: 7\n",
		"## Basic statistics\n| metric | count | mean | std | min | p25 | median | p75 | max |",
		"| satisfaction_score | 5 | 7.6 | 1.0198 | 6 | 7 | 8 | 8 | 9 |",
		"Column: `recommend_score` | NPS: 28.6",
		"| Detractor | 28.6% |",
		"| Passive | 14.3% |",
		"| Promoter | 57.1% |",
		"| Any other feedback | 4 | 0.25 | -0.1 | 0.4 | 0.6 |",
		"## Figures\n- artifacts/figures/dist_satisfaction_score.png\n- artifacts/figures/counts_Batch.png\n",
	)
	if strings.Index(md, "## Basic statistics") > strings.Index(md, "## NPS-style score") ||
		strings.Index(md, "## Open-ended sentiment") > strings.Index(md, "## Figures") {
		t.Fatalf("sections out of order:\n%s", md)
	}
}

func TestMarkdownPlaceholders(t *testing.T) {
	md := (&Summary{Rows: 3}).Markdown()
	mustContain(t, md, "Rows: 3\nColumns: 0\n", noStats, noNPS, noSentiment, noFigures)
}

func TestMarkdownEmptyNPSAndNaNStats(t *testing.T) {
	nan := math.NaN()
	s := &Summary{
		Stats: []analysis.StatsRecord{{Metric: "rating", Summary: analysis.Summary{Mean: nan, Std: nan, Min: nan, P25: nan, Median: nan, P75: nan, Max: nan}}},
		NPS:   &analysis.NPSResult{Column: "nps", Breakdown: []analysis.Share{}},
	}
	md := s.Markdown()
	mustContain(t, md,
		"| rating | 0 | nan | nan | nan | nan | nan | nan | nan |",
		"Column: `nps` has no responses; NPS not computed.",
	)
	if strings.Contains(md, "NaN") {
		t.Fatalf("NaN leaked into report:\n%s", md)
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	s := &Summary{Stats: []analysis.StatsRecord{{Metric: "a|b", Summary: analysis.Summary{Count: 1}}}}
	mustContain(t, s.Markdown(), "| a/b | 1 |")
}

func TestWriteAndHTML(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "artifacts", "summary.md")
	s := fullSummary()
	if err := s.Write(mdPath); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if string(b) != s.Markdown() {
		t.Fatalf("written summary differs from Markdown()")
	}

	htmlPath := filepath.Join(dir, "artifacts", "summary.html")
	if err := s.WriteHTML(htmlPath); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	h, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	mustContain(t, string(h), "<table>", "Survey summary")
}

func TestWriteFailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "artifacts")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := (&Summary{}).Write(filepath.Join(blocker, "summary.md")); err == nil {
		t.Fatalf("expected error when parent is a file")
	}
}
