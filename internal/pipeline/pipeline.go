// Package pipeline runs one survey snapshot: load, anonymize, analyze, report.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/survey-snapshot/internal/analysis"
	"github.com/KaramelBytes/survey-snapshot/internal/charts"
	"github.com/KaramelBytes/survey-snapshot/internal/columns"
	"github.com/KaramelBytes/survey-snapshot/internal/config"
	"github.com/KaramelBytes/survey-snapshot/internal/dataset"
	"github.com/KaramelBytes/survey-snapshot/internal/report"
	"github.com/KaramelBytes/survey-snapshot/internal/sentiment"
	"github.com/KaramelBytes/survey-snapshot/internal/utils"
	"gonum.org/v1/plot/vg"
)

// Paths are the absolute locations a run reads and writes.
type Paths struct {
	Root        string
	InputXLSX   string
	CleanCSV    string
	SummaryMD   string
	SummaryHTML string
	FiguresDir  string
}

// ResolvePaths anchors the configured paths under the root directory.
func ResolvePaths(c *config.Global) Paths {
	root := c.RootDir
	md := utils.ResolveUnder(root, c.SummaryMD)
	return Paths{
		Root:        root,
		InputXLSX:   utils.ResolveUnder(root, c.InputXLSX),
		CleanCSV:    utils.ResolveUnder(root, c.CleanCSV),
		SummaryMD:   md,
		SummaryHTML: strings.TrimSuffix(md, filepath.Ext(md)) + ".html",
		FiguresDir:  utils.ResolveUnder(root, c.FiguresDir),
	}
}

// Deps are the capabilities chosen once at startup.
type Deps struct {
	Sentiment sentiment.Engine
	Charts    charts.Renderer
	Logger    *slog.Logger
}

// NewDeps builds the sentiment engine and chart renderer the config asks for.
func NewDeps(c *config.Global, logger *slog.Logger) Deps {
	if logger == nil {
		logger = slog.Default()
	}
	eng := sentiment.New(c.SentimentEnabled)
	var r charts.Renderer = charts.Disabled{}
	if c.ChartsEnabled {
		r = charts.NewPlotter(charts.Options{
			DPI:            c.ChartDPI,
			MaxNumeric:     c.ChartMaxNumeric,
			MaxCategorical: c.ChartMaxCategorical,
			MaxCardinality: c.ChartMaxCardinality,
			Width:          6.4 * vg.Inch,
			Height:         4.8 * vg.Inch,
			Logger:         logger,
		})
	}
	return Deps{Sentiment: eng, Charts: r, Logger: logger}
}

// Result describes what a run produced.
type Result struct {
	Paths   Paths
	Source  string
	Dropped []string
	Roles   columns.Roles
	Summary *report.Summary
	// CSVWritten is false when persisting the anonymized table failed.
	CSVWritten  bool
	HTMLWritten bool
}

// Inspect loads and anonymizes the input and classifies what is left,
// without writing anything.
func Inspect(c *config.Global) (*dataset.Dataset, *Result, error) {
	p := ResolvePaths(c)
	ds, src, err := dataset.Load(p.InputXLSX, p.CleanCSV, dataset.ReadOptions{Sheet: c.SheetName})
	if err != nil {
		return nil, nil, err
	}
	clean, dropped, err := dataset.Anonymize(ds)
	if err != nil {
		return nil, nil, fmt.Errorf("anonymize: %w", err)
	}
	res := &Result{
		Paths:   p,
		Source:  src,
		Dropped: dropped,
		Roles:   columns.Classify(clean.Schema()),
	}
	return clean, res, nil
}

// Run executes the full snapshot. Only a missing or unreadable input and a
// failed summary write abort the run; everything else degrades to a warning
// or a placeholder in the report.
func Run(c *config.Global, d Deps) (*Result, error) {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	if d.Sentiment == nil {
		d.Sentiment = sentiment.Unavailable{}
	}
	if d.Charts == nil {
		d.Charts = charts.Disabled{}
	}

	ds, res, err := Inspect(c)
	if err != nil {
		return nil, err
	}
	p := res.Paths
	log.Info("loaded survey", "source", utils.RelSlash(p.Root, res.Source), "rows", ds.Rows(), "columns", len(ds.Columns()))
	if len(res.Dropped) > 0 {
		log.Info("dropped PII columns", "columns", res.Dropped)
	}

	if err := dataset.WriteCSV(p.CleanCSV, ds); err != nil {
		log.Warn("could not write anonymized CSV", "path", p.CleanCSV, "error", err)
	} else {
		res.CSVWritten = true
	}

	roles := res.Roles
	log.Debug("classified columns",
		"satisfaction", roles.Satisfaction,
		"recommendation", roles.Recommendation,
		"text", roles.Text,
		"sentiment_engine", d.Sentiment.Name())

	sum := &report.Summary{
		Rows:      ds.Rows(),
		Columns:   len(ds.Columns()),
		Stats:     analysis.ComputeBasicStats(ds, roles.Satisfaction, c.StatsMaxColumns),
		NPS:       analysis.ComputeNPS(ds, roles.Recommendation),
		Sentiment: analysis.AnalyzeOpenText(ds, roles.Text, d.Sentiment),
	}

	if d.Charts.Available() {
		figs, err := d.Charts.Render(ds, p.FiguresDir)
		if err != nil {
			log.Warn("chart rendering failed", "dir", p.FiguresDir, "error", err)
		}
		for _, f := range figs {
			sum.Figures = append(sum.Figures, utils.RelSlash(p.Root, f))
		}
	}
	res.Summary = sum

	if err := sum.Write(p.SummaryMD); err != nil {
		return res, fmt.Errorf("write summary: %w", err)
	}
	if c.HTMLEnabled {
		if err := sum.WriteHTML(p.SummaryHTML); err != nil {
			log.Warn("could not write HTML summary", "path", p.SummaryHTML, "error", err)
		} else {
			res.HTMLWritten = true
		}
	}
	return res, nil
}
