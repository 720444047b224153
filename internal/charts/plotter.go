package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/survey-snapshot/internal/columns"
	"github.com/KaramelBytes/survey-snapshot/internal/utils"
)

// Options controls which columns are charted and how images are sized.
type Options struct {
	DPI            int
	MaxNumeric     int
	MaxCategorical int
	// MaxCardinality is the largest number of distinct values a text column
	// may have to get a count chart.
	MaxCardinality int
	Width, Height  vg.Length
	Logger         *slog.Logger
}

// DefaultOptions returns the limits used by the summary run.
func DefaultOptions() Options {
	return Options{
		DPI:            150,
		MaxNumeric:     4,
		MaxCategorical: 4,
		MaxCardinality: 10,
		Width:          6.4 * vg.Inch,
		Height:         4.8 * vg.Inch,
	}
}

var (
	barColor  = color.RGBA{R: 76, G: 114, B: 176, A: 255}
	densColor = color.RGBA{R: 221, G: 132, B: 82, A: 255}
)

// Plotter renders PNG charts with gonum/plot.
type Plotter struct {
	opt Options
}

// NewPlotter fills unset options with defaults.
func NewPlotter(opt Options) *Plotter {
	def := DefaultOptions()
	if opt.DPI <= 0 {
		opt.DPI = def.DPI
	}
	if opt.MaxNumeric <= 0 {
		opt.MaxNumeric = def.MaxNumeric
	}
	if opt.MaxCategorical <= 0 {
		opt.MaxCategorical = def.MaxCategorical
	}
	if opt.MaxCardinality <= 0 {
		opt.MaxCardinality = def.MaxCardinality
	}
	if opt.Width <= 0 {
		opt.Width = def.Width
	}
	if opt.Height <= 0 {
		opt.Height = def.Height
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Plotter{opt: opt}
}

func (p *Plotter) Available() bool { return true }

// Render draws a histogram with a density overlay for the first numeric
// columns and a bar count for the first low-cardinality text columns. A chart
// that fails to draw is logged and skipped.
func (p *Plotter) Render(t Table, dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create figures dir: %w", err)
	}
	var numeric, categorical []string
	for _, c := range t.Schema() {
		switch c.Kind {
		case columns.KindNumeric:
			if len(numeric) < p.opt.MaxNumeric {
				numeric = append(numeric, c.Name)
			}
		case columns.KindText:
			if len(categorical) < p.opt.MaxCategorical && t.Unique(c.Name) <= p.opt.MaxCardinality {
				categorical = append(categorical, c.Name)
			}
		}
	}

	var paths []string
	for _, name := range numeric {
		vals := t.Floats(name)
		if len(vals) == 0 {
			p.opt.Logger.Debug("skipping empty numeric column", "column", name)
			continue
		}
		out := filepath.Join(dir, "dist_"+Sanitize(name)+".png")
		if err := p.histogram(name, vals, out); err != nil {
			p.opt.Logger.Warn("histogram failed", "column", name, "error", err)
			continue
		}
		paths = append(paths, out)
	}
	for _, name := range categorical {
		out := filepath.Join(dir, "counts_"+Sanitize(name)+".png")
		if err := p.counts(name, t.Texts(name), out); err != nil {
			p.opt.Logger.Warn("count chart failed", "column", name, "error", err)
			continue
		}
		paths = append(paths, out)
	}
	return paths, nil
}

func (p *Plotter) histogram(name string, vals []float64, out string) error {
	pl := plot.New()
	pl.Title.Text = "Distribution: " + name
	pl.X.Label.Text = name
	pl.Y.Label.Text = "Density"

	h, err := plotter.NewHist(plotter.Values(vals), sturges(len(vals)))
	if err != nil {
		return fmt.Errorf("hist: %w", err)
	}
	h.Normalize(1)
	h.FillColor = barColor
	pl.Add(h)

	if k := newKDE(vals); k != nil {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range vals {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		fn := plotter.NewFunction(k.Density)
		fn.XMin = lo - 3*k.bandwidth
		fn.XMax = hi + 3*k.bandwidth
		fn.Samples = 200
		fn.Color = densColor
		fn.Width = vg.Points(2)
		pl.Add(fn)
	}
	return p.save(pl, out)
}

func (p *Plotter) counts(name string, vals []string, out string) error {
	var labels []string
	idx := map[string]int{}
	var counts plotter.Values
	for _, v := range vals {
		i, ok := idx[v]
		if !ok {
			i = len(labels)
			idx[v] = i
			labels = append(labels, v)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	if len(labels) == 0 {
		return fmt.Errorf("no values")
	}

	pl := plot.New()
	pl.Title.Text = "Counts: " + name
	pl.X.Label.Text = "count"
	bars, err := plotter.NewBarChart(counts, vg.Points(18))
	if err != nil {
		return fmt.Errorf("bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0
	pl.Add(bars)
	pl.NominalY(labels...)
	return p.save(pl, out)
}

func (p *Plotter) save(pl *plot.Plot, out string) error {
	c := vgimg.NewWith(vgimg.UseWH(p.opt.Width, p.opt.Height), vgimg.UseDPI(p.opt.DPI))
	pl.Draw(draw.New(c))
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
