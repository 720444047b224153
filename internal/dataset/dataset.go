package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/survey-snapshot/internal/columns"
)

// Dataset is an in-memory survey table. Numeric columns are stored as float
// series with NaN for missing cells; text and datetime columns as string series.
type Dataset struct {
	df    dataframe.DataFrame
	kinds map[string]columns.Kind
	rows  int
}

// New builds a Dataset from a header and raw string rows with no typed columns.
func New(header []string, records [][]string) (*Dataset, error) {
	return FromTable(Table{Header: header, Rows: records})
}

// FromTable builds a Dataset from a raw table. Short rows are padded, long
// rows truncated. Blank headers become "Unnamed: <i>" and repeated headers
// get ".1", ".2" suffixes.
func FromTable(t Table) (*Dataset, error) {
	names := normalizeHeader(t.Header)
	records := t.Rows
	ds := &Dataset{kinds: make(map[string]columns.Kind, len(names)), rows: len(records)}
	if len(names) == 0 {
		return ds, nil
	}
	cols := make([]series.Series, 0, len(names))
	for j, name := range names {
		cells := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				cells[i] = rec[j]
			}
		}
		kind := inferKind(cells, t.Dates[j])
		ds.kinds[name] = kind
		cols = append(cols, buildSeries(name, kind, cells))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return nil, fmt.Errorf("build dataframe: %w", df.Err)
	}
	ds.df = df
	return ds, nil
}

func buildSeries(name string, kind columns.Kind, cells []string) series.Series {
	if kind == columns.KindNumeric {
		vals := make([]float64, len(cells))
		for i, v := range cells {
			f, ok := parseFloat(v)
			if isMissing(v) || !ok {
				f = math.NaN()
			}
			vals[i] = f
		}
		return series.New(vals, series.Float, name)
	}
	vals := make([]string, len(cells))
	for i, v := range cells {
		if isMissing(v) {
			vals[i] = "NaN"
			continue
		}
		vals[i] = strings.TrimSpace(v)
	}
	return series.New(vals, series.String, name)
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cand := name
		for n := 1; used[cand]; n++ {
			cand = fmt.Sprintf("%s.%d", name, n)
		}
		used[cand] = true
		out[i] = cand
	}
	return out
}

// Rows returns the number of data rows. It survives dropping every column.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the column names in table order.
func (d *Dataset) Columns() []string {
	if len(d.kinds) == 0 {
		return nil
	}
	return d.df.Names()
}

// Kind returns the declared type of a column. Unknown columns report text.
func (d *Dataset) Kind(name string) columns.Kind {
	if k, ok := d.kinds[name]; ok {
		return k
	}
	return columns.KindText
}

// Has reports whether the column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.kinds[name]
	return ok
}

// Schema returns every column with its kind, in table order.
func (d *Dataset) Schema() []columns.Column {
	names := d.Columns()
	out := make([]columns.Column, len(names))
	for i, n := range names {
		out[i] = columns.Column{Name: n, Kind: d.kinds[n]}
	}
	return out
}

// Floats returns the non-missing values of a numeric column. Other columns
// yield nil.
func (d *Dataset) Floats(name string) []float64 {
	if d.kinds[name] != columns.KindNumeric {
		return nil
	}
	raw := d.df.Col(name).Float()
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Texts returns the non-missing values of a column rendered as strings.
func (d *Dataset) Texts(name string) []string {
	if !d.Has(name) {
		return nil
	}
	if d.kinds[name] == columns.KindNumeric {
		vals := d.Floats(name)
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = formatFloat(v)
		}
		return out
	}
	s := d.df.Col(name)
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out = append(out, e.String())
	}
	return out
}

// Unique counts distinct non-missing values in a column.
func (d *Dataset) Unique(name string) int {
	seen := map[string]struct{}{}
	for _, v := range d.Texts(name) {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Drop returns a copy without the named columns. Names that do not exist are
// ignored.
func (d *Dataset) Drop(names ...string) (*Dataset, error) {
	var present []string
	for _, n := range names {
		if d.Has(n) {
			present = append(present, n)
		}
	}
	out := &Dataset{df: d.df, kinds: make(map[string]columns.Kind, len(d.kinds)), rows: d.rows}
	for k, v := range d.kinds {
		out.kinds[k] = v
	}
	if len(present) == 0 {
		return out, nil
	}
	for _, n := range present {
		delete(out.kinds, n)
	}
	if len(out.kinds) == 0 {
		out.df = dataframe.DataFrame{}
		return out, nil
	}
	df := d.df.Drop(present)
	if df.Err != nil {
		return nil, fmt.Errorf("drop columns: %w", df.Err)
	}
	out.df = df
	return out, nil
}

// Records renders the table as CSV records, header first. Missing cells are
// empty strings.
func (d *Dataset) Records() [][]string {
	names := d.Columns()
	out := make([][]string, d.rows+1)
	out[0] = append([]string(nil), names...)
	for i := 1; i <= d.rows; i++ {
		out[i] = make([]string, len(names))
	}
	for j, name := range names {
		s := d.df.Col(name)
		if d.kinds[name] == columns.KindNumeric {
			for i, v := range s.Float() {
				if !math.IsNaN(v) {
					out[i+1][j] = formatFloat(v)
				}
			}
			continue
		}
		for i := 0; i < s.Len(); i++ {
			if e := s.Elem(i); !e.IsNA() {
				out[i+1][j] = e.String()
			}
		}
	}
	return out
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
