package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadOptions tunes how raw tables are read.
type ReadOptions struct {
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// Table is a file's header and raw string rows. Dates marks the columns whose
// every present cell the source stored as a date.
type Table struct {
	Header []string
	Rows   [][]string
	Dates  map[int]bool
}

// Reader turns a file into a raw table.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt ReadOptions) (Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates no registered reader handles the file.
var ErrUnsupported = errors.New("unsupported table format")

// ReadFile selects a reader by file name and builds a Dataset.
func ReadFile(path string, opt ReadOptions) (*Dataset, error) {
	for _, r := range registry {
		if !r.CanRead(path) {
			continue
		}
		t, err := r.Read(path, opt)
		if err != nil {
			return nil, err
		}
		return FromTable(t)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
}

func init() {
	Register(xlsxReader{})
	Register(csvReader{})
}

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

// Read returns every cell as text; CSV carries no cell types, so no column
// is marked as dates.
func (csvReader) Read(path string, opt ReadOptions) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv: %w", err)
	}
	b = bytes.TrimPrefix(b, []byte("\ufeff"))
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)
	all, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return Table{}, nil
	}
	return Table{Header: all[0], Rows: all[1:]}, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Read takes number cells at their stored value so "1,234.50" or "12.5%"
// formats still read as numbers. Number cells whose display is not a number
// (date formats) keep the displayed text and mark the column as dates.
func (xlsxReader) Read(path string, opt ReadOptions) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("workbook %s has no sheets", path)
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return Table{}, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, path, strings.Join(sheets, ", "))
		}
	}
	shown, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(shown) == 0 {
		return Table{}, nil
	}

	t := Table{Header: shown[0], Rows: make([][]string, 0, len(shown)-1)}
	present := map[int]int{}
	dated := map[int]int{}
	for i := 1; i < len(shown); i++ {
		row := make([]string, len(shown[i]))
		for j, v := range shown[i] {
			row[j] = v
			if isMissing(v) {
				continue
			}
			present[j]++
			r := cellAt(raw, i, j)
			if r == v {
				continue
			}
			if _, ok := parseFloat(r); !ok || isBoolText(v) {
				continue
			}
			if looksNumeric(v) {
				row[j] = r
			} else {
				dated[j]++
			}
		}
		t.Rows = append(t.Rows, row)
	}
	for j, n := range dated {
		if n == present[j] {
			if t.Dates == nil {
				t.Dates = map[int]bool{}
			}
			t.Dates[j] = true
		}
	}
	return t, nil
}

func cellAt(rows [][]string, i, j int) string {
	if i < len(rows) && j < len(rows[i]) {
		return rows[i][j]
	}
	return ""
}

func isBoolText(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

var numberDecor = strings.NewReplacer(",", "", "%", "", "$", "", "€", "", "£", "", "¥", "", "(", "", ")", "", " ", "")

// looksNumeric reports whether a displayed cell is a decorated number.
func looksNumeric(v string) bool {
	_, ok := parseFloat(numberDecor.Replace(v))
	return ok
}
