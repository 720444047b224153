// Package charts renders distribution images for the survey summary.
package charts

import (
	"regexp"

	"github.com/KaramelBytes/survey-snapshot/internal/columns"
)

// Table is the read side of a dataset the renderer needs.
type Table interface {
	Schema() []columns.Column
	Floats(column string) []float64
	Texts(column string) []string
	Unique(column string) int
}

// Renderer writes chart images for a table into dir and returns their paths,
// numeric histograms first, then categorical counts.
type Renderer interface {
	Available() bool
	Render(t Table, dir string) ([]string, error)
}

// Disabled renders nothing. It is used when plotting is switched off.
type Disabled struct{}

func (Disabled) Available() bool                      { return false }
func (Disabled) Render(Table, string) ([]string, error) { return nil, nil }

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// Sanitize turns a column name into a file-name fragment.
func Sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
