package dataset

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoInput is returned by Load when neither the spreadsheet nor the
// fallback CSV exists.
var ErrNoInput = errors.New("no input found")

// Load reads the spreadsheet export at xlsxPath, or the previously written
// CSV at csvPath when the spreadsheet is absent. It returns the dataset and
// the path that was read.
func Load(xlsxPath, csvPath string, opt ReadOptions) (*Dataset, string, error) {
	for _, p := range []string{xlsxPath, csvPath} {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		ds, err := ReadFile(p, opt)
		if err != nil {
			return nil, p, err
		}
		return ds, p, nil
	}
	return nil, "", fmt.Errorf("%w. Expected Excel at %s or CSV at %s", ErrNoInput, xlsxPath, csvPath)
}
