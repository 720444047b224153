package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/survey-snapshot/internal/utils"
)

// WriteCSV serialises the dataset as comma-separated values, creating the
// parent directory and replacing the target atomically.
func WriteCSV(path string, d *Dataset) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(d.Records()); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
