package dataset

import "github.com/KaramelBytes/survey-snapshot/internal/columns"

// Anonymize drops every column whose header looks personally identifying and
// returns the reduced dataset with the names it removed. Running it on an
// already anonymized dataset removes nothing.
func Anonymize(d *Dataset) (*Dataset, []string, error) {
	var pii []string
	for _, name := range d.Columns() {
		if columns.IsPII(name) {
			pii = append(pii, name)
		}
	}
	out, err := d.Drop(pii...)
	if err != nil {
		return nil, nil, err
	}
	return out, pii, nil
}
