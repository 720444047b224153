package dataset

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/survey-snapshot/internal/columns"
)

// naTokens are cell values treated as missing, in addition to blank cells.
var naTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "#NA": {}, "<NA>": {},
}

func isMissing(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := naTokens[v]
	return ok
}

func parseFloat(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// inferKind decides the declared type of a column. A column is numeric when
// every present cell parses as a number; an all-missing column counts as
// numeric. Otherwise it is datetime when the source stored it as dates, and
// text in every other case.
func inferKind(cells []string, dates bool) columns.Kind {
	for _, v := range cells {
		if isMissing(v) {
			continue
		}
		if _, ok := parseFloat(v); !ok {
			if dates {
				return columns.KindDatetime
			}
			return columns.KindText
		}
	}
	return columns.KindNumeric
}
