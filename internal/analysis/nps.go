package analysis

// Category is a recommendation bucket.
type Category string

const (
	Detractor Category = "Detractor"
	Passive   Category = "Passive"
	Promoter  Category = "Promoter"
)

// Categories lists the buckets in report order.
var Categories = []Category{Detractor, Passive, Promoter}

const rescaleEpsilon = 1e-9

// Share is the fraction of scores that fall in one bucket.
type Share struct {
	Category Category
	Fraction float64
}

// NPSResult is the Net Promoter Score of one recommendation column.
type NPSResult struct {
	Column    string
	Score     float64
	Responses int
	Breakdown []Share
}

// Empty reports whether the column had no usable responses.
func (r *NPSResult) Empty() bool { return r.Responses == 0 }

// ComputeNPS scores the first recommendation column. It returns nil when cols
// is empty. A column without any non-missing value yields a result with zero
// responses, a zero score and an all-zero breakdown.
func ComputeNPS(src Source, cols []string) *NPSResult {
	if len(cols) == 0 {
		return nil
	}
	res := &NPSResult{Column: cols[0], Breakdown: zeroBreakdown()}
	scores := RescaleScores(src.Floats(cols[0]))
	if len(scores) == 0 {
		return res
	}
	res.Responses = len(scores)

	var promoters, detractors int
	counts := map[Category]int{}
	binned := 0
	for _, s := range scores {
		if s >= 9 {
			promoters++
		}
		if s <= 6 {
			detractors++
		}
		if c, ok := Bucket(s); ok {
			counts[c]++
			binned++
		}
	}
	n := float64(len(scores))
	res.Score = (float64(promoters)/n - float64(detractors)/n) * 100
	if binned > 0 {
		for i, c := range Categories {
			res.Breakdown[i].Fraction = float64(counts[c]) / float64(binned)
		}
	}
	return res
}

// RescaleScores maps a 1-5 style scale onto 0-10. Scales whose maximum
// exceeds 5 are assumed to be 0-10 already and returned unchanged.
func RescaleScores(vals []float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(vals))
	if hi > 5 {
		copy(out, vals)
		return out
	}
	for i, v := range vals {
		out[i] = (v - lo) / (hi - lo + rescaleEpsilon) * 10
	}
	return out
}

// Bucket places a 0-10 score in (-1,6], (6,8] or (8,10]. Scores outside
// (-1,10] belong to no bucket.
func Bucket(score float64) (Category, bool) {
	switch {
	case score > -1 && score <= 6:
		return Detractor, true
	case score > 6 && score <= 8:
		return Passive, true
	case score > 8 && score <= 10:
		return Promoter, true
	}
	return "", false
}

func zeroBreakdown() []Share {
	out := make([]Share, len(Categories))
	for i, c := range Categories {
		out[i] = Share{Category: c}
	}
	return out
}
