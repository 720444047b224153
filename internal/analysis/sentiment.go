package analysis

import "strings"

// PolarityScorer rates a response between -1 (negative) and 1 (positive).
// Available is false when no engine is installed; callers then skip the
// sentiment section entirely.
type PolarityScorer interface {
	Available() bool
	Polarity(text string) float64
}

// SentimentRecord summarises the polarity of one open-text column.
type SentimentRecord struct {
	Column string
	Count  int
	Mean   float64
	P25    float64
	Median float64
	P75    float64
}

// AnalyzeOpenText scores the first open-text column. It returns nil when
// there is no text column, the scorer is unavailable, or the column has no
// responses.
func AnalyzeOpenText(src Source, cols []string, scorer PolarityScorer) *SentimentRecord {
	if len(cols) == 0 || scorer == nil || !scorer.Available() {
		return nil
	}
	texts := src.Texts(cols[0])
	if len(texts) == 0 {
		return nil
	}
	pol := make([]float64, len(texts))
	for i, t := range texts {
		pol[i] = clamp(scorer.Polarity(strings.TrimSpace(t)))
	}
	s := summarize(pol)
	return &SentimentRecord{
		Column: cols[0],
		Count:  s.Count,
		Mean:   s.Mean,
		P25:    s.P25,
		Median: s.Median,
		P75:    s.P75,
	}
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
