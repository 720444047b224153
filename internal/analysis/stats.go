package analysis

// DefaultStatsColumns caps how many satisfaction columns get a statistics row.
const DefaultStatsColumns = 5

// StatsRecord is one row of the basic statistics table.
type StatsRecord struct {
	Metric string
	Summary
}

// ComputeBasicStats summarises the first limit columns of cols, in order.
// A limit <= 0 falls back to DefaultStatsColumns.
func ComputeBasicStats(src Source, cols []string, limit int) []StatsRecord {
	if limit <= 0 {
		limit = DefaultStatsColumns
	}
	if len(cols) > limit {
		cols = cols[:limit]
	}
	out := make([]StatsRecord, 0, len(cols))
	for _, c := range cols {
		out = append(out, StatsRecord{Metric: c, Summary: summarize(src.Floats(c))})
	}
	return out
}
