package analysis

// Source is the read side of a dataset the aggregators need. Both methods
// return only non-missing values, in row order.
type Source interface {
	Floats(column string) []float64
	Texts(column string) []string
}
