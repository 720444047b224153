package columns

// Kind is the declared value type of a column, inferred once at load time.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindDatetime Kind = "datetime"
	KindText     Kind = "text"
)

// Column pairs a header with its inferred kind.
type Column struct {
	Name string
	Kind Kind
}
