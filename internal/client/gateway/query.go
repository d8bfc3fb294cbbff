package gateway

// Row is one record keyed by column name.
type Row map[string]any

// Op is a filter comparison.
type Op string

const (
	OpEq Op = "eq"
	OpIn Op = "in"
)

// Filter restricts a read or write to rows whose Column matches Value.
// For OpIn, Value must be a slice.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

func In(column string, values any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Order sorts a read by one column.
type Order struct {
	Column    string
	Ascending bool
}

// Range is an inclusive, zero-based row window, e.g. {10, 19} is the second
// page of ten.
type Range struct {
	From int
	To   int
}

// PageRange converts a 1-based page number and page size into a Range.
func PageRange(page, perPage int) Range {
	return Range{From: (page - 1) * perPage, To: page*perPage - 1}
}

// Query is a read against a table or view.
type Query struct {
	Table   string
	Columns []string // empty means all columns
	Filters []Filter
	Order   *Order
	Range   *Range
	Limit   int // ignored when Range is set; 0 means unlimited
	Count   bool
}

// Result carries the rows of a Select and, when requested, the total number
// of rows matching the filters regardless of Range.
type Result struct {
	Rows  []Row
	Count int
}

// From starts a query builder for table.
func From(table string) *Query {
	return &Query{Table: table}
}

func (q *Query) Select(columns ...string) *Query {
	q.Columns = columns
	return q
}

func (q *Query) Where(filters ...Filter) *Query {
	q.Filters = append(q.Filters, filters...)
	return q
}

func (q *Query) OrderBy(column string, ascending bool) *Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}

func (q *Query) Between(from, to int) *Query {
	q.Range = &Range{From: from, To: to}
	return q
}

func (q *Query) WithCount() *Query {
	q.Count = true
	return q
}

func (q *Query) Take(n int) *Query {
	q.Limit = n
	return q
}
