package repository

const (
	// StatusField filters events by status.
	StatusField QueryField = "status"
	// EventTypeField filters events by event type.
	EventTypeField QueryField = "event_type"

	// DefaultListLimit is the default number of items per page.
	DefaultListLimit = 50
	maxListLimit     = 100
)

// QueryField names a filterable column.
type QueryField string

// Query carries filters and offset/limit pagination for event listings.
type Query struct {
	Values map[QueryField]string

	Limit  int
	Offset int
}

// NewQuery creates an empty query with the default page size.
func NewQuery() *Query {
	return &Query{
		Values: map[QueryField]string{},
		Limit:  DefaultListLimit,
	}
}

// With adds a filter value. Empty values are ignored.
func (q *Query) With(field QueryField, val string) *Query {
	if val != "" {
		q.Values[field] = val
	}
	return q
}

// ApplyPagination clamps limit to (0, maxListLimit] and rejects a negative
// offset by resetting it to zero.
func (q *Query) ApplyPagination(limit, offset int) *Query {
	q.Limit = DefaultListLimit
	if limit > 0 {
		q.Limit = min(maxListLimit, limit)
	}
	q.Offset = max(0, offset)
	return q
}
