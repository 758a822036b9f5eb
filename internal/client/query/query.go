// Package query builds the request parameters for listing diary entries:
// sort order, a half-open result window and an optional full-text filter
// over the four reflection columns.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// searchColumns lists the entry columns the search filter matches against.
var searchColumns = []string{
	"worst_case",
	"worst_consequences",
	"what_can_i_do",
	"how_will_i_cope",
}

// Query accumulates listing parameters. Methods return the receiver so
// calls chain.
type Query struct {
	ascending bool
	from      int
	to        int
	hasRange  bool
	orFilter  string
}

func NewEntriesQuery() *Query {
	return &Query{}
}

// Order sets the sort direction on created_at.
func (q *Query) Order(ascending bool) *Query {
	q.ascending = ascending
	return q
}

// Range selects the inclusive window [from, to] of the result set.
func (q *Query) Range(from, to int) *Query {
	q.from = from
	q.to = to
	q.hasRange = true
	return q
}

// Or sets a raw disjunction filter. Callers normally go through
// BuildSearchQuery instead.
func (q *Query) Or(filter string) *Query {
	q.orFilter = filter
	return q
}

// Values renders the query as URL parameters.
func (q *Query) Values() url.Values {
	v := url.Values{}
	if q.ascending {
		v.Set("order", "created_at.asc")
	} else {
		v.Set("order", "created_at.desc")
	}
	if q.hasRange {
		v.Set("offset", strconv.Itoa(q.from))
		v.Set("limit", strconv.Itoa(q.to-q.from+1))
	}
	if q.orFilter != "" {
		v.Set("or", q.orFilter)
	}
	return v
}

// BuildSearchQuery attaches a search filter for term to q. Terms of two or
// fewer characters after trimming are ignored and q is returned unchanged.
// The term is inserted into the filter verbatim, so wildcard characters in
// it widen the match.
func BuildSearchQuery(q *Query, term string) *Query {
	trimmed := strings.TrimSpace(term)
	if len(trimmed) <= 2 {
		return q
	}

	clauses := make([]string, 0, len(searchColumns))
	for _, col := range searchColumns {
		clauses = append(clauses, col+".ilike.*"+trimmed+"*")
	}
	return q.Or(strings.Join(clauses, ","))
}
