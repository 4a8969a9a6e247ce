package tcgdex

import (
	"net/url"
	"strconv"
	"strings"
)

// Query collects card list filters and encodes them in the TCGdex filter syntax
// (field=eq:value, sort:field=..., pagination:page=...). Parameter order is kept
// so encoded queries are stable.
type Query struct {
	params [][2]string
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) add(key, value string) *Query {
	q.params = append(q.params, [2]string{key, value})
	return q
}

// Contains matches values containing the substring (the API's laxist match).
func (q *Query) Contains(field, value string) *Query { return q.add(field, value) }

func (q *Query) NotContains(field, value string) *Query { return q.add(field, "not:"+value) }

func (q *Query) Equal(field, value string) *Query { return q.add(field, "eq:"+value) }

func (q *Query) NotEqual(field, value string) *Query { return q.add(field, "neq:"+value) }

func (q *Query) GreaterOrEqualThan(field, value string) *Query { return q.add(field, "gte:"+value) }

func (q *Query) LessOrEqualThan(field, value string) *Query { return q.add(field, "lte:"+value) }

func (q *Query) GreaterThan(field, value string) *Query { return q.add(field, "gt:"+value) }

func (q *Query) LessThan(field, value string) *Query { return q.add(field, "lt:"+value) }

func (q *Query) IsNull(field string) *Query { return q.add(field, "null:") }

func (q *Query) NotNull(field string) *Query { return q.add(field, "notnull:") }

// Sort orders results by field; order is "asc" or "desc" in any case.
func (q *Query) Sort(field, order string) *Query {
	q.add("sort:field", field)
	return q.add("sort:order", strings.ToUpper(order))
}

func (q *Query) Paginate(page, itemsPerPage int) *Query {
	q.add("pagination:page", strconv.Itoa(page))
	return q.add("pagination:itemsPerPage", strconv.Itoa(itemsPerPage))
}

// Encode renders the query string without the leading '?'.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	parts := make([]string, 0, len(q.params))
	for _, p := range q.params {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return strings.Join(parts, "&")
}

// Len reports how many parameters the query carries.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.params)
}
