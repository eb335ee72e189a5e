package repositories

import (
	"fmt"
	"strings"
)

// ListOptions carries the recognized list parameters shared by every list
// endpoint. Zero values mean "no filter"; IsActive is a pointer because an
// omitted flag must not be read as false.
type ListOptions struct {
	Search        string
	IsActive      *bool
	CategoryID    int
	SubCategoryID int
	MinPrice      *float64
	MaxPrice      *float64
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// Normalize applies the defaults: page >= 1 (default 1), limit >= 1 (default
// 10), sort by createdAt descending.
func (o *ListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 10
	}
	if o.SortBy == "" {
		o.SortBy = "createdAt"
	}
	if o.SortOrder != "asc" {
		o.SortOrder = "desc"
	}
}

func (o *ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// ListQuery accumulates WHERE conditions with positional args. Conditions are
// format strings whose %d verbs receive the next parameter indexes, so the
// assembled SQL stays aligned with the args slice.
type ListQuery struct {
	conds []string
	args  []interface{}
}

func (q *ListQuery) Where(format string, args ...interface{}) {
	indexes := make([]interface{}, len(args))
	for i := range args {
		indexes[i] = len(q.args) + i + 1
	}
	q.conds = append(q.conds, fmt.Sprintf(format, indexes...))
	q.args = append(q.args, args...)
}

func (q *ListQuery) WhereRaw(cond string) {
	q.conds = append(q.conds, cond)
}

// WhereSQL returns " WHERE ..." or an empty string when nothing was filtered.
func (q *ListQuery) WhereSQL() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q *ListQuery) Args() []interface{} {
	return q.args
}

// NextIndex is the positional index the next bound argument would get, for
// clauses built outside Where (LIMIT/OFFSET).
func (q *ListQuery) NextIndex() int {
	return len(q.args) + 1
}

func (q *ListQuery) Bind(arg interface{}) int {
	q.args = append(q.args, arg)
	return len(q.args)
}

// Sort whitelists map API sort keys to columns. Anything not listed falls
// back to the entity default, keeping user input out of the ORDER BY clause.
var (
	categorySortFields = map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"name":      "name",
	}

	subCategorySortFields = map[string]string{
		"createdAt": "sc.created_at",
		"updatedAt": "sc.updated_at",
		"name":      "sc.name",
	}

	productSortFields = map[string]string{
		"createdAt": "p.created_at",
		"updatedAt": "p.updated_at",
		"title":     "p.title",
		"rating":    "p.rating_average",
	}
)

func orderBySQL(fields map[string]string, defaultColumn, sortBy, sortOrder string) string {
	column, ok := fields[sortBy]
	if !ok {
		column = defaultColumn
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}
