// Package query parses list parameters and builds the matching SQL clauses.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection validates a sort direction; empty means ascending
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(raw)) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", domain.ErrInvalidSortDirection
}

// Sort orders a list by one column
type Sort struct {
	Field     string
	Column    string
	Direction Direction
}

// Fields maps a public sort field to its SQL column
type Fields map[string]string

// ParseSort reads the repeated sorting parameter: sorting=<field>&sorting=<asc|desc>.
// No values means no explicit sort.
func ParseSort(values []string, fields Fields) (*Sort, error) {
	if len(values) == 0 || values[0] == "" {
		return nil, nil
	}

	column, ok := fields[values[0]]
	if !ok {
		return nil, domain.ErrInvalidSortField
	}

	direction := Asc
	if len(values) > 1 {
		var err error
		if direction, err = ParseDirection(values[1]); err != nil {
			return nil, err
		}
	}

	return &Sort{Field: values[0], Column: column, Direction: direction}, nil
}

// Page is a 1-based page of a list
type Page struct {
	Number int
	Size   int
}

// ParsePage reads the page parameter. Missing or non-positive pages are page 1.
func ParsePage(raw string, size int) (Page, error) {
	page := Page{Number: 1, Size: size}
	if raw == "" {
		return page, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return page, domain.ErrInvalidPage
	}
	if n > 1 {
		page.Number = n
	}
	return page, nil
}

// Offset returns the number of rows before this page
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Params are the sort and page of a list request
type Params struct {
	Sort *Sort
	Page Page
}

// PageStrings sorts ids lexicographically, reverses them for desc and
// returns the requested page together with the number of ids
func PageStrings(ids []string, direction Direction, page Page) ([]string, int) {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	if direction == Desc {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	total := len(sorted)
	start := page.Offset()
	if start >= total || page.Size <= 0 {
		return []string{}, total
	}
	end := start + page.Size
	if end > total {
		end = total
	}
	return sorted[start:end], total
}

// Dedupe returns ids without repetitions, keeping first occurrences
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Builder accumulates WHERE conditions with positional arguments.
// Conditions use %d where the argument placeholder number goes.
type Builder struct {
	conditions []string
	args       []interface{}
}

// Where adds a condition bound to one argument, e.g. "city_id = $%d"
func (b *Builder) Where(condition string, arg interface{}) *Builder {
	b.args = append(b.args, arg)
	b.conditions = append(b.conditions, fmt.Sprintf(condition, len(b.args)))
	return b
}

// WhereClause returns "WHERE ..." or an empty string
func (b *Builder) WhereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// Args returns a copy of the arguments bound so far
func (b *Builder) Args() []interface{} {
	args := make([]interface{}, len(b.args))
	copy(args, b.args)
	return args
}

// OrderBy returns the ORDER BY clause. The id column always breaks ties.
func OrderBy(s *Sort, defaultColumn, idColumn string) string {
	if s == nil {
		return fmt.Sprintf("ORDER BY %s ASC, %s ASC", defaultColumn, idColumn)
	}
	dir := "ASC"
	if s.Direction == Desc {
		dir = "DESC"
	}
	if s.Column == idColumn {
		return fmt.Sprintf("ORDER BY %s %s", s.Column, dir)
	}
	return fmt.Sprintf("ORDER BY %s %s, %s ASC", s.Column, dir, idColumn)
}

// LimitOffset binds the page as LIMIT/OFFSET and returns the clause
func (b *Builder) LimitOffset(p Page) string {
	b.args = append(b.args, p.Size, p.Offset())
	n := len(b.args)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n-1, n)
}

