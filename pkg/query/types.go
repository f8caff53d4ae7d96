// ABOUTME: Query types for the predator view pipeline
// ABOUTME: Sort modes, parsed selectors and the fluent query builder

package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nainya/predators/pkg/predator"
)

var (
	// ErrUnknownCategory is returned when a category selector cannot be parsed
	ErrUnknownCategory = errors.New("query: unknown category")

	// ErrUnknownSortMode is returned when a sort mode cannot be parsed
	ErrUnknownSortMode = errors.New("query: unknown sort mode")
)

// View is an ordered subset of the full record set. Views are values: every
// pipeline stage returns a fresh slice and never modifies its input.
type View []predator.Record

// Clone returns a deep copy of v; callers may modify it freely
func (v View) Clone() View {
	if v == nil {
		return nil
	}
	out := make(View, len(v))
	for i := range v {
		out[i] = v[i].Clone()
	}
	return out
}

// IDs returns the record ids in view order
func (v View) IDs() []int {
	ids := make([]int, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return ids
}

// SortMode defines the ordering applied to a view
type SortMode int

const (
	Unsorted     SortMode = iota // Keep the incoming order
	Alphabetical                 // Ascending by name, ordinal comparison
	ByID                         // Ascending by id
)

func (m SortMode) String() string {
	switch m {
	case Unsorted:
		return "none"
	case Alphabetical:
		return "alphabetical"
	case ByID:
		return "id"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode parses user input such as "alphabetical", "alpha" or "id"
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return Unsorted, nil
	case "alphabetical", "alpha", "name":
		return Alphabetical, nil
	case "id", "byid":
		return ByID, nil
	}
	return Unsorted, fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
}

// ParseCategoryFilter parses "all", "land", "air" or "sea"
func ParseCategoryFilter(s string) (predator.CategoryFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "all" {
		return predator.All(), nil
	}
	c := predator.Category(v)
	if !c.Valid() {
		return predator.All(), fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return predator.Only(c), nil
}

// Query describes one pass of the pipeline: filter, then sort, then search
type Query struct {
	Filter predator.CategoryFilter
	Sort   SortMode
	Text   string
}

// QueryBuilder provides fluent interface for building queries
type QueryBuilder struct {
	query Query
}

// NewQueryBuilder creates a builder selecting all records in source order
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Category restricts the query to a single category
func (qb *QueryBuilder) Category(c predator.Category) *QueryBuilder {
	qb.query.Filter = predator.Only(c)
	return qb
}

// Filter sets the category selector directly
func (qb *QueryBuilder) Filter(f predator.CategoryFilter) *QueryBuilder {
	qb.query.Filter = f
	return qb
}

// All removes any category restriction
func (qb *QueryBuilder) All() *QueryBuilder {
	qb.query.Filter = predator.All()
	return qb
}

// SortBy sets the ordering
func (qb *QueryBuilder) SortBy(mode SortMode) *QueryBuilder {
	qb.query.Sort = mode
	return qb
}

// Search sets the name substring
func (qb *QueryBuilder) Search(text string) *QueryBuilder {
	qb.query.Text = text
	return qb
}

// Build returns the constructed query
func (qb *QueryBuilder) Build() Query {
	return qb.query
}
