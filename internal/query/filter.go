// Package query compiles validated task-list parameters into a canonical
// filter descriptor consumed by the task repository. Compilation is pure:
// no I/O, deterministic output for the same input.
package query

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// PopulateRelations is the fixed set of relations expanded when populate
// is requested.
var PopulateRelations = []string{"assignee", "tags"}

// DateRange is a closed interval over due dates. A nil bound means the side
// is unbounded. A DateRange is only attached to a predicate when at least
// one bound was supplied.
type DateRange struct {
	GTE *time.Time
	LTE *time.Time
}

// SortField is a single ordering term. Earlier fields win ties against
// later ones.
type SortField struct {
	Field string
	Desc  bool
}

// Page holds explicit pagination bounds. Nil means the caller supplied no
// bound and the repository applies its default.
type Page struct {
	Offset *int
	Limit  *int
}

// Predicate is the structured query part of a Filter. Absent criteria are
// nil; an empty slice never appears here (empty input lists compile to no
// criterion at all).
type Predicate struct {
	// Project is always set from the request scope, never from query input.
	Project string

	Priority      []domain.TaskPriority
	State         []domain.TaskState
	Tags          []string
	TitleContains *string
	DueDate       *DateRange
}

// Filter is the compiled descriptor for a task listing: predicate, ordering,
// pagination and relation expansion. Sort nil means repository natural order.
// Populate nil means no relation expansion.
type Filter struct {
	Query    Predicate
	Sort     []SortField
	Page     Page
	Populate []string
}
