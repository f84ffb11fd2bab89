package query

import (
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Params holds the validated, optional task-list inputs. Pointer and slice
// fields distinguish "absent" from zero values; upstream validation has
// already rejected malformed types, so Compile never fails.
type Params struct {
	Priority []domain.TaskPriority
	State    []domain.TaskState
	Tags     []string
	Search   *string

	// Due-date range knobs. DueFrom/DueTo are the flat range parameters and
	// take precedence over the nested DueGTE/DueLTE bounds.
	DueGTE  *time.Time
	DueLTE  *time.Time
	DueFrom *time.Time
	DueTo   *time.Time

	Offset *int
	Limit  *int

	Sort     *string
	Populate bool
}

// Compile builds the canonical Filter for a task listing. The project id
// comes from the request scope (URL path) and is always injected as an
// equality criterion; nothing in Params can override it.
func Compile(projectID string, p Params) Filter {
	f := Filter{
		Query: Predicate{Project: projectID},
		Page:  Page{Offset: p.Offset, Limit: p.Limit},
	}

	if len(p.Priority) > 0 {
		f.Query.Priority = p.Priority
	}
	if len(p.State) > 0 {
		f.Query.State = p.State
	}
	if len(p.Tags) > 0 {
		f.Query.Tags = p.Tags
	}
	if p.Search != nil {
		f.Query.TitleContains = p.Search
	}

	if r := compileDueDate(p); r != nil {
		f.Query.DueDate = r
	}

	if p.Sort != nil {
		f.Sort = parseSort(*p.Sort)
	}

	if p.Populate {
		f.Populate = PopulateRelations
	}

	return f
}

// compileDueDate merges the four due-date knobs into a single range.
// The flat range parameters win over the nested bounds; bounds that were
// not supplied stay nil, and a fully empty range compiles to no criterion.
func compileDueDate(p Params) *DateRange {
	lower := p.DueGTE
	if p.DueFrom != nil {
		lower = p.DueFrom
	}
	upper := p.DueLTE
	if p.DueTo != nil {
		upper = p.DueTo
	}
	if lower == nil && upper == nil {
		return nil
	}
	return &DateRange{GTE: lower, LTE: upper}
}

// parseSort parses a comma-separated sort expression. A leading "-" marks
// descending order. Field order is preserved because it determines tie-break
// priority. Empty terms are skipped; an expression with no usable terms
// yields nil, same as no sort at all.
func parseSort(expr string) []SortField {
	parts := strings.Split(expr, ",")
	var fields []SortField
	for _, part := range parts {
		term := strings.TrimSpace(part)
		if term == "" {
			continue
		}
		if strings.HasPrefix(term, "-") {
			if name := term[1:]; name != "" {
				fields = append(fields, SortField{Field: name, Desc: true})
			}
			continue
		}
		fields = append(fields, SortField{Field: term})
	}
	return fields
}
