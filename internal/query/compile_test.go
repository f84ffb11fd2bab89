package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/query"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCompile_AlwaysScopesByProject(t *testing.T) {
	f := query.Compile("project-1", query.Params{})

	assert.Equal(t, "project-1", f.Query.Project)
	assert.Nil(t, f.Query.Priority)
	assert.Nil(t, f.Query.State)
	assert.Nil(t, f.Query.Tags)
	assert.Nil(t, f.Query.TitleContains)
	assert.Nil(t, f.Query.DueDate)
	assert.Nil(t, f.Sort)
	assert.Nil(t, f.Page.Offset)
	assert.Nil(t, f.Page.Limit)
	assert.Nil(t, f.Populate)
}

func TestCompile_SetMembershipFilters(t *testing.T) {
	f := query.Compile("p", query.Params{
		Priority: []domain.TaskPriority{domain.TaskPriorityHigh, domain.TaskPriorityLow},
		State:    []domain.TaskState{domain.TaskStateOpen},
		Tags:     []string{"t1", "t2"},
	})

	assert.Equal(t, []domain.TaskPriority{domain.TaskPriorityHigh, domain.TaskPriorityLow}, f.Query.Priority)
	assert.Equal(t, []domain.TaskState{domain.TaskStateOpen}, f.Query.State)
	assert.Equal(t, []string{"t1", "t2"}, f.Query.Tags)
}

func TestCompile_EmptyListsAddNoCriteria(t *testing.T) {
	f := query.Compile("p", query.Params{
		Priority: []domain.TaskPriority{},
		State:    []domain.TaskState{},
		Tags:     []string{},
	})

	// Identical to omitting the parameters entirely.
	assert.Nil(t, f.Query.Priority)
	assert.Nil(t, f.Query.State)
	assert.Nil(t, f.Query.Tags)
}

func TestCompile_Search(t *testing.T) {
	search := "deploy"
	f := query.Compile("p", query.Params{Search: &search})

	require.NotNil(t, f.Query.TitleContains)
	assert.Equal(t, "deploy", *f.Query.TitleContains)
}

func TestCompile_DueDateRange(t *testing.T) {
	tests := []struct {
		name    string
		params  query.Params
		wantGTE *time.Time
		wantLTE *time.Time
	}{
		{
			name:   "no bounds yields no range",
			params: query.Params{},
		},
		{
			name:    "nested bounds only",
			params:  query.Params{DueGTE: date("2024-01-01"), DueLTE: date("2024-01-31")},
			wantGTE: date("2024-01-01"),
			wantLTE: date("2024-01-31"),
		},
		{
			name:    "flat params only",
			params:  query.Params{DueFrom: date("2024-02-01"), DueTo: date("2024-02-28")},
			wantGTE: date("2024-02-01"),
			wantLTE: date("2024-02-28"),
		},
		{
			name:    "flat lower bound wins over nested",
			params:  query.Params{DueFrom: date("2024-03-01"), DueGTE: date("2024-01-01")},
			wantGTE: date("2024-03-01"),
		},
		{
			name:    "flat upper bound wins over nested",
			params:  query.Params{DueTo: date("2024-03-31"), DueLTE: date("2024-12-31")},
			wantLTE: date("2024-03-31"),
		},
		{
			name:    "lower bound only leaves upper open",
			params:  query.Params{DueGTE: date("2024-01-01")},
			wantGTE: date("2024-01-01"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := query.Compile("p", tt.params)

			if tt.wantGTE == nil && tt.wantLTE == nil {
				assert.Nil(t, f.Query.DueDate)
				return
			}
			require.NotNil(t, f.Query.DueDate)
			assert.Equal(t, tt.wantGTE, f.Query.DueDate.GTE)
			assert.Equal(t, tt.wantLTE, f.Query.DueDate.LTE)
		})
	}
}

func TestCompile_Sort(t *testing.T) {
	sort := "title,-due_date"
	f := query.Compile("p", query.Params{Sort: &sort})

	require.Len(t, f.Sort, 2)
	assert.Equal(t, query.SortField{Field: "title"}, f.Sort[0])
	assert.Equal(t, query.SortField{Field: "due_date", Desc: true}, f.Sort[1])
}

func TestCompile_SortSkipsEmptyTerms(t *testing.T) {
	sort := " , title, ,-priority,"
	f := query.Compile("p", query.Params{Sort: &sort})

	require.Len(t, f.Sort, 2)
	assert.Equal(t, "title", f.Sort[0].Field)
	assert.Equal(t, "priority", f.Sort[1].Field)
	assert.True(t, f.Sort[1].Desc)
}

func TestCompile_AbsentSortYieldsNil(t *testing.T) {
	f := query.Compile("p", query.Params{})
	assert.Nil(t, f.Sort)

	// An expression with no usable terms behaves the same as no sort.
	empty := " , "
	f = query.Compile("p", query.Params{Sort: &empty})
	assert.Nil(t, f.Sort)
}

func TestCompile_Populate(t *testing.T) {
	f := query.Compile("p", query.Params{Populate: true})
	assert.Equal(t, []string{"assignee", "tags"}, f.Populate)

	f = query.Compile("p", query.Params{Populate: false})
	assert.Nil(t, f.Populate)
}

func TestCompile_Pagination(t *testing.T) {
	offset, limit := 0, 10
	f := query.Compile("p", query.Params{Offset: &offset, Limit: &limit})

	require.NotNil(t, f.Page.Offset)
	require.NotNil(t, f.Page.Limit)
	assert.Equal(t, 0, *f.Page.Offset)
	assert.Equal(t, 10, *f.Page.Limit)
}

func TestCompile_FullExample(t *testing.T) {
	limit, offset := 10, 0
	sort := "-priority"
	f := query.Compile("X", query.Params{
		DueFrom: date("2024-01-01"),
		DueTo:   date("2024-01-31"),
		Sort:    &sort,
		Limit:   &limit,
		Offset:  &offset,
	})

	assert.Equal(t, "X", f.Query.Project)
	require.NotNil(t, f.Query.DueDate)
	assert.Equal(t, date("2024-01-01"), f.Query.DueDate.GTE)
	assert.Equal(t, date("2024-01-31"), f.Query.DueDate.LTE)
	require.Len(t, f.Sort, 1)
	assert.Equal(t, query.SortField{Field: "priority", Desc: true}, f.Sort[0])
	assert.Equal(t, 10, *f.Page.Limit)
	assert.Equal(t, 0, *f.Page.Offset)
	assert.Nil(t, f.Populate)
}
