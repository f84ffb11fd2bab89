package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/query"
)

// priorityRank orders priorities semantically instead of alphabetically.
const priorityRank = "CASE priority WHEN 'LOW' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'HIGH' THEN 3 END"

// sortColumns whitelists the sortable fields and maps them to SQL
// expressions. Field names are validated upstream; anything not in this map
// is skipped rather than interpolated.
var sortColumns = map[string]string{
	"title":      "title",
	"priority":   priorityRank,
	"state":      "state",
	"due_date":   "due_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// TaskListItem is a task plus its expanded relations when population was
// requested. Assignee stays nil and Tags stays nil otherwise.
type TaskListItem struct {
	Task     *domain.Task
	Assignee *domain.User
	Tags     []domain.Tag
}

// applyPredicate translates the compiled predicate onto a squirrel builder.
// All criteria combine with AND; set-membership criteria use IN semantics.
func applyPredicate(qb sq.SelectBuilder, p query.Predicate) sq.SelectBuilder {
	qb = qb.Where(sq.Eq{"project_id": p.Project})

	if len(p.Priority) > 0 {
		qb = qb.Where(sq.Eq{"priority": p.Priority})
	}
	if len(p.State) > 0 {
		qb = qb.Where(sq.Eq{"state": p.State})
	}
	if len(p.Tags) > 0 {
		qb = qb.Where("EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = tasks.id AND tt.tag_id = ANY(?::uuid[]))", p.Tags)
	}
	if p.TitleContains != nil {
		qb = qb.Where(sq.ILike{"title": "%" + escapeLike(*p.TitleContains) + "%"})
	}
	if p.DueDate != nil {
		if p.DueDate.GTE != nil {
			qb = qb.Where(sq.GtOrEq{"due_date": *p.DueDate.GTE})
		}
		if p.DueDate.LTE != nil {
			qb = qb.Where(sq.LtOrEq{"due_date": *p.DueDate.LTE})
		}
	}

	return qb
}

// List executes a compiled task filter: predicate, ordering, pagination and
// relation expansion. Returns the page of tasks plus the unpaginated total.
func (r *TaskRepository) List(ctx context.Context, f query.Filter) ([]TaskListItem, int, error) {
	qb := applyPredicate(psql.Select(taskColumns...).From("tasks"), f.Query)

	for _, s := range f.Sort {
		column, ok := sortColumns[s.Field]
		if !ok {
			continue
		}
		if s.Desc {
			qb = qb.OrderBy(column + " DESC")
		} else {
			qb = qb.OrderBy(column + " ASC")
		}
	}

	limit := config.DefaultListLimit
	if f.Page.Limit != nil {
		limit = *f.Page.Limit
	}
	qb = qb.Limit(uint64(limit))
	if f.Page.Offset != nil {
		qb = qb.Offset(uint64(*f.Page.Offset))
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.countFiltered(ctx, f.Query)
	if err != nil {
		return nil, 0, err
	}

	items := make([]TaskListItem, len(tasks))
	for i, task := range tasks {
		items[i] = TaskListItem{Task: task}
	}

	if err := r.populate(ctx, items, f.Populate); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// countFiltered counts matches of the predicate without pagination.
func (r *TaskRepository) countFiltered(ctx context.Context, p query.Predicate) (int, error) {
	sql, args, err := applyPredicate(psql.Select("COUNT(*)").From("tasks"), p).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return total, nil
}

// populate expands the requested relations for a page of tasks with one
// query per relation.
func (r *TaskRepository) populate(ctx context.Context, items []TaskListItem, relations []string) error {
	if len(items) == 0 || len(relations) == 0 {
		return nil
	}

	for _, relation := range relations {
		switch relation {
		case "assignee":
			if err := r.populateAssignees(ctx, items); err != nil {
				return err
			}
		case "tags":
			if err := r.populateTags(ctx, items); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *TaskRepository) populateAssignees(ctx context.Context, items []TaskListItem) error {
	var userIDs []string
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Task.AssigneeID != nil && !seen[*item.Task.AssigneeID] {
			seen[*item.Task.AssigneeID] = true
			userIDs = append(userIDs, *item.Task.AssigneeID)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	users, err := NewUserRepository(r.pool).GetByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("populate assignees: %w", err)
	}

	for i := range items {
		if id := items[i].Task.AssigneeID; id != nil {
			items[i].Assignee = users[*id]
		}
	}
	return nil
}

func (r *TaskRepository) populateTags(ctx context.Context, items []TaskListItem) error {
	taskIDs := make([]string, len(items))
	for i, item := range items {
		taskIDs[i] = item.Task.ID
	}

	sql, args, err := psql.
		Select("tt.task_id", "t.id", "t.project_id", "t.name", "t.created_at").
		From("task_tags tt").
		Join("tags t ON t.id = tt.tag_id").
		Where(sq.Eq{"tt.task_id": taskIDs}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build populate tags query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("query task tags: %w", err)
	}
	defer rows.Close()

	byTask := make(map[string][]domain.Tag)
	for rows.Next() {
		var taskID string
		var tag domain.Tag
		if err := rows.Scan(&taskID, &tag.ID, &tag.ProjectID, &tag.Name, &tag.CreatedAt); err != nil {
			return fmt.Errorf("scan task tag: %w", err)
		}
		byTask[taskID] = append(byTask[taskID], tag)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}

	for i := range items {
		items[i].Tags = byTask[items[i].Task.ID]
	}
	return nil
}
