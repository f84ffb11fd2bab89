package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ProjectStats holds aggregate task counts for a single project.
type ProjectStats struct {
	TotalTasks      int
	TasksByState    map[string]int
	TasksByPriority map[string]int
	OverdueCount    int
}

// GetProjectStats aggregates task counts by state and priority plus the
// overdue count for one project.
func (r *TaskRepository) GetProjectStats(ctx context.Context, projectID string) (*ProjectStats, error) {
	stats := &ProjectStats{
		TasksByState:    make(map[string]int),
		TasksByPriority: make(map[string]int),
	}

	query, args, err := psql.
		Select("state", "priority", "COUNT(*)").
		From("tasks").
		Where(sq.Eq{"project_id": projectID}).
		GroupBy("state", "priority").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetProjectStats query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query project stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var state, priority string
		var count int
		if err := rows.Scan(&state, &priority, &count); err != nil {
			return nil, fmt.Errorf("scan project stats: %w", err)
		}
		stats.TasksByState[state] += count
		stats.TasksByPriority[priority] += count
		stats.TotalTasks += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	overdueQuery, overdueArgs, err := psql.
		Select("COUNT(*)").
		From("tasks").
		Where(sq.Eq{"project_id": projectID}).
		Where("due_date < NOW()").
		Where(sq.NotEq{"state": "CLOSED"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overdue count query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, overdueQuery, overdueArgs...).Scan(&stats.OverdueCount); err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}

	return stats, nil
}
