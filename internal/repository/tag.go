package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskdeck/taskdeck/internal/domain"
)

var tagColumns = []string{"id", "project_id", "name", "created_at"}

// TagRepository handles database operations for tags and their task
// attachments.
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var tag domain.Tag
	err := row.Scan(&tag.ID, &tag.ProjectID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	return &tag, nil
}

// Create inserts a new tag. The unique index on (project_id, name) detects
// duplicate names atomically; the violation surfaces as ErrTagNameTaken.
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	query, args, err := psql.
		Insert("tags").
		Columns("project_id", "name").
		Values(tag.ProjectID, tag.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for tag: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&tag.ID, &tag.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "tags_project_name_key") {
			return nil, domain.ErrTagNameTaken
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	return tag, nil
}

// GetByID retrieves a tag by ID.
func (r *TagRepository) GetByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	query, args, err := psql.
		Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"id": tagID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for tag: %w", err)
	}

	return scanTag(r.pool.QueryRow(ctx, query, args...))
}

// ListByProject retrieves all tags of a project ordered by name.
func (r *TagRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Tag, error) {
	query, args, err := psql.
		Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByProject query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tags, nil
}

// Update persists a tag's name and project. Renaming into a taken name, or
// moving onto a project that already has the name, surfaces as
// ErrTagNameTaken via the same unique index.
func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	query, args, err := psql.
		Update("tags").
		Set("name", tag.Name).
		Set("project_id", tag.ProjectID).
		Where(sq.Eq{"id": tag.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for tag %s: %w", tag.ID, err)
	}

	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "tags_project_name_key") {
			return domain.ErrTagNameTaken
		}
		return fmt.Errorf("update tag: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

// Delete removes a tag. Referential checks happen at the policy layer
// before this is called.
func (r *TagRepository) Delete(ctx context.Context, tagID string) error {
	query, args, err := psql.
		Delete("tags").
		Where(sq.Eq{"id": tagID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for tag %s: %w", tagID, err)
	}

	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

// AttachToTask links a tag to a task. Attaching the same tag twice
// surfaces as ErrTagAlreadyOnTask from the primary key.
func (r *TagRepository) AttachToTask(ctx context.Context, taskID, tagID string) error {
	query, args, err := psql.
		Insert("task_tags").
		Columns("task_id", "tag_id").
		Values(taskID, tagID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build AttachToTask query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "task_tags_pkey") {
			return domain.ErrTagAlreadyOnTask
		}
		return fmt.Errorf("attach tag to task: %w", err)
	}
	return nil
}

// DetachFromTask unlinks a tag from a task. Detaching a tag that is not
// attached surfaces as ErrTagNotOnTask.
func (r *TagRepository) DetachFromTask(ctx context.Context, taskID, tagID string) error {
	query, args, err := psql.
		Delete("task_tags").
		Where(sq.Eq{"task_id": taskID, "tag_id": tagID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build DetachFromTask query: %w", err)
	}

	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("detach tag from task: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTagNotOnTask
	}
	return nil
}

// ListByTask retrieves the tags attached to a task ordered by name.
func (r *TagRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Tag, error) {
	query, args, err := psql.
		Select("t.id", "t.project_id", "t.name", "t.created_at").
		From("task_tags tt").
		Join("tags t ON t.id = tt.tag_id").
		Where(sq.Eq{"tt.task_id": taskID}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.ProjectID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tags, nil
}
