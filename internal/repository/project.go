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

// projectSelect returns the shared base query for projects, aggregating the
// member id list from the join table.
func projectSelect() sq.SelectBuilder {
	return psql.
		Select(
			"p.id", "p.name", "p.description", "p.created_by",
			"COALESCE(array_agg(m.user_id::text) FILTER (WHERE m.user_id IS NOT NULL), '{}')",
			"p.created_at", "p.updated_at",
		).
		From("projects p").
		LeftJoin("project_members m ON m.project_id = p.id").
		GroupBy("p.id")
}

// ProjectRepository handles database operations for projects.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedBy,
		&project.Members,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &project, nil
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	query, args, err := psql.
		Insert("projects").
		Columns("name", "description", "created_by").
		Values(project.Name, project.Description, project.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for project: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if project.Members == nil {
		project.Members = []string{}
	}

	return project, nil
}

// GetByID retrieves a project with its member list.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query, args, err := projectSelect().
		Where(sq.Eq{"p.id": projectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for project: %w", err)
	}

	return scanProject(r.pool.QueryRow(ctx, query, args...))
}

// ListVisible retrieves the projects a user may see: created by them or where
// they are a member. Managers see every project.
func (r *ProjectRepository) ListVisible(ctx context.Context, user *domain.User) ([]*domain.Project, error) {
	qb := projectSelect().OrderBy("p.created_at ASC")

	if !user.IsManager() {
		qb = qb.Where(sq.Or{
			sq.Eq{"p.created_by": user.ID},
			sq.Expr("EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = ?)", user.ID),
		})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListVisible query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return projects, nil
}

// Update persists name/description changes.
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	query, args, err := psql.
		Update("projects").
		Set("name", project.Name).
		Set("description", project.Description).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": project.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for project %s: %w", project.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project; tasks, tags and memberships cascade.
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	query, args, err := psql.
		Delete("projects").
		Where(sq.Eq{"id": projectID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for project %s: %w", projectID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// AddMember inserts a membership row. A duplicate surfaces as
// ErrMemberAlreadyAdded.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	query, args, err := psql.
		Insert("project_members").
		Columns("project_id", "user_id").
		Values(projectID, userID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build AddMember query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "project_members_pkey") {
			return domain.ErrMemberAlreadyAdded
		}
		return fmt.Errorf("add project member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row. Removing a user who is not a member
// surfaces as ErrMemberNotOnProject.
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	query, args, err := psql.
		Delete("project_members").
		Where(sq.Eq{"project_id": projectID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build RemoveMember query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove project member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotOnProject
	}
	return nil
}
