package service

import (
	"context"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/access"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// ProjectService coordinates project CRUD and membership management behind
// the access policy. Denied lookups surface as ErrProjectNotFound so callers
// cannot probe for project existence.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
	taskRepo    *repository.TaskRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	userRepo *repository.UserRepository,
	taskRepo *repository.TaskRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
	}
}

// resolveProject fetches a project and checks access, conflating both
// failure modes into ErrProjectNotFound.
func (s *ProjectService) resolveProject(ctx context.Context, principal *domain.User, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessProject(principal, project).Allowed() {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

// CreateProjectParams holds the validated input for CreateProject.
type CreateProjectParams struct {
	Name        string
	Description string
}

// CreateProject creates a project owned by the principal.
func (s *ProjectService) CreateProject(ctx context.Context, principal *domain.User, p CreateProjectParams) (*domain.Project, error) {
	project, err := s.projectRepo.Create(ctx, &domain.Project{
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   principal.ID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("project created", "project_id", project.ID, "user_id", principal.ID)

	return project, nil
}

// ListProjects returns the projects visible to the principal.
func (s *ProjectService) ListProjects(ctx context.Context, principal *domain.User) ([]*domain.Project, error) {
	return s.projectRepo.ListVisible(ctx, principal)
}

// GetProject retrieves a single project the principal may see.
func (s *ProjectService) GetProject(ctx context.Context, principal *domain.User, projectID string) (*domain.Project, error) {
	return s.resolveProject(ctx, principal, projectID)
}

// UpdateProjectParams holds optional field updates for a project.
type UpdateProjectParams struct {
	Name        *string
	Description *string
}

// UpdateProject applies partial updates to a project.
func (s *ProjectService) UpdateProject(ctx context.Context, principal *domain.User, projectID string, p UpdateProjectParams) (*domain.Project, error) {
	project, err := s.resolveProject(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project with everything in it.
func (s *ProjectService) DeleteProject(ctx context.Context, principal *domain.User, projectID string) error {
	if _, err := s.resolveProject(ctx, principal, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	slog.Info("project deleted", "project_id", projectID, "user_id", principal.ID)

	return nil
}

// AddMember adds a user to the project member list.
func (s *ProjectService) AddMember(ctx context.Context, principal *domain.User, projectID, userID string) error {
	if _, err := s.resolveProject(ctx, principal, projectID); err != nil {
		return err
	}

	// The target user must exist; this lookup is not access-scoped.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.projectRepo.AddMember(ctx, projectID, userID); err != nil {
		return err
	}

	slog.Info("project member added", "project_id", projectID, "member_id", userID, "user_id", principal.ID)

	return nil
}

// RemoveMember removes a user from the project member list.
func (s *ProjectService) RemoveMember(ctx context.Context, principal *domain.User, projectID, userID string) error {
	if _, err := s.resolveProject(ctx, principal, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return err
	}

	slog.Info("project member removed", "project_id", projectID, "member_id", userID, "user_id", principal.ID)

	return nil
}

// GetStats returns aggregate task counts for a project.
func (s *ProjectService) GetStats(ctx context.Context, principal *domain.User, projectID string) (*repository.ProjectStats, error) {
	if _, err := s.resolveProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetProjectStats(ctx, projectID)
}
