package service

import (
	"context"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/access"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// TagService coordinates tag operations. Tags carry no ownership of their
// own: every check is delegated to the parent project, and moving a tag
// requires access to both the current and the destination project.
type TagService struct {
	tagRepo  *repository.TagRepository
	policy   *access.Policy
	projects *repository.ProjectRepository
}

// NewTagService creates a new TagService.
func NewTagService(
	tagRepo *repository.TagRepository,
	taskRepo *repository.TaskRepository,
	projectRepo *repository.ProjectRepository,
) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		policy:   access.NewPolicy(projectRepo, taskRepo),
		projects: projectRepo,
	}
}

// resolveTag fetches a tag and authorizes the principal against its parent
// project, conflating denial and absence into ErrTagNotFound.
func (s *TagService) resolveTag(ctx context.Context, principal *domain.User, tagID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	_, decision, err := s.policy.ResolveProjectForTag(ctx, principal, tag)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, domain.ErrTagNotFound
	}
	return tag, nil
}

// authorizeProject conflates project denial and absence into
// ErrProjectNotFound.
func (s *TagService) authorizeProject(ctx context.Context, principal *domain.User, projectID string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !access.CanAccessProject(principal, project).Allowed() {
		return domain.ErrProjectNotFound
	}
	return nil
}

// CreateTag creates a tag in a project the principal may access. Duplicate
// names within the project surface as ErrTagNameTaken detected atomically
// by the store's unique index.
func (s *TagService) CreateTag(ctx context.Context, principal *domain.User, projectID, name string) (*domain.Tag, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.Create(ctx, &domain.Tag{ProjectID: projectID, Name: name})
	if err != nil {
		return nil, err
	}

	slog.Info("tag created", "tag_id", tag.ID, "project_id", projectID, "user_id", principal.ID)

	return tag, nil
}

// ListTags returns the tags of a project the principal may access.
func (s *TagService) ListTags(ctx context.Context, principal *domain.User, projectID string) ([]*domain.Tag, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListByProject(ctx, projectID)
}

// UpdateTagParams holds optional updates for a tag. A non-nil ProjectID
// moves the tag to another project.
type UpdateTagParams struct {
	Name      *string
	ProjectID *string
}

// UpdateTag renames and/or moves a tag. Moving requires access to both the
// current and the destination project; nothing is persisted until both
// checks pass.
func (s *TagService) UpdateTag(ctx context.Context, principal *domain.User, tagID string, p UpdateTagParams) (*domain.Tag, error) {
	tag, err := s.resolveTag(ctx, principal, tagID)
	if err != nil {
		return nil, err
	}

	if p.ProjectID != nil && *p.ProjectID != tag.ProjectID {
		if err := s.authorizeProject(ctx, principal, *p.ProjectID); err != nil {
			return nil, err
		}
		tag.ProjectID = *p.ProjectID
	}
	if p.Name != nil {
		tag.Name = *p.Name
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag after the referential-integrity guard confirms no
// task still references it.
func (s *TagService) DeleteTag(ctx context.Context, principal *domain.User, tagID string) error {
	tag, err := s.resolveTag(ctx, principal, tagID)
	if err != nil {
		return err
	}

	if err := s.policy.EnsureTagUnused(ctx, tagID); err != nil {
		return err
	}

	if err := s.tagRepo.Delete(ctx, tagID); err != nil {
		return err
	}

	slog.Info("tag deleted", "tag_id", tagID, "project_id", tag.ProjectID, "user_id", principal.ID)

	return nil
}
