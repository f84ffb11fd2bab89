// Package access implements the project-scoped authorization policy.
// A single membership rule gates visibility and mutation of projects,
// tasks and tags; managers bypass it. Denials for lookups are reported
// as HideAsNotFound so callers cannot distinguish "exists but hidden"
// from "does not exist".
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow grants the principal access to the resource.
	Allow Decision = iota
	// HideAsNotFound denies access and instructs the caller to surface the
	// denial as the resource's not-found error.
	HideAsNotFound
)

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool {
	return d == Allow
}

// ProjectStore is the project lookup the policy needs to resolve the owning
// project of a task or tag.
type ProjectStore interface {
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// TaskStore is the task lookup the policy needs for the tag-deletion guard.
type TaskStore interface {
	CountByTag(ctx context.Context, tagID string) (int, error)
}

// Policy evaluates access-control decisions over already-fetched entities,
// issuing at most one additional repository lookup per check.
type Policy struct {
	projects ProjectStore
	tasks    TaskStore
}

// NewPolicy creates a new Policy.
func NewPolicy(projects ProjectStore, tasks TaskStore) *Policy {
	return &Policy{projects: projects, tasks: tasks}
}

// CanAccessProject decides whether the principal may see and mutate the
// project and its resources. Managers bypass membership; otherwise the
// principal must be the creator or a member. There is no separate
// read-vs-write rule.
func CanAccessProject(principal *domain.User, project *domain.Project) Decision {
	if principal.IsManager() {
		return Allow
	}
	if project.IsCreatedBy(principal.ID) || project.HasMember(principal.ID) {
		return Allow
	}
	return HideAsNotFound
}

// ResolveProjectForTask fetches the task's owning project and evaluates
// CanAccessProject against it. A missing project is reported the same way
// as a denial.
func (p *Policy) ResolveProjectForTask(ctx context.Context, principal *domain.User, task *domain.Task) (*domain.Project, Decision, error) {
	return p.resolveProject(ctx, principal, task.ProjectID)
}

// ResolveProjectForTag fetches the tag's parent project and evaluates
// CanAccessProject against it. Tags carry no ownership rules of their own.
func (p *Policy) ResolveProjectForTag(ctx context.Context, principal *domain.User, tag *domain.Tag) (*domain.Project, Decision, error) {
	return p.resolveProject(ctx, principal, tag.ProjectID)
}

func (p *Policy) resolveProject(ctx context.Context, principal *domain.User, projectID string) (*domain.Project, Decision, error) {
	project, err := p.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, HideAsNotFound, nil
		}
		return nil, HideAsNotFound, fmt.Errorf("resolve project %s: %w", projectID, err)
	}

	decision := CanAccessProject(principal, project)
	if !decision.Allowed() {
		return nil, decision, nil
	}
	return project, Allow, nil
}

// EnsureTagUnused is the referential-integrity guard for tag deletion:
// a tag still attached to any task cannot be removed.
func (p *Policy) EnsureTagUnused(ctx context.Context, tagID string) error {
	count, err := p.tasks.CountByTag(ctx, tagID)
	if err != nil {
		return fmt.Errorf("count tasks for tag %s: %w", tagID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d task(s) reference tag %s", domain.ErrTagInUse, count, tagID)
	}
	return nil
}
