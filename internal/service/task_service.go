package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck/internal/access"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/query"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// TaskService coordinates task operations behind the access policy.
// Task lookups on behalf of a principal without project access surface as
// ErrTaskNotFound, indistinguishable from a missing task.
type TaskService struct {
	taskRepo *repository.TaskRepository
	tagRepo  *repository.TagRepository
	policy   *access.Policy
	projects *repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo *repository.TaskRepository,
	tagRepo *repository.TagRepository,
	projectRepo *repository.ProjectRepository,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		tagRepo:  tagRepo,
		policy:   access.NewPolicy(projectRepo, taskRepo),
		projects: projectRepo,
	}
}

// resolveTask fetches a task and authorizes the principal against its owning
// project, conflating denial and absence into ErrTaskNotFound.
func (s *TaskService) resolveTask(ctx context.Context, principal *domain.User, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	_, decision, err := s.policy.ResolveProjectForTask(ctx, principal, task)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// authorizeProject checks project access for task creation and listing,
// conflating denial and absence into ErrProjectNotFound.
func (s *TaskService) authorizeProject(ctx context.Context, principal *domain.User, projectID string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !access.CanAccessProject(principal, project).Allowed() {
		return domain.ErrProjectNotFound
	}
	return nil
}

// CreateTaskParams holds the validated input for CreateTask.
type CreateTaskParams struct {
	Title       string
	Description string
	AssigneeID  *string
	Priority    domain.TaskPriority
	State       domain.TaskState
	DueDate     *time.Time
}

// CreateTask creates a task inside a project the principal may access.
func (s *TaskService) CreateTask(ctx context.Context, principal *domain.User, projectID string, p CreateTaskParams) (*domain.Task, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Create(ctx, &domain.Task{
		ProjectID:   projectID,
		Title:       p.Title,
		Description: p.Description,
		AssigneeID:  p.AssigneeID,
		Priority:    p.Priority,
		State:       p.State,
		DueDate:     p.DueDate,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("task created", "task_id", task.ID, "project_id", projectID, "user_id", principal.ID)

	return task, nil
}

// ListTasks authorizes project access first, then compiles the validated
// parameters into a filter and executes it. The compiler is never invoked
// for a project the principal cannot see.
func (s *TaskService) ListTasks(ctx context.Context, principal *domain.User, projectID string, params query.Params) ([]repository.TaskListItem, int, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, 0, err
	}

	filter := query.Compile(projectID, params)
	return s.taskRepo.List(ctx, filter)
}

// GetTask retrieves a task with its tags.
func (s *TaskService) GetTask(ctx context.Context, principal *domain.User, taskID string) (*domain.Task, []domain.Tag, error) {
	task, err := s.resolveTask(ctx, principal, taskID)
	if err != nil {
		return nil, nil, err
	}

	tags, err := s.tagRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("list task tags: %w", err)
	}

	return task, tags, nil
}

// UpdateTaskParams holds optional field updates for a task. Pointer fields
// distinguish "leave unchanged" from explicit values; ClearAssignee and
// ClearDueDate reset their fields to null.
type UpdateTaskParams struct {
	Title         *string
	Description   *string
	AssigneeID    *string
	ClearAssignee bool
	Priority      *domain.TaskPriority
	State         *domain.TaskState
	DueDate       *time.Time
	ClearDueDate  bool
}

// UpdateTask applies partial updates to a task.
func (s *TaskService) UpdateTask(ctx context.Context, principal *domain.User, taskID string, p UpdateTaskParams) (*domain.Task, error) {
	task, err := s.resolveTask(ctx, principal, taskID)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.ClearAssignee {
		task.AssigneeID = nil
	} else if p.AssigneeID != nil {
		task.AssigneeID = p.AssigneeID
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.State != nil {
		task.State = *p.State
	}
	if p.ClearDueDate {
		task.DueDate = nil
	} else if p.DueDate != nil {
		task.DueDate = p.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, principal *domain.User, taskID string) error {
	if _, err := s.resolveTask(ctx, principal, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	slog.Info("task deleted", "task_id", taskID, "user_id", principal.ID)

	return nil
}

// AttachTag links a tag to a task. The tag must belong to the task's
// project; referencing a tag from another project, or one that does not
// exist, is a request error rather than an access denial.
func (s *TaskService) AttachTag(ctx context.Context, principal *domain.User, taskID, tagID string) error {
	task, err := s.resolveTask(ctx, principal, taskID)
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return fmt.Errorf("%w: tag %s", domain.ErrTagWrongProject, tagID)
		}
		return err
	}
	if tag.ProjectID != task.ProjectID {
		return fmt.Errorf("%w: tag %s belongs to project %s", domain.ErrTagWrongProject, tagID, tag.ProjectID)
	}

	return s.tagRepo.AttachToTask(ctx, taskID, tagID)
}

// DetachTag unlinks a tag from a task.
func (s *TaskService) DetachTag(ctx context.Context, principal *domain.User, taskID, tagID string) error {
	if _, err := s.resolveTask(ctx, principal, taskID); err != nil {
		return err
	}

	return s.tagRepo.DetachFromTask(ctx, taskID, tagID)
}
