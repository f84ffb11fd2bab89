package domain

import "time"

// TaskState represents the lifecycle state of a task.
type TaskState string

const (
	TaskStateOpen       TaskState = "OPEN"
	TaskStateInProgress TaskState = "IN_PROGRESS"
	TaskStateClosed     TaskState = "CLOSED"
)

// IsValid checks if the state is one of the allowed values.
func (s TaskState) IsValid() bool {
	switch s {
	case TaskStateOpen, TaskStateInProgress, TaskStateClosed:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a unit of work inside a project.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	AssigneeID  *string
	Priority    TaskPriority
	State       TaskState
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task has a due date in the past and is not closed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.State != TaskStateClosed
}
