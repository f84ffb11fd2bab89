package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the service boundary.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ProjectResponse represents a project with its member list.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectsResponse represents the response for GET /projects.
type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// TagResponse represents a tag.
type TagResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagsResponse represents the response for GET /projects/:id/tags.
type TagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

// TaskResponse represents a task. Assignee and Tags are filled only when
// relation expansion was requested; AssigneeID is always present.
type TaskResponse struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	AssigneeID  *string       `json:"assignee_id"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
	Priority    string        `json:"priority"`
	State       string        `json:"state"`
	DueDate     *time.Time    `json:"due_date"`
	Tags        []TagResponse `json:"tags,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TasksResponse represents the response for GET /projects/:id/tasks.
type TasksResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Limit  *int           `json:"limit,omitempty"`
	Offset *int           `json:"offset,omitempty"`
}

// StatsResponse represents the response for GET /projects/:id/stats.
type StatsResponse struct {
	TotalTasks      int            `json:"total_tasks"`
	TasksByState    map[string]int `json:"tasks_by_state"`
	TasksByPriority map[string]int `json:"tasks_by_priority"`
	OverdueCount    int            `json:"overdue_count"`
}

// ToUserResponse converts domain.User to UserResponse.
func ToUserResponse(user *domain.User) UserResponse {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

// ToProjectResponse converts domain.Project to ProjectResponse.
func ToProjectResponse(project *domain.Project) ProjectResponse {
	members := project.Members
	if members == nil {
		members = []string{}
	}
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedBy,
		Members:     members,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToTagResponse converts domain.Tag to TagResponse.
func ToTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		ProjectID: tag.ProjectID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
	}
}

// ToTaskResponse converts a task with optional relations to TaskResponse.
func ToTaskResponse(task *domain.Task, assignee *domain.User, tags []domain.Tag) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		AssigneeID:  task.AssigneeID,
		Priority:    string(task.Priority),
		State:       string(task.State),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if assignee != nil {
		u := ToUserResponse(assignee)
		resp.Assignee = &u
	}
	for i := range tags {
		resp.Tags = append(resp.Tags, ToTagResponse(&tags[i]))
	}
	return resp
}

// ToTaskListItemResponse converts a repository list item to TaskResponse.
func ToTaskListItemResponse(item repository.TaskListItem) TaskResponse {
	return ToTaskResponse(item.Task, item.Assignee, item.Tags)
}

// ToStatsResponse converts repository.ProjectStats to StatsResponse.
func ToStatsResponse(stats *repository.ProjectStats) StatsResponse {
	return StatsResponse{
		TotalTasks:      stats.TotalTasks,
		TasksByState:    stats.TasksByState,
		TasksByPriority: stats.TasksByPriority,
		OverdueCount:    stats.OverdueCount,
	}
}
