package dto

// RegisterRequest represents the request body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateProjectRequest represents the request body for POST /projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectRequest represents the request body for PATCH /projects/:id.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest represents the request body for POST /projects/:id/members.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// CreateTaskRequest represents the request body for POST /projects/:id/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	State       string  `json:"state,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents the request body for PATCH /tasks/:id.
// Pointer fields distinguish "leave unchanged" from explicit values; an
// explicit JSON null on assignee_id or due_date clears the field.
type UpdateTaskRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	AssigneeID  OptionalString `json:"assignee_id"`
	Priority    *string        `json:"priority,omitempty"`
	State       *string        `json:"state,omitempty"`
	DueDate     OptionalString `json:"due_date"`
}

// CreateTagRequest represents the request body for POST /projects/:id/tags.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// UpdateTagRequest represents the request body for PATCH /tags/:id.
// A project id moves the tag into another project.
type UpdateTagRequest struct {
	Name      *string `json:"name,omitempty"`
	ProjectID *string `json:"project_id,omitempty"`
}
