package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid authentication token")

	// Project errors
	ErrProjectNotFound    = errors.New("project not found")
	ErrMemberAlreadyAdded = errors.New("user is already a project member")
	ErrMemberNotOnProject = errors.New("user is not a project member")

	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Tag errors
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagNameTaken     = errors.New("tag name already used in project")
	ErrTagInUse         = errors.New("tag is referenced by tasks")
	ErrTagAlreadyOnTask = errors.New("tag already attached to task")
	ErrTagNotOnTask     = errors.New("tag not attached to task")
	ErrTagWrongProject  = errors.New("tag belongs to another project")

	// Validation errors
	ErrInvalidState     = errors.New("invalid task state")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidDueDate   = errors.New("invalid due date")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidRole      = errors.New("invalid role")
)
