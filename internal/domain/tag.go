package domain

import "time"

// Tag is a project-scoped label attachable to tasks. Tag names are unique
// within a project; the database enforces this with a unique index and the
// service layer maps the violation to ErrTagNameTaken.
type Tag struct {
	ID        string
	ProjectID string
	Name      string
	CreatedAt time.Time
}
