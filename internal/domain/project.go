package domain

import "time"

// Project is the unit of tenancy: tasks and tags belong to exactly one project.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	Members     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember checks if the given user id is in the project's member list.
// The creator is tracked separately and is not required to appear here.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// IsCreatedBy checks if the project was created by the given user.
func (p *Project) IsCreatedBy(userID string) bool {
	return p.CreatedBy == userID
}
