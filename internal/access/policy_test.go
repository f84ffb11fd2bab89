package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/access"
	"github.com/taskdeck/taskdeck/internal/domain"
)

type fakeProjectStore struct {
	projects map[string]*domain.Project
}

func (f *fakeProjectStore) GetByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

type fakeTaskStore struct {
	tagCounts map[string]int
}

func (f *fakeTaskStore) CountByTag(_ context.Context, tagID string) (int, error) {
	return f.tagCounts[tagID], nil
}

func user(id string, roles ...domain.Role) *domain.User {
	return &domain.User{ID: id, Roles: roles}
}

func TestCanAccessProject(t *testing.T) {
	project := &domain.Project{
		ID:        "p1",
		CreatedBy: "owner",
		Members:   []string{"member"},
	}

	tests := []struct {
		name      string
		principal *domain.User
		want      access.Decision
	}{
		{"creator is allowed", user("owner", domain.RoleUser), access.Allow},
		{"member is allowed", user("member", domain.RoleUser), access.Allow},
		{"manager bypasses membership", user("outsider", domain.RoleManager), access.Allow},
		{"stranger is hidden", user("stranger", domain.RoleUser), access.HideAsNotFound},
		{"stranger with no roles is hidden", user("stranger"), access.HideAsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.CanAccessProject(tt.principal, project)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == access.Allow, got.Allowed())
		})
	}
}

func TestResolveProjectForTask(t *testing.T) {
	projects := &fakeProjectStore{projects: map[string]*domain.Project{
		"p1": {ID: "p1", CreatedBy: "owner", Members: []string{"member"}},
	}}
	policy := access.NewPolicy(projects, &fakeTaskStore{})
	task := &domain.Task{ID: "t1", ProjectID: "p1"}

	t.Run("member resolves project", func(t *testing.T) {
		project, decision, err := policy.ResolveProjectForTask(context.Background(), user("member", domain.RoleUser), task)
		require.NoError(t, err)
		assert.True(t, decision.Allowed())
		require.NotNil(t, project)
		assert.Equal(t, "p1", project.ID)
	})

	t.Run("stranger is hidden without error", func(t *testing.T) {
		project, decision, err := policy.ResolveProjectForTask(context.Background(), user("stranger", domain.RoleUser), task)
		require.NoError(t, err)
		assert.Equal(t, access.HideAsNotFound, decision)
		assert.Nil(t, project)
	})

	t.Run("missing project looks identical to denial", func(t *testing.T) {
		orphan := &domain.Task{ID: "t2", ProjectID: "gone"}
		project, decision, err := policy.ResolveProjectForTask(context.Background(), user("member", domain.RoleUser), orphan)
		require.NoError(t, err)
		assert.Equal(t, access.HideAsNotFound, decision)
		assert.Nil(t, project)
	})
}

func TestResolveProjectForTag(t *testing.T) {
	projects := &fakeProjectStore{projects: map[string]*domain.Project{
		"p1": {ID: "p1", CreatedBy: "owner"},
	}}
	policy := access.NewPolicy(projects, &fakeTaskStore{})
	tag := &domain.Tag{ID: "tag1", ProjectID: "p1", Name: "bug"}

	project, decision, err := policy.ResolveProjectForTag(context.Background(), user("owner", domain.RoleUser), tag)
	require.NoError(t, err)
	assert.True(t, decision.Allowed())
	assert.Equal(t, "p1", project.ID)

	_, decision, err = policy.ResolveProjectForTag(context.Background(), user("stranger", domain.RoleUser), tag)
	require.NoError(t, err)
	assert.Equal(t, access.HideAsNotFound, decision)
}

func TestEnsureTagUnused(t *testing.T) {
	policy := access.NewPolicy(&fakeProjectStore{}, &fakeTaskStore{tagCounts: map[string]int{
		"used": 3,
	}})

	err := policy.EnsureTagUnused(context.Background(), "unused")
	assert.NoError(t, err)

	err = policy.EnsureTagUnused(context.Background(), "used")
	assert.ErrorIs(t, err, domain.ErrTagInUse)
}
