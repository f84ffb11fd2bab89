package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/domain"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, auth.VerifyPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, auth.VerifyPassword(hash, "wrong"), domain.ErrInvalidCredentials)
}

func TestTokenManager_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		ID:    "00000000-0000-0000-0000-000000000001",
		Email: "dev@example.com",
		Roles: []domain.Role{domain.RoleUser},
	}

	token, err := tm.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestTokenManager_RejectsGarbageAndWrongKey(t *testing.T) {
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other, err := auth.NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm, err := auth.NewTokenManager("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := tm.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
