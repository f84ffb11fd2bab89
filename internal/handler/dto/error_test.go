package dto_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"project not found", domain.ErrProjectNotFound, http.StatusNotFound, "PROJECT_NOT_FOUND"},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{"tag not found", domain.ErrTagNotFound, http.StatusNotFound, "TAG_NOT_FOUND"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{"tag name taken", domain.ErrTagNameTaken, http.StatusConflict, "TAG_NAME_TAKEN"},
		{"tag already on task", domain.ErrTagAlreadyOnTask, http.StatusConflict, "TAG_ALREADY_ON_TASK"},
		{"member already added", domain.ErrMemberAlreadyAdded, http.StatusConflict, "MEMBER_ALREADY_ADDED"},
		{"tag in use", domain.ErrTagInUse, http.StatusBadRequest, "TAG_IN_USE"},
		{"tag not on task", domain.ErrTagNotOnTask, http.StatusBadRequest, "TAG_NOT_ON_TASK"},
		{"tag wrong project", domain.ErrTagWrongProject, http.StatusBadRequest, "TAG_WRONG_PROJECT"},
		{"member not on project", domain.ErrMemberNotOnProject, http.StatusBadRequest, "MEMBER_NOT_ON_PROJECT"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"invalid state", domain.ErrInvalidState, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid priority", domain.ErrInvalidPriority, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid due date", domain.ErrInvalidDueDate, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid sort field", domain.ErrInvalidSortField, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := dto.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestMapDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("delete tag: %w", domain.ErrTagInUse)

	status, code, _ := dto.MapDomainError(wrapped)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "TAG_IN_USE", code)
}
