package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
// Access denials never reach this function as themselves: the service layer
// has already conflated them into the entity's not-found sentinel.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Not found (covers both absence and hidden-by-policy)
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "PROJECT_NOT_FOUND", message
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrTagNotFound):
		return http.StatusNotFound, "TAG_NOT_FOUND", message
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND", message

	// Conflicts
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "EMAIL_TAKEN", message
	case errors.Is(err, domain.ErrTagNameTaken):
		return http.StatusConflict, "TAG_NAME_TAKEN", message
	case errors.Is(err, domain.ErrTagAlreadyOnTask):
		return http.StatusConflict, "TAG_ALREADY_ON_TASK", message
	case errors.Is(err, domain.ErrMemberAlreadyAdded):
		return http.StatusConflict, "MEMBER_ALREADY_ADDED", message

	// Policy violations that are not access-related
	case errors.Is(err, domain.ErrTagInUse):
		return http.StatusBadRequest, "TAG_IN_USE", message
	case errors.Is(err, domain.ErrTagNotOnTask):
		return http.StatusBadRequest, "TAG_NOT_ON_TASK", message
	case errors.Is(err, domain.ErrTagWrongProject):
		return http.StatusBadRequest, "TAG_WRONG_PROJECT", message
	case errors.Is(err, domain.ErrMemberNotOnProject):
		return http.StatusBadRequest, "MEMBER_NOT_ON_PROJECT", message

	// Credentials
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidDueDate),
		errors.Is(err, domain.ErrInvalidSortField),
		errors.Is(err, domain.ErrInvalidRole):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
