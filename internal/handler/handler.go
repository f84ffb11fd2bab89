package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	userService    *service.UserService
	projectService *service.ProjectService
	taskService    *service.TaskService
	tagService     *service.TagService
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, tokens *auth.TokenManager) *Handler {
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	tagRepo := repository.NewTagRepository(pool)

	return &Handler{
		pool:           pool,
		userService:    service.NewUserService(userRepo, tokens),
		projectService: service.NewProjectService(projectRepo, userRepo, taskRepo),
		taskService:    service.NewTaskService(taskRepo, tagRepo, projectRepo),
		tagService:     service.NewTagService(tagRepo, taskRepo, projectRepo),
		authMiddleware: middleware.NewAuthMiddleware(tokens, userRepo),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	mux.Handle("GET /api/v1/auth/me", h.authed(h.handleMe))

	// Projects
	mux.Handle("POST /api/v1/projects", h.authed(h.handleCreateProject))
	mux.Handle("GET /api/v1/projects", h.authed(h.handleListProjects))
	mux.Handle("GET /api/v1/projects/{id}", h.authed(h.handleGetProject))
	mux.Handle("PATCH /api/v1/projects/{id}", h.authed(h.handleUpdateProject))
	mux.Handle("DELETE /api/v1/projects/{id}", h.authed(h.handleDeleteProject))
	mux.Handle("POST /api/v1/projects/{id}/members", h.authed(h.handleAddMember))
	mux.Handle("DELETE /api/v1/projects/{id}/members/{userID}", h.authed(h.handleRemoveMember))
	mux.Handle("GET /api/v1/projects/{id}/stats", h.authed(h.handleProjectStats))

	// Tasks
	mux.Handle("POST /api/v1/projects/{id}/tasks", h.authed(h.handleCreateTask))
	mux.Handle("GET /api/v1/projects/{id}/tasks", h.authed(h.handleListTasks))
	mux.Handle("GET /api/v1/tasks/{id}", h.authed(h.handleGetTask))
	mux.Handle("PATCH /api/v1/tasks/{id}", h.authed(h.handleUpdateTask))
	mux.Handle("DELETE /api/v1/tasks/{id}", h.authed(h.handleDeleteTask))
	mux.Handle("POST /api/v1/tasks/{id}/tags/{tagID}", h.authed(h.handleAttachTag))
	mux.Handle("DELETE /api/v1/tasks/{id}/tags/{tagID}", h.authed(h.handleDetachTag))

	// Tags
	mux.Handle("POST /api/v1/projects/{id}/tags", h.authed(h.handleCreateTag))
	mux.Handle("GET /api/v1/projects/{id}/tags", h.authed(h.handleListTags))
	mux.Handle("PATCH /api/v1/tags/{id}", h.authed(h.handleUpdateTag))
	mux.Handle("DELETE /api/v1/tags/{id}", h.authed(h.handleDeleteTag))
}

// authed wraps a handler func with Bearer authentication.
func (h *Handler) authed(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// pathUUID extracts and validates a UUID path parameter. Returns ("", false)
// if invalid, with the error already sent to the client.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" is required")
		return "", false
	}
	if _, err := uuid.Parse(value); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID")
		return "", false
	}
	return value, true
}
