package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/query"
	"github.com/taskdeck/taskdeck/internal/service"
)

// sortableFields mirrors the columns the task store can order by.
var sortableFields = map[string]struct{}{
	"title":      {},
	"priority":   {},
	"state":      {},
	"due_date":   {},
	"created_at": {},
	"updated_at": {},
}

// parseDueDate accepts RFC 3339 timestamps and bare dates.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// handleCreateTask creates a new task inside a project.
// @Summary Create a task
// @Description Creates a task in the given project. Priority defaults to MEDIUM and state to OPEN.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
		if !priority.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "priority must be LOW, MEDIUM or HIGH")
			return
		}
	}

	state := domain.TaskStateOpen
	if req.State != "" {
		state = domain.TaskState(req.State)
		if !state.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "state must be OPEN, IN_PROGRESS or CLOSED")
			return
		}
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		t, err := parseDueDate(*req.DueDate)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "due_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		dueDate = &t
	}

	task, err := h.taskService.CreateTask(ctx, user, projectID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Priority:    priority,
		State:       state,
		DueDate:     dueDate,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task, nil, nil))
}

// handleListTasks lists tasks in a project with filtering, sorting and paging.
// @Summary List project tasks
// @Description Filters by priority, state, tags, title search and due-date range. Sort accepts comma-separated fields with an optional leading "-" for descending order.
// @Tags tasks
// @Produce json
// @Param id path string true "Project ID"
// @Param priority query string false "Comma-separated priorities"
// @Param state query string false "Comma-separated states"
// @Param tags query string false "Comma-separated tag IDs"
// @Param search query string false "Case-insensitive title substring"
// @Param due_date_from query string false "Due date lower bound"
// @Param due_date_to query string false "Due date upper bound"
// @Param sort query string false "Sort specification, e.g. title,-due_date"
// @Param offset query int false "Items to skip"
// @Param limit query int false "Page size (1-200)"
// @Param populate query bool false "Embed assignee and tags"
// @Success 200 {object} dto.TasksResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	params, err := parseTaskListParams(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	items, total, err := h.taskService.ListTasks(ctx, user, projectID, params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	tasks := make([]dto.TaskResponse, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, dto.ToTaskListItemResponse(item))
	}

	respondJSON(w, http.StatusOK, dto.TasksResponse{
		Tasks:  tasks,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// parseTaskListParams validates the raw query string into typed listing
// parameters. All type and range errors are caught here so the filter
// compiler downstream never has to fail.
func parseTaskListParams(values url.Values) (query.Params, error) {
	var p query.Params

	for _, raw := range splitList(values.Get("priority")) {
		pr := domain.TaskPriority(raw)
		if !pr.IsValid() {
			return p, fmt.Errorf("invalid priority %q", raw)
		}
		p.Priority = append(p.Priority, pr)
	}

	for _, raw := range splitList(values.Get("state")) {
		st := domain.TaskState(raw)
		if !st.IsValid() {
			return p, fmt.Errorf("invalid state %q", raw)
		}
		p.State = append(p.State, st)
	}

	for _, raw := range splitList(values.Get("tags")) {
		if _, err := uuid.Parse(raw); err != nil {
			return p, fmt.Errorf("invalid tag id %q", raw)
		}
		p.Tags = append(p.Tags, raw)
	}

	if search := values.Get("search"); search != "" {
		p.Search = &search
	}

	var err error
	if p.DueGTE, err = parseDateParam(values, "due_date[gte]"); err != nil {
		return p, err
	}
	if p.DueLTE, err = parseDateParam(values, "due_date[lte]"); err != nil {
		return p, err
	}
	if p.DueFrom, err = parseDateParam(values, "due_date_from"); err != nil {
		return p, err
	}
	if p.DueTo, err = parseDateParam(values, "due_date_to"); err != nil {
		return p, err
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return p, fmt.Errorf("offset must be a non-negative integer")
		}
		p.Offset = &offset
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > config.MaxListLimit {
			return p, fmt.Errorf("limit must be between 1 and %d", config.MaxListLimit)
		}
		p.Limit = &limit
	}

	if sort := values.Get("sort"); sort != "" {
		for _, term := range strings.Split(sort, ",") {
			field := strings.TrimPrefix(strings.TrimSpace(term), "-")
			if field == "" {
				continue
			}
			if _, ok := sortableFields[field]; !ok {
				return p, fmt.Errorf("invalid sort field %q", field)
			}
		}
		p.Sort = &sort
	}

	if raw := values.Get("populate"); raw != "" {
		populate, err := strconv.ParseBool(raw)
		if err != nil {
			return p, fmt.Errorf("populate must be a boolean")
		}
		p.Populate = populate
	}

	return p, nil
}

// splitList splits a comma-separated parameter, dropping empty entries.
// An absent parameter yields nil.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDateParam(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDueDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", key)
	}
	return &t, nil
}

// handleGetTask returns a single task with its assignee and tags.
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	task, tags, err := h.taskService.GetTask(ctx, user, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var assignee *domain.User
	if task.AssigneeID != nil {
		if u, err := h.userService.GetByID(ctx, *task.AssigneeID); err == nil {
			assignee = u
		}
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, assignee, tags))
}

// handleUpdateTask applies partial updates to a task.
// @Summary Update a task
// @Description Omitted fields stay unchanged; an explicit null clears assignee_id or due_date.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title must not be empty")
		return
	}

	params := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "priority must be LOW, MEDIUM or HIGH")
			return
		}
		params.Priority = &priority
	}

	if req.State != nil {
		state := domain.TaskState(*req.State)
		if !state.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "state must be OPEN, IN_PROGRESS or CLOSED")
			return
		}
		params.State = &state
	}

	if req.AssigneeID.Set {
		if req.AssigneeID.Valid {
			params.AssigneeID = &req.AssigneeID.Value
		} else {
			params.ClearAssignee = true
		}
	}

	if req.DueDate.Set {
		if req.DueDate.Valid {
			t, err := parseDueDate(req.DueDate.Value)
			if err != nil {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "due_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
				return
			}
			params.DueDate = &t
		} else {
			params.ClearDueDate = true
		}
	}

	task, err := h.taskService.UpdateTask(ctx, user, taskID, params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, nil, nil))
}

// handleDeleteTask deletes a task.
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(ctx, user, taskID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAttachTag attaches a tag to a task.
// @Summary Attach a tag to a task
// @Description The tag must belong to the task's project.
// @Tags tasks
// @Param id path string true "Task ID"
// @Param tagID path string true "Tag ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/tags/{tagID} [post]
func (h *Handler) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := pathUUID(w, r, "tagID")
	if !ok {
		return
	}

	if err := h.taskService.AttachTag(ctx, user, taskID, tagID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDetachTag detaches a tag from a task.
// @Summary Detach a tag from a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Param tagID path string true "Tag ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/tags/{tagID} [delete]
func (h *Handler) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := pathUUID(w, r, "tagID")
	if !ok {
		return
	}

	if err := h.taskService.DetachTag(ctx, user, taskID, tagID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
