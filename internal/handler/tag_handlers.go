package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/service"
)

// handleCreateTag creates a tag in a project.
// @Summary Create a tag
// @Description Tag names are unique within a project.
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.CreateTagRequest true "Tag creation request"
// @Success 201 {object} dto.TagResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tags [post]
func (h *Handler) handleCreateTag(w http.ResponseWriter, r *http.Request) {
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

	var req dto.CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}

	tag, err := h.tagService.CreateTag(ctx, user, projectID, req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTagResponse(tag))
}

// handleListTags lists the tags of a project.
// @Summary List project tags
// @Tags tags
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.TagsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tags [get]
func (h *Handler) handleListTags(w http.ResponseWriter, r *http.Request) {
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

	tags, err := h.tagService.ListTags(ctx, user, projectID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	items := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		items = append(items, dto.ToTagResponse(tag))
	}

	respondJSON(w, http.StatusOK, dto.TagsResponse{Tags: items})
}

// handleUpdateTag renames a tag or moves it to another project.
// @Summary Update a tag
// @Description Moving a tag requires access to both the current and the destination project.
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body dto.UpdateTagRequest true "Fields to update"
// @Success 200 {object} dto.TagResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [patch]
func (h *Handler) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	tagID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name must not be empty")
		return
	}
	if req.ProjectID != nil {
		if _, err := uuid.Parse(*req.ProjectID); err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "project_id must be a valid UUID")
			return
		}
	}

	tag, err := h.tagService.UpdateTag(ctx, user, tagID, service.UpdateTagParams{
		Name:      req.Name,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTagResponse(tag))
}

// handleDeleteTag deletes an unused tag.
// @Summary Delete a tag
// @Description Fails if the tag is still attached to any task.
// @Tags tags
// @Param id path string true "Tag ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *Handler) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	tagID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(ctx, user, tagID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
