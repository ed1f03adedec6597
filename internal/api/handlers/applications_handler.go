package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/thesislink/engine/internal/api/middleware"
	"github.com/thesislink/engine/internal/api/types"
	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/services"
)

type ApplicationsHandler struct {
	applications services.ApplicationService
}

func NewApplicationsHandler(applications services.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := &models.User{
		ID:   identity(r),
		Role: models.Role(middleware.GetRole(r.Context())),
	}
	items, err := h.applications.ListFor(r.Context(), viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKCount(len(items), items))
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.applications.Get(r.Context(), id, identity(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(a))
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ApplyRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)
	a, err := h.applications.Apply(r.Context(), identity(r), &services.ApplyInput{
		ProjectID:   projectID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.OK(a))
}

func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateApplicationRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := h.applications.UpdateStatus(r.Context(), id, identity(r), models.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(a))
}

func (h *ApplicationsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.applications.Withdraw(r.Context(), id, identity(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Message: "application withdrawn"})
}
