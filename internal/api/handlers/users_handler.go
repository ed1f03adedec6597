package handlers

import (
	"net/http"

	"github.com/thesislink/engine/internal/api/types"
	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/services"
)

type UsersHandler struct {
	users services.UserService
}

func NewUsersHandler(users services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.users.List(r.Context(), models.Role(q.Get("role")), q.Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKCount(len(items), items))
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(u))
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.UpdateUserRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	u, err := h.users.Update(r.Context(), id, identity(r), &services.UpdateUserInput{
		Name:         req.Name,
		Location:     req.Location,
		Avatar:       req.Avatar,
		University:   req.University,
		StudyProgram: req.StudyProgram,
		StudyYear:    req.StudyYear,
		Skills:       req.Skills,
		Bio:          req.Bio,
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
		CompanySize:  req.CompanySize,
		Website:      req.Website,
		Description:  req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(u))
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.Delete(r.Context(), id, identity(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Message: "user deleted"})
}
