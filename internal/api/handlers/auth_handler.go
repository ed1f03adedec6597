package handlers

import (
	"net/http"

	"github.com/thesislink/engine/internal/api/types"
	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	"github.com/thesislink/engine/internal/services"
	appErr "github.com/thesislink/engine/pkg/errors"
)

type AuthHandler struct {
	auth  services.AuthService
	users repository.UserRepository
}

func NewAuthHandler(auth services.AuthService, users repository.UserRepository) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var user *models.User
	var err error
	switch models.Role(req.Role) {
	case models.RoleStudent:
		user, err = h.auth.RegisterStudent(r.Context(), &services.RegisterStudentInput{
			Name:         req.Name,
			Email:        req.Email,
			Password:     req.Password,
			University:   req.University,
			StudyProgram: req.StudyProgram,
			StudyYear:    req.StudyYear,
			Skills:       req.Skills,
			Bio:          req.Bio,
			Location:     req.Location,
		})
	case models.RoleCompany:
		user, err = h.auth.RegisterCompany(r.Context(), &services.RegisterCompanyInput{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			CompanyName: req.CompanyName,
			Industry:    req.Industry,
			CompanySize: req.CompanySize,
			Website:     req.Website,
			Description: req.Description,
			Location:    req.Location,
		})
	default:
		err = appErr.New(appErr.CodeInvalid, "unknown role")
	}
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.OK(map[string]any{
		"token": token,
		"user":  user,
	}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.OK(map[string]any{
		"token": token,
		"user":  user,
	}))
}

// Me returns the authenticated user's own record, variant profile included.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid := identity(r)
	var user models.User
	if err := h.users.GetWithProfile(r.Context(), uid, &user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(&user))
}
