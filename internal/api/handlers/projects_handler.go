package handlers

import (
	"net/http"
	"strconv"

	"github.com/thesislink/engine/internal/api/types"
	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	"github.com/thesislink/engine/internal/services"
)

type ProjectsHandler struct {
	projects services.ProjectService
}

func NewProjectsHandler(projects services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// projectListItem resolves the owning company to its display-safe card.
type projectListItem struct {
	models.Project
	Company models.CompanyCard `json:"company"`
}

// projectDetail additionally resolves applicants to student cards.
type projectDetail struct {
	models.Project
	Company    models.CompanyCard   `json:"company"`
	Applicants []models.StudentCard `json:"applicants"`
}

func listItem(p models.Project) projectListItem {
	item := projectListItem{Project: p}
	if p.Company != nil {
		item.Company = p.Company.Card()
	} else {
		item.Company = models.CompanyCard{ID: p.CompanyID, CompanyName: p.CompanyName}
	}
	return item
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.ProjectFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		SortBy:   q.Get("sortBy"),
	}
	if v := q.Get("remote"); v != "" {
		remote := v == "true"
		f.Remote = &remote
	}

	items, err := h.projects.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	total := len(items)
	items = paginate(items, q.Get("page"), q.Get("page_size"))

	out := make([]projectListItem, 0, len(items))
	for _, p := range items {
		out = append(out, listItem(p))
	}
	writeJSON(w, http.StatusOK, types.OKCount(total, out))
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	detail := projectDetail{Project: *p, Applicants: p.Applicants()}
	if p.Company != nil {
		detail.Company = p.Company.Card()
	}
	writeJSON(w, http.StatusOK, types.OK(detail))
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.projects.Create(r.Context(), identity(r), projectInput(&req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.OK(p))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.ProjectRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.projects.Update(r.Context(), id, identity(r), projectInput(&req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(p))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.projects.Delete(r.Context(), id, identity(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Message: "project deleted"})
}

func (h *ProjectsHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathUUID(r, "companyId")
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.projects.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]projectListItem, 0, len(items))
	for _, p := range items {
		out = append(out, listItem(p))
	}
	writeJSON(w, http.StatusOK, types.OKCount(len(out), out))
}

func projectInput(req *types.ProjectRequest) *services.ProjectInput {
	return &services.ProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		RequiredSkills: req.RequiredSkills,
		Tags:           req.Tags,
		Duration:       req.Duration,
		StartDate:      req.StartDate,
		Location:       req.Location,
		Remote:         req.Remote,
		Compensation:   req.Compensation,
		Status:         models.ProjectStatus(req.Status),
	}
}

func paginate(items []models.Project, pageStr, sizeStr string) []models.Project {
	page, _ := strconv.Atoi(pageStr)
	size, _ := strconv.Atoi(sizeStr)
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
