package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	appErr "github.com/thesislink/engine/pkg/errors"
	"github.com/thesislink/engine/pkg/logger"
)

type ProjectService interface {
	List(ctx context.Context, f repository.ProjectFilter) ([]models.Project, error)
	// Get returns the project detail and increments its view counter. Every
	// successful fetch counts, with no per-viewer deduplication.
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, ownerID uuid.UUID, input *ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, input *ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Project, error)
}

// ProjectInput carries the company-authored posting fields, for both create
// and full update.
type ProjectInput struct {
	Title          string
	Description    string
	Category       string
	RequiredSkills []string
	Tags           []string
	Duration       string
	StartDate      time.Time
	Location       string
	Remote         bool
	Compensation   string
	Status         models.ProjectStatus
}

type projectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) ProjectService {
	return &projectService{projects: projects, users: users}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) List(ctx context.Context, f repository.ProjectFilter) ([]models.Project, error) {
	return s.projects.List(ctx, f)
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if err := s.projects.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	var p models.Project
	if err := s.projects.GetDetail(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, input *ProjectInput) (*models.Project, error) {
	var owner models.User
	if err := s.users.GetWithProfile(ctx, ownerID, &owner); err != nil {
		return nil, err
	}
	if owner.Role != models.RoleCompany || owner.CompanyProfile == nil {
		return nil, appErr.New(appErr.CodeForbidden, "only companies can post projects")
	}

	p := &models.Project{
		CompanyID:      owner.ID,
		CompanyName:    owner.CompanyProfile.CompanyName,
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		RequiredSkills: input.RequiredSkills,
		Tags:           input.Tags,
		Duration:       input.Duration,
		StartDate:      input.StartDate,
		Location:       input.Location,
		Remote:         input.Remote,
		Compensation:   input.Compensation,
		Status:         models.ProjectOpen,
	}
	if p.Compensation == "" {
		p.Compensation = "Unpaid"
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.L().Info("project created",
		zap.String("project_id", p.ID.String()),
		zap.String("company_id", owner.ID.String()),
	)
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id, ownerID uuid.UUID, input *ProjectInput) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	if p.CompanyID != ownerID {
		return nil, appErr.New(appErr.CodeForbidden, "not authorized to update this project")
	}

	p.Title = input.Title
	p.Description = input.Description
	p.Category = input.Category
	p.RequiredSkills = input.RequiredSkills
	p.Tags = input.Tags
	p.Duration = input.Duration
	p.StartDate = input.StartDate
	p.Location = input.Location
	p.Remote = input.Remote
	p.Compensation = input.Compensation
	if input.Status != "" {
		p.Status = input.Status
	}

	if err := s.projects.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return err
	}
	if p.CompanyID != ownerID {
		return appErr.New(appErr.CodeForbidden, "not authorized to delete this project")
	}
	// Applications cascade with the project row.
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("project deleted", zap.String("project_id", id.String()))
	return nil
}

func (s *projectService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Project, error) {
	return s.projects.ListByCompany(ctx, companyID)
}
