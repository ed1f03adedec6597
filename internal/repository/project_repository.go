package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	// List returns projects matching the filter with the owning company
	// preloaded for display-card resolution.
	List(ctx context.Context, f ProjectFilter) ([]models.Project, error)
	// GetDetail loads a project with applicants (via applications) resolved.
	GetDetail(ctx context.Context, id uuid.UUID, dest *models.Project) error
	// IncrementViews bumps the view counter by one, atomically in SQL.
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Project, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	var out []models.Project
	q := f.Scope(r.db.WithContext(ctx).Model(&models.Project{})).
		Preload("Company.CompanyProfile")
	if err := f.Order(q).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects failed")
	}
	return out, nil
}

func (r *projectRepository) GetDetail(ctx context.Context, id uuid.UUID, dest *models.Project) error {
	err := r.db.WithContext(ctx).
		Preload("Company.CompanyProfile").
		Preload("Applications.Student.StudentProfile").
		First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "project not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get project failed")
	}
	return nil
}

func (r *projectRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "increment views failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "project not found")
	}
	return nil
}

func (r *projectRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	err := r.db.WithContext(ctx).
		Preload("Company.CompanyProfile").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by company failed")
	}
	return out, nil
}
