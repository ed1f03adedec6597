package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

type ApplicationRepository interface {
	BaseRepository[models.Application]
	// Exists reports whether the student already applied to the project.
	// This is only the fast-path check; the unique index is the guarantee.
	Exists(ctx context.Context, projectID, studentID uuid.UUID) (bool, error)
	GetWithRelations(ctx context.Context, id uuid.UUID, dest *models.Application) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Application, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Application, error)
}

type applicationRepository struct {
	BaseRepository[models.Application]
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{BaseRepository: NewBaseRepository[models.Application](db), db: db}
}

func (r *applicationRepository) Exists(ctx context.Context, projectID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("project_id = ? AND student_id = ?", projectID, studentID).
		Count(&n).Error
	if err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check application exists failed")
	}
	return n > 0, nil
}

func (r *applicationRepository) GetWithRelations(ctx context.Context, id uuid.UUID, dest *models.Application) error {
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Student.StudentProfile").
		First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "application not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get application failed")
	}
	return nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list applications by student failed")
	}
	return out, nil
}

func (r *applicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Student.StudentProfile").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list applications by company failed")
	}
	return out, nil
}
