package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/queue/tasks"
	"github.com/thesislink/engine/internal/repository"
	appErr "github.com/thesislink/engine/pkg/errors"
	"github.com/thesislink/engine/pkg/logger"
)

type ApplicationService interface {
	// Apply creates a pending application for an open project. At most one
	// application may exist per (project, student); concurrent duplicates
	// are rejected by the unique index and surface as Conflict.
	Apply(ctx context.Context, studentID uuid.UUID, input *ApplyInput) (*models.Application, error)
	// ListFor returns the applications visible to an identity: a student's
	// own, or every application against a company's projects.
	ListFor(ctx context.Context, user *models.User) ([]models.Application, error)
	// Get returns one application, visible only to its two participants.
	Get(ctx context.Context, id, identity uuid.UUID) (*models.Application, error)
	// UpdateStatus moves an application through the review states. Owning
	// company only. Accepting selects the student on the project and moves
	// the project to in-progress.
	UpdateStatus(ctx context.Context, id, companyID uuid.UUID, status models.ApplicationStatus, notes string) (*models.Application, error)
	// Withdraw deletes an application. Owning student only. Withdrawing an
	// accepted application releases the project back to open.
	Withdraw(ctx context.Context, id, studentID uuid.UUID) error
}

type ApplyInput struct {
	ProjectID   uuid.UUID
	CoverLetter string
}

type applicationService struct {
	db           *gorm.DB
	applications repository.ApplicationRepository
	projects     repository.ProjectRepository
	asynqClient  *asynq.Client
}

// NewApplicationService wires the workflow. client may be nil; notification
// enqueueing is then skipped.
func NewApplicationService(db *gorm.DB, applications repository.ApplicationRepository, projects repository.ProjectRepository, client *asynq.Client) ApplicationService {
	return &applicationService{db: db, applications: applications, projects: projects, asynqClient: client}
}

var _ ApplicationService = (*applicationService)(nil)

func (s *applicationService) Apply(ctx context.Context, studentID uuid.UUID, input *ApplyInput) (*models.Application, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, input.ProjectID, &p); err != nil {
		return nil, err
	}
	if p.Status != models.ProjectOpen {
		return nil, appErr.New(appErr.CodeInvalid, "this project is no longer accepting applications")
	}

	// Fast-path duplicate check for a friendly error. The unique index on
	// (project_id, student_id) is what actually closes the race.
	exists, err := s.applications.Exists(ctx, input.ProjectID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErr.New(appErr.CodeConflict, "you have already applied to this project")
	}

	a := &models.Application{
		ProjectID:   input.ProjectID,
		StudentID:   studentID,
		CompanyID:   p.CompanyID,
		CoverLetter: input.CoverLetter,
		Status:      models.ApplicationPending,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.New(appErr.CodeConflict, "you have already applied to this project")
		}
		return nil, err
	}

	s.enqueue(tasks.NewApplicationSubmittedTask(a.ID))
	logger.L().Info("application submitted",
		zap.String("application_id", a.ID.String()),
		zap.String("project_id", p.ID.String()),
		zap.String("student_id", studentID.String()),
	)
	return a, nil
}

func (s *applicationService) ListFor(ctx context.Context, user *models.User) ([]models.Application, error) {
	switch user.Role {
	case models.RoleStudent:
		return s.applications.ListByStudent(ctx, user.ID)
	case models.RoleCompany:
		return s.applications.ListByCompany(ctx, user.ID)
	default:
		return nil, appErr.New(appErr.CodeForbidden, "unknown role")
	}
}

func (s *applicationService) Get(ctx context.Context, id, identity uuid.UUID) (*models.Application, error) {
	var a models.Application
	if err := s.applications.GetWithRelations(ctx, id, &a); err != nil {
		return nil, err
	}
	if a.StudentID != identity && a.CompanyID != identity {
		return nil, appErr.New(appErr.CodeForbidden, "not authorized to view this application")
	}
	return &a, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id, companyID uuid.UUID, status models.ApplicationStatus, notes string) (*models.Application, error) {
	var a models.Application
	if err := s.applications.GetByID(ctx, id, &a); err != nil {
		return nil, err
	}
	if a.CompanyID != companyID {
		return nil, appErr.New(appErr.CodeForbidden, "not authorized to update this application")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": status}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", a.ID).Updates(updates).Error; err != nil {
			return err
		}
		if status == models.ApplicationAccepted {
			err := tx.Model(&models.Project{}).
				Where("id = ?", a.ProjectID).
				Updates(map[string]any{
					"selected_student_id": a.StudentID,
					"status":              models.ProjectInProgress,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "update application status failed")
	}

	a.Status = status
	if notes != "" {
		a.Notes = notes
	}

	s.enqueue(tasks.NewApplicationStatusTask(a.ID))
	logger.L().Info("application status updated",
		zap.String("application_id", a.ID.String()),
		zap.String("status", string(status)),
	)
	return &a, nil
}

func (s *applicationService) Withdraw(ctx context.Context, id, studentID uuid.UUID) error {
	var a models.Application
	if err := s.applications.GetByID(ctx, id, &a); err != nil {
		return err
	}
	if a.StudentID != studentID {
		return appErr.New(appErr.CodeForbidden, "not authorized to withdraw this application")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Withdrawing after acceptance releases the project so the company
		// can pick another applicant.
		if a.Status == models.ApplicationAccepted {
			err := tx.Model(&models.Project{}).
				Where("id = ? AND selected_student_id = ?", a.ProjectID, a.StudentID).
				Updates(map[string]any{
					"selected_student_id": nil,
					"status":              models.ProjectOpen,
				}).Error
			if err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Application{}, "id = ?", a.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "application not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "withdraw application failed")
	}

	logger.L().Info("application withdrawn", zap.String("application_id", a.ID.String()))
	return nil
}

func (s *applicationService) enqueue(task *asynq.Task) {
	if s.asynqClient == nil {
		return
	}
	if _, err := s.asynqClient.Enqueue(task); err != nil {
		logger.L().Warn("enqueue notification task failed", zap.Error(err))
	}
}
