package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application links a student to a project with a review status. The
// composite unique index over (project_id, student_id) is the authoritative
// duplicate guard; the service-level pre-check only produces a friendlier
// error on the fast path.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_project_student,unique" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_project_student,unique" json:"student_id"`
	Student   *User     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	// CompanyID mirrors the project owner so company-side listings and
	// ownership checks need no join.
	CompanyID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"company_id"`
	CoverLetter string            `gorm:"type:text;not null" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the status is one of the soft-terminal review
// outcomes.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}
