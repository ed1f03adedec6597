package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of a posting.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectClosed     ProjectStatus = "closed"
)

// Closed enumerations for posting fields. Validated with oneof tags on the
// request structs; mirrored here so seeds and tests share one source.
var (
	Categories = []string{
		"Machine Learning",
		"Web Development",
		"Data Analysis",
		"Mobile Development",
		"Blockchain",
		"IoT",
		"Cybersecurity",
		"AI",
		"Cloud Computing",
		"Other",
	}
	Durations     = []string{"3 months", "6 months", "9 months", "12 months"}
	Compensations = []string{"Unpaid", "Paid", "Negotiable"}
)

// Project is a company-authored listing students can apply to. Applicants are
// derived from the live Application rows; there is no separate applicant list
// to drift out of sync.
type Project struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Company           *User          `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	CompanyName       string         `gorm:"not null" json:"company_name"`
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Category          string         `gorm:"type:varchar(64);not null;index" json:"category"`
	RequiredSkills    pq.StringArray `gorm:"type:text[];not null" json:"required_skills"`
	Tags              pq.StringArray `gorm:"type:text[]" json:"tags"`
	Duration          string         `gorm:"type:varchar(16);not null" json:"duration"`
	StartDate         time.Time      `gorm:"not null" json:"start_date"`
	Location          string         `json:"location"`
	Remote            bool           `gorm:"not null;default:false;index" json:"remote"`
	Compensation      string         `gorm:"type:varchar(16);not null;default:'Unpaid'" json:"compensation"`
	Status            ProjectStatus  `gorm:"type:varchar(16);not null;default:'open';index" json:"status"`
	SelectedStudentID *uuid.UUID     `gorm:"type:uuid" json:"selected_student_id,omitempty"`
	Views             int64          `gorm:"not null;default:0" json:"views"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	Applications []Application `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Applicants resolves the current applicant set to display-safe student cards.
// Callers must have preloaded Applications.Student.
func (p *Project) Applicants() []StudentCard {
	cards := make([]StudentCard, 0, len(p.Applications))
	for _, a := range p.Applications {
		if a.Student != nil {
			cards = append(cards, a.Student.StudentCard())
		}
	}
	return cards
}
