package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Role distinguishes the two account variants.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

// User is the common identity envelope shared by both account variants.
// Role-specific fields live on the variant profile rows so a student can
// never carry half-filled company fields and vice versa.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;index" json:"role"`
	Location     string    `json:"location"`
	Avatar       string    `json:"avatar"`
	Verified     bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	StudentProfile *StudentProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"student_profile,omitempty"`
	CompanyProfile *CompanyProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"company_profile,omitempty"`
}

// StudentProfile holds the student variant of a user account.
type StudentProfile struct {
	UserID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	University   string         `gorm:"not null" json:"university"`
	StudyProgram string         `gorm:"not null" json:"study_program"`
	StudyYear    int            `json:"study_year,omitempty"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	Bio          string         `gorm:"type:text" json:"bio,omitempty"`
}

// CompanyProfile holds the company variant of a user account.
type CompanyProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	CompanyName string    `gorm:"not null;index" json:"company_name"`
	Industry    string    `gorm:"not null" json:"industry"`
	CompanySize string    `gorm:"type:varchar(16)" json:"company_size,omitempty"`
	Website     string    `json:"website,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
}

// BeforeCreate assigns an id so inserts behave the same on every driver.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CompanyName returns the display name for company accounts, empty otherwise.
func (u *User) CompanyName() string {
	if u.CompanyProfile != nil {
		return u.CompanyProfile.CompanyName
	}
	return ""
}

// CompanyCard is the display-safe subset of a company account embedded in
// public project listings.
type CompanyCard struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	Avatar      string    `json:"avatar,omitempty"`
}

// StudentCard is the display-safe subset of a student account exposed to the
// owning company on project detail and application views.
type StudentCard struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	University   string    `json:"university,omitempty"`
	StudyProgram string    `json:"study_program,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
}

// Card returns the company-facing display subset of u.
func (u *User) Card() CompanyCard {
	return CompanyCard{ID: u.ID, CompanyName: u.CompanyName(), Location: u.Location, Avatar: u.Avatar}
}

// StudentCard returns the student-facing display subset of u.
func (u *User) StudentCard() StudentCard {
	c := StudentCard{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
	if u.StudentProfile != nil {
		c.University = u.StudentProfile.University
		c.StudyProgram = u.StudentProfile.StudyProgram
	}
	return c
}
