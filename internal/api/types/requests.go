package types

import "time"

// RegisterRequest is the wire shape for registration. The role tag selects
// the account variant; variant fields are conditionally required here at the
// edge and become typed variants in the service layer.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student company"`
	Location string `json:"location"`

	// Student variant
	University   string   `json:"university" validate:"required_if=Role student"`
	StudyProgram string   `json:"study_program" validate:"required_if=Role student"`
	StudyYear    int      `json:"study_year" validate:"omitempty,gte=1,lte=6"`
	Skills       []string `json:"skills"`
	Bio          string   `json:"bio" validate:"omitempty,max=500"`

	// Company variant
	CompanyName string `json:"company_name" validate:"required_if=Role company"`
	Industry    string `json:"industry" validate:"required_if=Role company"`
	CompanySize string `json:"company_size" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProjectRequest is the wire shape for creating or fully updating a posting.
type ProjectRequest struct {
	Title          string    `json:"title" validate:"required,max=200"`
	Description    string    `json:"description" validate:"required,max=2000"`
	Category       string    `json:"category" validate:"required,oneof='Machine Learning' 'Web Development' 'Data Analysis' 'Mobile Development' Blockchain IoT Cybersecurity AI 'Cloud Computing' Other"`
	RequiredSkills []string  `json:"required_skills" validate:"required,min=1,dive,required"`
	Tags           []string  `json:"tags"`
	Duration       string    `json:"duration" validate:"required,oneof='3 months' '6 months' '9 months' '12 months'"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	Location       string    `json:"location"`
	Remote         bool      `json:"remote"`
	Compensation   string    `json:"compensation" validate:"omitempty,oneof=Unpaid Paid Negotiable"`
	// Status is honored on update only; create always starts open.
	Status string `json:"status" validate:"omitempty,oneof=open in-progress completed closed"`
}

type ApplyRequest struct {
	ProjectID   string `json:"project_id" validate:"required,uuid"`
	CoverLetter string `json:"cover_letter" validate:"required,max=1000"`
}

type UpdateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateUserRequest carries optional profile mutations. Absent fields stay
// untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Location *string `json:"location"`
	Avatar   *string `json:"avatar"`

	University   *string  `json:"university"`
	StudyProgram *string  `json:"study_program"`
	StudyYear    *int     `json:"study_year" validate:"omitempty,gte=1,lte=6"`
	Skills       []string `json:"skills"`
	Bio          *string  `json:"bio" validate:"omitempty,max=500"`

	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"company_size" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}
