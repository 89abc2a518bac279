package models

// InstitutionTypes are the values the backend accepts for Institution.Type.
var InstitutionTypes = []string{"University", "College", "School"}

type Institution struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	State    string `json:"state"`
	District string `json:"district,omitempty"`
}

// InstitutionInput is the body of the create and update calls. Form tags
// drive gin binding; validation failures are rendered next to the form.
type InstitutionInput struct {
	Name     string `json:"name" form:"name" binding:"required,max=255"`
	Type     string `json:"type" form:"type" binding:"required,oneof=University College School"`
	State    string `json:"state" form:"state" binding:"required,max=100"`
	District string `json:"district" form:"district" binding:"required,max=100"`
}

type CreatedInstitution struct {
	Message     string      `json:"msg"`
	Institution Institution `json:"institution"`
}

type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Institution string `json:"institution,omitempty"`
}

type InstitutionMember struct {
	ID          int      `json:"id"`
	UserID      int      `json:"user_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Course      string   `json:"course,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	GPA         *float64 `json:"gpa,omitempty"`
	Attendance  *float64 `json:"attendance,omitempty"`
	AvgFeedback *float64 `json:"avg_feedback,omitempty"`
}

type InstitutionDetails struct {
	Institution Institution         `json:"institution"`
	Students    []InstitutionMember `json:"students"`
	Teachers    []InstitutionMember `json:"teachers"`
}
