package employees

import (
	"time"

	"crm-platform/internal/assignment"
)

// Employee is a salesperson who can receive leads.
//
// Active is false only for an employee being removed; such employees are excluded
// from the assignment roster.
type Employee struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	Languages string `json:"languages"`

	PasswordHash string `json:"-"`

	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e Employee) FullName() string { return e.FirstName + " " + e.LastName }

func (e Employee) Snapshot() assignment.EmployeeSnapshot {
	return assignment.EmployeeSnapshot{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Location:  e.Location,
		Languages: e.Languages,
	}
}

func Snapshots(es []Employee) []assignment.EmployeeSnapshot {
	out := make([]assignment.EmployeeSnapshot, 0, len(es))
	for _, e := range es {
		out = append(out, e.Snapshot())
	}
	return out
}

// NewEmployee is the admin input for creating an employee.
type NewEmployee struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	Languages string `json:"languages"`
}

// EmployeeUpdate is an admin edit. Empty fields are left unchanged.
type EmployeeUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ProfileUpdate is an employee editing their own account. Empty fields are left unchanged.
type ProfileUpdate struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
