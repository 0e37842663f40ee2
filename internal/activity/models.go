package activity

import "time"

// Event is an append-only activity record.
//
// Invariants:
// - Events are never updated or deleted.
// - tenant_id is required.
// - A lead_assigned event exists only for an assignment that was committed.
type Event struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`

	Action Action `json:"action" db:"action"`

	PerformedBy   string        `json:"performed_by" db:"performed_by"`
	PerformerRole PerformerRole `json:"performer_role" db:"performer_role"`

	TargetEmployeeID   string `json:"target_employee_id,omitempty" db:"target_employee_id"`
	TargetEmployeeName string `json:"target_employee_name,omitempty" db:"target_employee_name"`

	LeadID   string `json:"lead_id,omitempty" db:"lead_id"`
	LeadName string `json:"lead_name,omitempty" db:"lead_name"`

	// Message is a short human-readable line for dashboards.
	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Action string

const (
	ActionLeadAssigned   Action = "lead_assigned"
	ActionLeadClosed     Action = "lead_closed"
	ActionEmployeeLogin  Action = "employee_login"
	ActionEmployeeLogout Action = "employee_logout"
)

type PerformerRole string

const (
	RoleAdmin    PerformerRole = "admin"
	RoleEmployee PerformerRole = "employee"
)

// Actor is whoever caused an event. It is resolved once per request and passed down.
type Actor struct {
	ID   string
	Role PerformerRole
}
