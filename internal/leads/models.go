package leads

import (
	"time"

	"crm-platform/internal/assignment"
)

type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

func (t Temperature) Valid() bool {
	switch t {
	case TemperatureHot, TemperatureWarm, TemperatureCold:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type CallType string

const (
	CallTypeReferral CallType = "referral"
	CallTypeColdCall CallType = "cold_call"
)

type Appointment struct {
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"time_slot"`
}

// Lead is a prospective customer owned by a tenant.
//
// AssignedTo and AssignedAt are set and cleared together: at insert time for a new
// batch, afterwards only through ApplyAssignments.
type Lead struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`

	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
	Location   string    `json:"location,omitempty"`
	Language   string    `json:"language,omitempty"`

	AssignedTo string     `json:"assigned_to,omitempty"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`

	Temperature Temperature  `json:"temperature"`
	Status      Status       `json:"status"`
	Appointment *Appointment `json:"appointment,omitempty"`
	CallType    CallType     `json:"call_type"`
	ClosedAt    *time.Time   `json:"closed_at,omitempty"`

	UploadBatchID string `json:"upload_batch_id,omitempty"`
	UploadedBy    string `json:"uploaded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot copies the fields the assigners read.
func (l Lead) Snapshot() assignment.LeadSnapshot {
	return assignment.LeadSnapshot{ID: l.ID, Name: l.Name, Location: l.Location, Language: l.Language}
}

func Snapshots(ls []Lead) []assignment.LeadSnapshot {
	out := make([]assignment.LeadSnapshot, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Snapshot())
	}
	return out
}

// AssignmentWrite is one persisted decision. An empty EmployeeID clears the assignment.
type AssignmentWrite struct {
	LeadID     string
	EmployeeID string
	At         time.Time
}

// WritesFromDecisions converts decisions into writes.
// Unassigned decisions are dropped unless clearUnassigned is set, in which case they clear
// any previous owner (used when reclaiming a departing employee's leads).
func WritesFromDecisions(ds []assignment.Decision, at time.Time, clearUnassigned bool) []AssignmentWrite {
	out := make([]AssignmentWrite, 0, len(ds))
	for _, d := range ds {
		if !d.Assigned() && !clearUnassigned {
			continue
		}
		out = append(out, AssignmentWrite{LeadID: d.LeadID, EmployeeID: d.AssignedTo, At: at})
	}
	return out
}

// Order controls List ordering.
type Order int

const (
	// OrderImport is upload order, oldest first. Assigners rely on it being stable.
	OrderImport Order = iota
	OrderNewest
	OrderRecentlyAssigned
	// OrderAppointment is soonest appointment first, then slot.
	OrderAppointment
)

// Filter narrows List. Zero values mean "any".
type Filter struct {
	AssignedTo      string
	Unassigned      bool
	Status          Status
	WithAppointment bool
	Order           Order
}
