package assignment

// LeadSnapshot is the subset of a lead the assigners read.
// It is built fresh from storage for every pass and never mutated.
type LeadSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Language string `json:"language,omitempty"`
}

// EmployeeSnapshot is the subset of an employee the assigners read.
// Languages is a single free-text value; it is compared whole, not split.
type EmployeeSnapshot struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Location  string `json:"location,omitempty"`
	Languages string `json:"languages,omitempty"`
}

// FullName is the display name stored on decisions and activity events.
func (e EmployeeSnapshot) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Decision is the outcome for one lead.
//
// AssignedTo is empty when the lead stays unassigned; EmployeeName is empty in that case too.
// Snapshot IDs are validated non-empty, so an empty AssignedTo never collides with a real employee.
type Decision struct {
	LeadID       string `json:"lead_id"`
	LeadName     string `json:"lead_name,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       Reason `json:"reason"`
}

// Assigned reports whether the decision names an employee.
func (d Decision) Assigned() bool { return d.AssignedTo != "" }

// Reason is the fixed human-readable explanation attached to a decision.
// The values are part of the external contract and must not change.
type Reason string

const (
	ReasonNoEmployees         Reason = "No employees available"
	ReasonLocationMatch       Reason = "Location match"
	ReasonLanguageMatch       Reason = "Language match"
	ReasonLocationAndLanguage Reason = "Location and Language match"
	ReasonNoMatch             Reason = "No location or language match"

	ReasonNoActiveEmployees   Reason = "No active employees available"
	ReasonEqualDistribution   Reason = "Equal distribution after deletion"
	ReasonRemainderUnassigned Reason = "Remainder after equal distribution - unassigned"
)

func assignedTo(l LeadSnapshot, e EmployeeSnapshot, r Reason) Decision {
	return Decision{
		LeadID:       l.ID,
		LeadName:     l.Name,
		AssignedTo:   e.ID,
		EmployeeName: e.FullName(),
		Reason:       r,
	}
}

func unassigned(l LeadSnapshot, r Reason) Decision {
	return Decision{LeadID: l.ID, LeadName: l.Name, Reason: r}
}
