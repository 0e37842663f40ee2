package events

import (
	"time"

	"crm-platform/internal/activity"
)

// Envelope is the wire shape of every published message.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

type Meta struct {
	// Request correlation ID, when one is known.
	CorrelationID *string `json:"correlation_id,omitempty"`
	// Unique event ID. Equal to the stored activity event ID.
	ID string `json:"id"`
	// Emitting service.
	Producer *string `json:"producer,omitempty"`
	// Emission time, equal to the activity event time.
	Time time.Time `json:"time"`
	// Event name and version, e.g. crm.lead_assigned.v1
	Type string `json:"type"`
}

// ActivityData is the payload of activity messages.
type ActivityData struct {
	TenantID           string `json:"tenant_id"`
	Action             string `json:"action"`
	PerformedBy        string `json:"performed_by"`
	PerformerRole      string `json:"performer_role"`
	TargetEmployeeID   string `json:"target_employee_id,omitempty"`
	TargetEmployeeName string `json:"target_employee_name,omitempty"`
	LeadID             string `json:"lead_id,omitempty"`
	LeadName           string `json:"lead_name,omitempty"`
	Message            string `json:"message,omitempty"`
}

// RoutingKey is the topic key for an activity action.
func RoutingKey(a activity.Action) string {
	return "crm." + string(a) + ".v1"
}

// FromActivity wraps a stored activity event.
func FromActivity(e activity.Event, producer, correlationID string) Envelope {
	m := Meta{ID: e.ID, Time: e.CreatedAt, Type: RoutingKey(e.Action)}
	if producer != "" {
		m.Producer = &producer
	}
	if correlationID != "" {
		m.CorrelationID = &correlationID
	}
	return Envelope{
		Meta: m,
		Data: ActivityData{
			TenantID:           e.TenantID,
			Action:             string(e.Action),
			PerformedBy:        e.PerformedBy,
			PerformerRole:      string(e.PerformerRole),
			TargetEmployeeID:   e.TargetEmployeeID,
			TargetEmployeeName: e.TargetEmployeeName,
			LeadID:             e.LeadID,
			LeadName:           e.LeadName,
			Message:            e.Message,
		},
	}
}
