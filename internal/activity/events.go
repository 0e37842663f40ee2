package activity

import (
	"fmt"

	"crm-platform/internal/assignment"
)

// LeadAssigned builds the event for one committed, non-empty decision.
func LeadAssigned(tenantID string, actor Actor, d assignment.Decision) Event {
	return Event{
		TenantID:           tenantID,
		Action:             ActionLeadAssigned,
		PerformedBy:        actor.ID,
		PerformerRole:      actor.Role,
		TargetEmployeeID:   d.AssignedTo,
		TargetEmployeeName: d.EmployeeName,
		LeadID:             d.LeadID,
		LeadName:           d.LeadName,
		Message:            fmt.Sprintf("Lead %q assigned to %s (%s)", d.LeadName, d.EmployeeName, d.Reason),
	}
}

func LeadClosed(tenantID string, actor Actor, employeeName, leadID, leadName string) Event {
	return Event{
		TenantID:           tenantID,
		Action:             ActionLeadClosed,
		PerformedBy:        actor.ID,
		PerformerRole:      actor.Role,
		TargetEmployeeID:   actor.ID,
		TargetEmployeeName: employeeName,
		LeadID:             leadID,
		LeadName:           leadName,
		Message:            fmt.Sprintf("%s closed lead %q", employeeName, leadName),
	}
}

// EmployeeSession builds a login or logout event.
func EmployeeSession(tenantID string, action Action, employeeID, employeeName string) Event {
	verb := "logged in"
	if action == ActionEmployeeLogout {
		verb = "logged out"
	}
	return Event{
		TenantID:           tenantID,
		Action:             action,
		PerformedBy:        employeeID,
		PerformerRole:      RoleEmployee,
		TargetEmployeeID:   employeeID,
		TargetEmployeeName: employeeName,
		Message:            employeeName + " " + verb,
	}
}
