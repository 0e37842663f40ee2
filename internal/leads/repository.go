package leads

import (
	"context"
	"time"
)

// Repository is the lead store. Every method is tenant-scoped.
type Repository interface {
	// InsertBatch stores new leads, with their assignment if one was decided, atomically.
	InsertBatch(ctx context.Context, leads []Lead) error
	Get(ctx context.Context, tenantID, id string) (Lead, error)
	List(ctx context.Context, tenantID string, f Filter) ([]Lead, error)

	// Update persists lifecycle fields: temperature, status, appointment, closed_at.
	Update(ctx context.Context, l Lead) error

	// ApplyAssignments writes a whole batch atomically.
	ApplyAssignments(ctx context.Context, tenantID string, writes []AssignmentWrite) error

	// SlotBooked reports whether employeeID already holds an appointment at date+slot
	// on a lead other than excludeLeadID.
	SlotBooked(ctx context.Context, tenantID, employeeID string, date time.Time, slot, excludeLeadID string) (bool, error)
}
