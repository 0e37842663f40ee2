package employees

import (
	"context"
	"time"
)

// Repository is the employee store. Every method is tenant-scoped.
type Repository interface {
	Create(ctx context.Context, e Employee) error
	Get(ctx context.Context, tenantID, id string) (Employee, error)
	GetByEmail(ctx context.Context, tenantID, email string) (Employee, error)

	// Roster returns active employees in creation order, without excludeID.
	Roster(ctx context.Context, tenantID, excludeID string) ([]Employee, error)
	List(ctx context.Context, tenantID string) ([]Employee, error)

	// Update persists names, email and password hash.
	Update(ctx context.Context, e Employee) error
	SetActive(ctx context.Context, tenantID, id string, active bool) error
	TouchLogin(ctx context.Context, tenantID, id string, at time.Time) error
	Delete(ctx context.Context, tenantID, id string) error
}
