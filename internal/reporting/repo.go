package reporting

import (
	"context"

	"crm-platform/internal/activity"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
)

// Repository abstracts data access for reporting. Every method is tenant-scoped.
type Repository interface {
	ListLeads(ctx context.Context, tenantID string) ([]leads.Lead, error)
	ListEmployees(ctx context.Context, tenantID string) ([]employees.Employee, error)
	RecentActivity(ctx context.Context, tenantID string, limit int) ([]activity.Event, error)
}

// StoreRepo reads straight from the domain stores.
type StoreRepo struct {
	Leads     leads.Repository
	Employees employees.Repository
	Activity  *activity.Service
}

func (r StoreRepo) ListLeads(ctx context.Context, tenantID string) ([]leads.Lead, error) {
	return r.Leads.List(ctx, tenantID, leads.Filter{Order: leads.OrderImport})
}

func (r StoreRepo) ListEmployees(ctx context.Context, tenantID string) ([]employees.Employee, error) {
	return r.Employees.List(ctx, tenantID)
}

func (r StoreRepo) RecentActivity(ctx context.Context, tenantID string, limit int) ([]activity.Event, error) {
	return r.Activity.Recent(ctx, tenantID, limit, activity.ActionLeadAssigned, activity.ActionLeadClosed)
}
