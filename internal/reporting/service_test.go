package reporting

import (
	"context"
	"testing"
	"time"

	"crm-platform/internal/activity"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
)

func ptr(t time.Time) *time.Time { return &t }

func TestWeekOf_SundayToSaturday(t *testing.T) {
	wed := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	w := WeekOf(wed)
	if !w.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week start %v", w.From)
	}
	if !w.To.Equal(time.Date(2026, 3, 7, 23, 59, 59, int(999*time.Millisecond), time.UTC)) {
		t.Fatalf("unexpected week end %v", w.To)
	}

	sunday := WeekOf(w.From)
	if !sunday.From.Equal(w.From) {
		t.Fatalf("sunday belongs to its own week")
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	cases := map[time.Duration]string{
		30 * time.Second: "Just now",
		time.Minute:      "1 minute ago",
		5 * time.Minute:  "5 minutes ago",
		2 * time.Hour:    "2 hours ago",
		25 * time.Hour:   "1 day ago",
		72 * time.Hour:   "3 days ago",
	}
	for d, want := range cases {
		if got := TimeAgo(now.Add(-d), now); got != want {
			t.Fatalf("TimeAgo(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestEmployeeCode(t *testing.T) {
	if got := EmployeeCode("9f1c2a7e-51b0-4c1e-8a55-0d3e4f5a6b7c"); got != "#4F5A6B7C" {
		t.Fatalf("unexpected code %q", got)
	}
	if got := EmployeeCode("e1"); got != "#E1" {
		t.Fatalf("unexpected code %q", got)
	}
}

func TestDashboard_Aggregates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	lr := leads.NewMemoryRepo()
	er := employees.NewMemoryRepo()
	ar := activity.NewMemoryRepo()
	rec := activity.NewService(ar, nil)

	for _, e := range []employees.Employee{
		{ID: "e1", TenantID: "t1", FirstName: "Asha", LastName: "Rao", Email: "a@x.io", Active: true},
		{ID: "e2", TenantID: "t1", FirstName: "Ravi", LastName: "K", Email: "r@x.io", Active: true},
		{ID: "e3", TenantID: "t1", FirstName: "Old", LastName: "Timer", Email: "o@x.io", Active: false},
		{ID: "x1", TenantID: "t2", FirstName: "Other", LastName: "Tenant", Email: "x@x.io", Active: true},
	} {
		if err := er.Create(ctx, e); err != nil {
			t.Fatalf("seed employee: %v", err)
		}
	}

	lastWeek := time.Date(2026, 2, 26, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := lr.InsertBatch(ctx, []leads.Lead{
		{ID: "l1", TenantID: "t1", Status: leads.StatusOpen},
		{ID: "l2", TenantID: "t1", Status: leads.StatusOpen, AssignedTo: "e1", AssignedAt: ptr(monday)},
		{ID: "l3", TenantID: "t1", Status: leads.StatusClosed, AssignedTo: "e1", AssignedAt: ptr(lastWeek), ClosedAt: ptr(now.Add(-time.Hour))},
		{ID: "l4", TenantID: "t1", Status: leads.StatusClosed, AssignedTo: "e2", AssignedAt: ptr(monday), ClosedAt: ptr(now.AddDate(0, 0, -1))},
		{ID: "l5", TenantID: "t1", Status: leads.StatusClosed},
		{ID: "l6", TenantID: "t1", Status: leads.StatusOpen},
		{ID: "x", TenantID: "t2", Status: leads.StatusOpen},
	}); err != nil {
		t.Fatalf("seed leads: %v", err)
	}

	for _, e := range []activity.Event{
		{TenantID: "t1", Action: activity.ActionLeadAssigned, PerformedBy: "admin", LeadID: "l2", TargetEmployeeID: "e1", TargetEmployeeName: "Asha Rao", CreatedAt: now.Add(-3 * time.Hour)},
		{TenantID: "t1", Action: activity.ActionEmployeeLogin, PerformedBy: "e1", CreatedAt: now.Add(-2 * time.Hour)},
		{TenantID: "t1", Action: activity.ActionLeadClosed, PerformedBy: "e1", TargetEmployeeName: "Asha Rao", CreatedAt: now.Add(-time.Hour)},
	} {
		if err := rec.Append(ctx, e); err != nil {
			t.Fatalf("seed activity: %v", err)
		}
	}

	svc := NewService(StoreRepo{Leads: lr, Employees: er, Activity: rec}, time.UTC)
	svc.Now = func() time.Time { return now }

	d, err := svc.Dashboard(ctx, "t1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	want := Metrics{UnassignedLeads: 2, AssignedThisWeek: 2, ActiveSalespeople: 2, ConversionRate: 50}
	if d.Metrics != want {
		t.Fatalf("metrics = %+v, want %+v", d.Metrics, want)
	}

	if len(d.SalesAnalytics) != 10 {
		t.Fatalf("expected 10 days, got %d", len(d.SalesAnalytics))
	}
	last := d.SalesAnalytics[9]
	if last.Date != "Wed" || last.Count != 1 {
		t.Fatalf("unexpected today bucket %+v", last)
	}
	if d.SalesAnalytics[8].Count != 1 {
		t.Fatalf("unexpected yesterday bucket %+v", d.SalesAnalytics[8])
	}

	if len(d.RecentActivities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(d.RecentActivities))
	}
	if d.RecentActivities[0].Message != "Asha Rao closed a deal" || d.RecentActivities[0].TimeAgo != "1 hour ago" {
		t.Fatalf("unexpected first activity %+v", d.RecentActivities[0])
	}
	if d.RecentActivities[1].Message != "You assigned a lead to Asha Rao" {
		t.Fatalf("unexpected second activity %+v", d.RecentActivities[1])
	}

	if len(d.EmployeeTable) != 2 || d.EmployeeTable[0].ID != "e2" {
		t.Fatalf("expected newest active employee first, got %+v", d.EmployeeTable)
	}
	if row := d.EmployeeTable[1]; row.AssignedLeads != 2 || row.ClosedLeads != 1 || row.Name != "Asha Rao" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestDashboard_RequiresTenant(t *testing.T) {
	svc := NewService(StoreRepo{}, nil)
	if _, err := svc.Dashboard(context.Background(), ""); err != ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestEmployeesAndLeads_Tables(t *testing.T) {
	ctx := context.Background()
	lr := leads.NewMemoryRepo()
	er := employees.NewMemoryRepo()

	_ = er.Create(ctx, employees.Employee{ID: "e1", TenantID: "t1", FirstName: "Asha", LastName: "Rao", Email: "a@x.io", Active: true})
	_ = er.Create(ctx, employees.Employee{ID: "e2", TenantID: "t1", FirstName: "Ravi", LastName: "K", Email: "r@x.io", Active: false})
	received := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	_ = lr.InsertBatch(ctx, []leads.Lead{
		{ID: "l1", TenantID: "t1", Name: "First", ReceivedAt: received, Status: leads.StatusOpen, AssignedTo: "e1"},
		{ID: "l2", TenantID: "t1", Name: "Second", ReceivedAt: received, Status: leads.StatusClosed, AssignedTo: "gone"},
		{ID: "l3", TenantID: "t1", Name: "Third", ReceivedAt: received, Status: leads.StatusOpen},
	})

	svc := NewService(StoreRepo{Leads: lr, Employees: er, Activity: activity.NewService(activity.NewMemoryRepo(), nil)}, nil)

	rows, err := svc.Employees(ctx, "t1")
	if err != nil {
		t.Fatalf("employees: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "e2" || rows[0].Status != "Deactive" || rows[1].AssignedLeads != 1 {
		t.Fatalf("unexpected employee rows %+v", rows)
	}

	ls, err := svc.Leads(ctx, "t1")
	if err != nil {
		t.Fatalf("leads: %v", err)
	}
	got := []string{ls[0].AssignedEmployee, ls[1].AssignedEmployee, ls[2].AssignedEmployee}
	want := []string{"Unassigned", "Former employee", "Asha Rao"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("owner[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if ls[2].ReceivedDate != "01/15/26" {
		t.Fatalf("unexpected received date %q", ls[2].ReceivedDate)
	}
}
