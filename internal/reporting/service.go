package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"crm-platform/internal/activity"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

const (
	analyticsDays = 10
	recentLimit   = 2
	employeeLimit = 5
)

type Service struct {
	repo Repository
	loc  *time.Location
	Now  func() time.Time
}

// NewService reports calendar buckets (week, day) in loc. A nil loc means UTC.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, Now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context, tenantID string) (Dashboard, error) {
	if tenantID == "" {
		return Dashboard{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return Dashboard{}, errors.New("reporting: repository not configured")
	}

	ls, err := s.repo.ListLeads(ctx, tenantID)
	if err != nil {
		return Dashboard{}, err
	}
	es, err := s.repo.ListEmployees(ctx, tenantID)
	if err != nil {
		return Dashboard{}, err
	}
	events, err := s.repo.RecentActivity(ctx, tenantID, recentLimit)
	if err != nil {
		return Dashboard{}, err
	}

	now := s.Now().In(s.loc)
	week := WeekOf(now)

	var out Dashboard
	closed := 0
	for _, l := range ls {
		if l.AssignedTo == "" && l.Status == leads.StatusOpen {
			out.Metrics.UnassignedLeads++
		}
		if l.AssignedTo != "" && l.AssignedAt != nil && week.Contains(*l.AssignedAt) {
			out.Metrics.AssignedThisWeek++
		}
		if l.Status == leads.StatusClosed {
			closed++
		}
	}
	stats := ownerStats(ls)
	if len(ls) > 0 {
		out.Metrics.ConversionRate = int(math.Round(float64(closed) / float64(len(ls)) * 100))
	}

	out.SalesAnalytics = dailyClosed(ls, now, analyticsDays)

	out.EmployeeTable = make([]EmployeeRow, 0, employeeLimit)
	// Newest employees first.
	for i := len(es) - 1; i >= 0; i-- {
		e := es[i]
		if !e.Active {
			continue
		}
		out.Metrics.ActiveSalespeople++
		if len(out.EmployeeTable) == employeeLimit {
			continue
		}
		out.EmployeeTable = append(out.EmployeeTable, stats.row(e))
	}

	out.RecentActivities = make([]RecentActivity, 0, len(events))
	for _, ev := range events {
		out.RecentActivities = append(out.RecentActivities, RecentActivity{
			Message:   activityMessage(ev),
			TimeAgo:   TimeAgo(ev.CreatedAt, now),
			Timestamp: ev.CreatedAt,
		})
	}
	return out, nil
}

// Employees lists every employee of the tenant, newest first, with lead counts.
func (s *Service) Employees(ctx context.Context, tenantID string) ([]EmployeeRow, error) {
	if tenantID == "" {
		return nil, ErrInvalidRequest
	}
	ls, err := s.repo.ListLeads(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	es, err := s.repo.ListEmployees(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stats := ownerStats(ls)
	out := make([]EmployeeRow, 0, len(es))
	for i := len(es) - 1; i >= 0; i-- {
		out = append(out, stats.row(es[i]))
	}
	return out, nil
}

// Leads lists every lead of the tenant, newest upload first, with the owner's name resolved.
func (s *Service) Leads(ctx context.Context, tenantID string) ([]LeadRow, error) {
	if tenantID == "" {
		return nil, ErrInvalidRequest
	}
	ls, err := s.repo.ListLeads(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	es, err := s.repo.ListEmployees(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(es))
	for _, e := range es {
		names[e.ID] = e.FullName()
	}

	out := make([]LeadRow, 0, len(ls))
	for i := len(ls) - 1; i >= 0; i-- {
		l := ls[i]
		owner := "Unassigned"
		if l.AssignedTo != "" {
			owner = names[l.AssignedTo]
			if owner == "" {
				owner = "Former employee"
			}
		}
		out = append(out, LeadRow{
			ID:               l.ID,
			Name:             l.Name,
			Email:            l.Email,
			Phone:            l.Phone,
			ReceivedDate:     l.ReceivedAt.In(s.loc).Format("01/02/06"),
			Status:           l.Status,
			AssignedEmployee: owner,
			Location:         l.Location,
			Language:         l.Language,
		})
	}
	return out, nil
}

type counts struct {
	assigned map[string]int
	closed   map[string]int
}

func ownerStats(ls []leads.Lead) counts {
	c := counts{assigned: map[string]int{}, closed: map[string]int{}}
	for _, l := range ls {
		if l.AssignedTo == "" {
			continue
		}
		c.assigned[l.AssignedTo]++
		if l.Status == leads.StatusClosed {
			c.closed[l.AssignedTo]++
		}
	}
	return c
}

func (c counts) row(e employees.Employee) EmployeeRow {
	status := "Active"
	if !e.Active {
		status = "Deactive"
	}
	return EmployeeRow{
		ID:            e.ID,
		Name:          e.FullName(),
		Email:         e.Email,
		EmployeeCode:  EmployeeCode(e.ID),
		AssignedLeads: c.assigned[e.ID],
		ClosedLeads:   c.closed[e.ID],
		Status:        status,
		Location:      e.Location,
		Languages:     e.Languages,
	}
}

// WeekOf returns Sunday 00:00 through Saturday 23:59:59.999 around t, in t's location.
func WeekOf(t time.Time) TimeRange {
	y, m, d := t.Date()
	start := time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return TimeRange{From: start, To: end}
}

func dailyClosed(ls []leads.Lead, now time.Time, days int) []DailyClosed {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	out := make([]DailyClosed, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		r := TimeRange{From: day, To: day.AddDate(0, 0, 1).Add(-time.Millisecond)}
		n := 0
		for _, l := range ls {
			if l.Status == leads.StatusClosed && l.ClosedAt != nil && r.Contains(*l.ClosedAt) {
				n++
			}
		}
		out = append(out, DailyClosed{Date: day.Format("Mon"), Count: n})
	}
	return out
}

func activityMessage(e activity.Event) string {
	switch e.Action {
	case activity.ActionLeadAssigned:
		name := e.TargetEmployeeName
		if name == "" {
			name = "an employee"
		}
		return "You assigned a lead to " + name
	case activity.ActionLeadClosed:
		name := e.TargetEmployeeName
		if name == "" {
			name = "An employee"
		}
		return name + " closed a deal"
	default:
		return e.Message
	}
}

// TimeAgo renders the coarsest whole unit between then and now.
func TimeAgo(then, now time.Time) string {
	d := now.Sub(then)
	mins := int(d / time.Minute)
	hours := mins / 60
	days := hours / 24
	switch {
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	case mins > 0:
		return plural(mins, "minute")
	default:
		return "Just now"
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// EmployeeCode is the short display id shown in admin tables.
func EmployeeCode(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "#" + strings.ToUpper(id)
}
