package leads

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// ScheduleScope selects which appointments Schedule returns.
type ScheduleScope string

const (
	// ScheduleUpcoming is every appointment on an open lead.
	ScheduleUpcoming ScheduleScope = ""
	ScheduleToday    ScheduleScope = "today"
	ScheduleAll      ScheduleScope = "all"
)

func ParseScheduleScope(v string) (ScheduleScope, error) {
	switch sc := ScheduleScope(strings.ToLower(strings.TrimSpace(v))); sc {
	case ScheduleUpcoming, ScheduleToday, ScheduleAll:
		return sc, nil
	default:
		return "", ErrScheduleScope
	}
}

var dayOfMonthRe = regexp.MustCompile(`^\d{1,2}$`)

// needle normalizes a search query. A bare one or two digit query means a day or
// month, so it is matched as "-DD" against YYYY-MM-DD dates.
func needle(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if dayOfMonthRe.MatchString(q) {
		if len(q) == 1 {
			q = "0" + q
		}
		return "-" + q
	}
	return q
}

func containsAny(n string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), n) {
			return true
		}
	}
	return false
}

// Search returns the employee's leads whose contact, status, temperature, place,
// language or assignment date contain q, most recently assigned first.
// An empty q returns every lead of the employee.
func (s *Service) Search(ctx context.Context, tenantID, employeeID, q string) ([]Lead, error) {
	ls, err := s.repo.List(ctx, tenantID, Filter{AssignedTo: employeeID, Order: OrderRecentlyAssigned})
	if err != nil {
		return nil, err
	}
	n := needle(q)
	if n == "" {
		return ls, nil
	}
	out := make([]Lead, 0, len(ls))
	for _, l := range ls {
		var assigned string
		if l.AssignedAt != nil {
			assigned = l.AssignedAt.In(s.loc()).Format(time.DateOnly)
		}
		if containsAny(n, l.Name, l.Email, l.Phone, string(l.Temperature), string(l.Status), l.Location, l.Language, assigned) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Schedule returns the employee's leads with an appointment, soonest first.
// q filters on name, phone, call type, time slot and appointment date.
func (s *Service) Schedule(ctx context.Context, tenantID, employeeID string, scope ScheduleScope, q string) ([]Lead, error) {
	f := Filter{AssignedTo: employeeID, WithAppointment: true, Order: OrderAppointment}
	if scope == ScheduleUpcoming {
		f.Status = StatusOpen
	}
	ls, err := s.repo.List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	loc := s.loc()
	now := s.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	n := needle(q)

	out := make([]Lead, 0, len(ls))
	for _, l := range ls {
		a := l.Appointment
		if scope == ScheduleToday && (a.Date.Before(dayStart) || !a.Date.Before(dayEnd)) {
			continue
		}
		if n != "" && !containsAny(n, l.Name, l.Phone, string(l.CallType), a.TimeSlot, a.Date.In(loc).Format(time.DateOnly)) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Service) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
