package leads

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"crm-platform/internal/activity"
)

// ActivityRecorder receives lifecycle events. Failures are the recorder's concern.
type ActivityRecorder interface {
	Record(ctx context.Context, e activity.Event)
}

// Service implements the employee-facing lead lifecycle.
// Every mutation requires the lead to be assigned to the calling employee.
type Service struct {
	repo     Repository
	activity ActivityRecorder
	log      *slog.Logger
	Now      func() time.Time

	// Location decides where "today" starts for schedules. Nil means UTC.
	Location *time.Location
}

func NewService(repo Repository, rec ActivityRecorder, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, activity: rec, log: log, Now: time.Now}
}

// ListForEmployee returns the employee's leads, most recently assigned first.
func (s *Service) ListForEmployee(ctx context.Context, tenantID, employeeID string, status Status) ([]Lead, error) {
	return s.repo.List(ctx, tenantID, Filter{AssignedTo: employeeID, Status: status, Order: OrderRecentlyAssigned})
}

// ListAll returns every lead of the tenant, newest upload first.
func (s *Service) ListAll(ctx context.Context, tenantID string) ([]Lead, error) {
	return s.repo.List(ctx, tenantID, Filter{Order: OrderNewest})
}

func (s *Service) SetTemperature(ctx context.Context, tenantID, employeeID, leadID string, t Temperature) (Lead, error) {
	if !t.Valid() {
		return Lead{}, ErrInvalidTemperature
	}
	l, err := s.owned(ctx, tenantID, employeeID, leadID)
	if err != nil {
		return Lead{}, err
	}
	l.Temperature = t
	l.UpdatedAt = s.Now().UTC()
	if err := s.repo.Update(ctx, l); err != nil {
		return Lead{}, err
	}
	return l, nil
}

// Close marks a lead closed. A future appointment blocks closing; a past one is dropped.
func (s *Service) Close(ctx context.Context, tenantID string, employee activity.Actor, employeeName, leadID string) (Lead, error) {
	l, err := s.owned(ctx, tenantID, employee.ID, leadID)
	if err != nil {
		return Lead{}, err
	}
	if l.Status == StatusClosed {
		return Lead{}, ErrAlreadyClosed
	}
	now := s.Now().UTC()
	if l.Appointment != nil && l.Appointment.Date.After(now) {
		return Lead{}, ErrFutureAppointment
	}

	l.Status = StatusClosed
	l.ClosedAt = &now
	l.Appointment = nil
	l.UpdatedAt = now
	if err := s.repo.Update(ctx, l); err != nil {
		return Lead{}, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, activity.LeadClosed(tenantID, employee, employeeName, l.ID, l.Name))
	}
	return l, nil
}

func (s *Service) ScheduleAppointment(ctx context.Context, tenantID, employeeID, leadID string, date time.Time, slot string) (Lead, error) {
	slot = strings.TrimSpace(slot)
	if date.IsZero() || slot == "" {
		return Lead{}, ErrAppointmentInput
	}
	if date.Before(s.Now()) {
		return Lead{}, ErrAppointmentPast
	}

	l, err := s.owned(ctx, tenantID, employeeID, leadID)
	if err != nil {
		return Lead{}, err
	}
	if l.Status == StatusClosed {
		return Lead{}, ErrAlreadyClosed
	}
	if l.AssignedAt != nil && !date.After(*l.AssignedAt) {
		return Lead{}, ErrAppointmentEarly
	}

	booked, err := s.repo.SlotBooked(ctx, tenantID, employeeID, date, slot, l.ID)
	if err != nil {
		return Lead{}, err
	}
	if booked {
		return Lead{}, ErrSlotTaken
	}

	l.Appointment = &Appointment{Date: date, TimeSlot: slot}
	l.UpdatedAt = s.Now().UTC()
	if err := s.repo.Update(ctx, l); err != nil {
		return Lead{}, err
	}
	s.log.Debug("appointment scheduled", "tenant_id", tenantID, "lead_id", l.ID, "slot", slot)
	return l, nil
}

func (s *Service) owned(ctx context.Context, tenantID, employeeID, leadID string) (Lead, error) {
	l, err := s.repo.Get(ctx, tenantID, leadID)
	if errors.Is(err, ErrNotFound) {
		return Lead{}, ErrNotAssigned
	}
	if err != nil {
		return Lead{}, err
	}
	if employeeID == "" || l.AssignedTo != employeeID {
		return Lead{}, ErrNotAssigned
	}
	return l, nil
}
