package leads

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps leads in upload order. It backs tests and the preview CLI.
type MemoryRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]Lead

	// FailInsert and FailApply, when set, are returned from InsertBatch and
	// ApplyAssignments without writing anything.
	FailInsert error
	FailApply  error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{byID: map[string]Lead{}} }

func (r *MemoryRepo) InsertBatch(ctx context.Context, leads []Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailInsert != nil {
		return r.FailInsert
	}
	for _, l := range leads {
		if _, ok := r.byID[l.ID]; !ok {
			r.order = append(r.order, l.ID)
		}
		r.byID[l.ID] = l
	}
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, tenantID, id string) (Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok || l.TenantID != tenantID {
		return Lead{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) List(ctx context.Context, tenantID string, f Filter) ([]Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Lead, 0)
	for _, id := range r.order {
		l := r.byID[id]
		if l.TenantID != tenantID {
			continue
		}
		if f.Unassigned && l.AssignedTo != "" {
			continue
		}
		if f.AssignedTo != "" && l.AssignedTo != f.AssignedTo {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.WithAppointment && l.Appointment == nil {
			continue
		}
		out = append(out, l)
	}

	switch f.Order {
	case OrderNewest:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case OrderRecentlyAssigned:
		sort.SliceStable(out, func(i, j int) bool {
			return assignedAt(out[i]).After(assignedAt(out[j]))
		})
	case OrderAppointment:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Appointment, out[j].Appointment
			if a == nil || b == nil {
				return a != nil
			}
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.TimeSlot < b.TimeSlot
		})
	}
	return out, nil
}

func assignedAt(l Lead) time.Time {
	if l.AssignedAt == nil {
		return time.Time{}
	}
	return *l.AssignedAt
}

func (r *MemoryRepo) Update(ctx context.Context, l Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[l.ID]
	if !ok || cur.TenantID != l.TenantID {
		return ErrNotFound
	}
	cur.Temperature = l.Temperature
	cur.Status = l.Status
	cur.Appointment = l.Appointment
	cur.ClosedAt = l.ClosedAt
	cur.UpdatedAt = l.UpdatedAt
	r.byID[l.ID] = cur
	return nil
}

func (r *MemoryRepo) ApplyAssignments(ctx context.Context, tenantID string, writes []AssignmentWrite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailApply != nil {
		return r.FailApply
	}
	for _, w := range writes {
		l, ok := r.byID[w.LeadID]
		if !ok || l.TenantID != tenantID {
			return ErrNotFound
		}
	}
	for _, w := range writes {
		l := r.byID[w.LeadID]
		if w.EmployeeID == "" {
			l.AssignedTo = ""
			l.AssignedAt = nil
		} else {
			at := w.At
			l.AssignedTo = w.EmployeeID
			l.AssignedAt = &at
		}
		l.UpdatedAt = w.At
		r.byID[w.LeadID] = l
	}
	return nil
}

func (r *MemoryRepo) SlotBooked(ctx context.Context, tenantID, employeeID string, date time.Time, slot, excludeLeadID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.byID {
		if l.TenantID != tenantID || l.AssignedTo != employeeID || l.ID == excludeLeadID || l.Appointment == nil {
			continue
		}
		if l.Appointment.Date.Equal(date) && l.Appointment.TimeSlot == slot {
			return true, nil
		}
	}
	return false, nil
}
