package employees

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo keeps employees in creation order.
type MemoryRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]Employee
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{byID: map[string]Employee{}} }

func (r *MemoryRepo) Create(ctx context.Context, e Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if cur.TenantID == e.TenantID && strings.EqualFold(cur.Email, e.Email) {
			return ErrEmailTaken
		}
	}
	r.order = append(r.order, e.ID)
	r.byID[e.ID] = e
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, tenantID, id string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.TenantID != tenantID {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, tenantID, email string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.TenantID == tenantID && strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (r *MemoryRepo) Roster(ctx context.Context, tenantID, excludeID string) ([]Employee, error) {
	return r.list(tenantID, func(e Employee) bool { return e.Active && e.ID != excludeID }), nil
}

func (r *MemoryRepo) List(ctx context.Context, tenantID string) ([]Employee, error) {
	return r.list(tenantID, func(Employee) bool { return true }), nil
}

func (r *MemoryRepo) list(tenantID string, keep func(Employee) bool) []Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Employee, 0)
	for _, id := range r.order {
		e, ok := r.byID[id]
		if !ok || e.TenantID != tenantID || !keep(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (r *MemoryRepo) Update(ctx context.Context, e Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[e.ID]
	if !ok || cur.TenantID != e.TenantID {
		return ErrNotFound
	}
	for id, other := range r.byID {
		if id != e.ID && other.TenantID == e.TenantID && strings.EqualFold(other.Email, e.Email) {
			return ErrEmailTaken
		}
	}
	cur.FirstName = e.FirstName
	cur.LastName = e.LastName
	cur.Email = e.Email
	cur.PasswordHash = e.PasswordHash
	cur.UpdatedAt = e.UpdatedAt
	r.byID[e.ID] = cur
	return nil
}

func (r *MemoryRepo) SetActive(ctx context.Context, tenantID, id string, active bool) error {
	return r.update(tenantID, id, func(e *Employee) { e.Active = active })
}

func (r *MemoryRepo) TouchLogin(ctx context.Context, tenantID, id string, at time.Time) error {
	return r.update(tenantID, id, func(e *Employee) { e.LastLoginAt = &at })
}

func (r *MemoryRepo) update(tenantID, id string, fn func(*Employee)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.TenantID != tenantID {
		return ErrNotFound
	}
	fn(&e)
	r.byID[id] = e
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.TenantID != tenantID {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
