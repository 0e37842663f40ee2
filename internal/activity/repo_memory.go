package activity

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory append-only repository for tests and the preview CLI.
type MemoryRepo struct {
	mu     sync.Mutex
	events []Event

	// Err, when set, is returned from Append.
	Err error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepo) ListRecent(ctx context.Context, tenantID string, actions []Action, limit int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		want[a] = struct{}{}
	}
	out := make([]Event, 0)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.events[i]
		if e.TenantID != tenantID {
			continue
		}
		if len(want) > 0 {
			if _, ok := want[e.Action]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *MemoryRepo) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
