package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crm-platform/internal/activity"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
	"crm-platform/internal/metrics"
	"crm-platform/pkg/utils"
)

// ErrTenantBusy means another assignment pass holds the tenant lock.
var ErrTenantBusy = errors.New("workflow: tenant assignment in progress")

// Locker serializes assignment passes per tenant.
// TryLock returns utils.ErrLockHeld when the key is taken.
type Locker interface {
	TryLock(ctx context.Context, key string) (func(context.Context) error, error)
}

// Transactor runs fn in one storage transaction. Repositories called with the
// ctx passed to fn join it.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ActivityRecorder is fire-and-forget; it never fails the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, e activity.Event)
}

// Service runs the three assignment passes against storage.
//
// Each pass reads its inputs, decides with the assignment package, commits the
// decisions together with the write that triggered the pass and only then records
// activity. A failed commit leaves no new lead, no new employee and no
// half-assigned lead behind, and emits no events.
type Service struct {
	Leads     leads.Repository
	Employees employees.Repository
	Accounts  *employees.Service
	Activity  ActivityRecorder

	// Tx may be nil. Passes that write through two repositories then undo the
	// first write by hand when the second fails.
	Tx Transactor

	// Locker may be nil, in which case passes are not serialized.
	Locker  Locker
	Metrics *metrics.Assignment
	Log     *slog.Logger
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Service) log() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// withTenantLock runs fn while holding the tenant's assignment lock.
func (s *Service) withTenantLock(ctx context.Context, op, tenantID string, fn func() error) error {
	if s.Locker == nil {
		return fn()
	}
	release, err := s.Locker.TryLock(ctx, "assign:"+tenantID)
	if errors.Is(err, utils.ErrLockHeld) {
		s.Metrics.LockBusy(op)
		return ErrTenantBusy
	}
	if err != nil {
		return fmt.Errorf("workflow: lock tenant: %w", err)
	}
	defer func() {
		// Release on a fresh context so a cancelled request still frees the key.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := release(rctx); err != nil {
			s.log().Warn("tenant lock release failed", "tenant_id", tenantID, "op", op, "err", err)
		}
	}()
	return fn()
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.Tx == nil {
		return fn(ctx)
	}
	return s.Tx.InTx(ctx, fn)
}

func (s *Service) record(ctx context.Context, e activity.Event) {
	if s.Activity == nil {
		return
	}
	s.Activity.Record(ctx, e)
}
