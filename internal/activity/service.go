package activity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for activity events.
// It is append-only; there is no Update or Delete.
type Repository interface {
	Append(ctx context.Context, e Event) error
	ListRecent(ctx context.Context, tenantID string, actions []Action, limit int) ([]Event, error)
}

// Publisher fans stored events out to other services.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

var ErrInvalidEvent = errors.New("activity: invalid event")

// Service stores activity events.
//
// Append reports failures to the caller. Record is the fire-and-forget variant used
// after an assignment commit: failures are logged and counted, never returned.
type Service struct {
	repo  Repository
	log   *slog.Logger
	clock func() time.Time

	// Publisher is optional. Publish errors are logged; the stored event stands.
	Publisher Publisher
	// OnFailure is called once per event Record could not store.
	OnFailure func()
}

func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log, clock: time.Now}
}

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("activity: repository not configured")
	}
	if e.TenantID == "" || e.Action == "" || e.PerformedBy == "" {
		return ErrInvalidEvent
	}
	if e.Action == ActionLeadAssigned && (e.LeadID == "" || e.TargetEmployeeID == "") {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return err
	}

	if s.Publisher != nil {
		if err := s.Publisher.Publish(ctx, e); err != nil {
			s.log.Warn("activity publish failed", "event_id", e.ID, "action", e.Action, "err", err)
		}
	}
	return nil
}

// Record appends e and swallows the error.
func (s *Service) Record(ctx context.Context, e Event) {
	if err := s.Append(ctx, e); err != nil {
		s.log.Error("activity record failed",
			"tenant_id", e.TenantID,
			"action", e.Action,
			"lead_id", e.LeadID,
			"target_employee_id", e.TargetEmployeeID,
			"err", err,
		)
		if s.OnFailure != nil {
			s.OnFailure()
		}
	}
}

// Recent returns the newest events first.
func (s *Service) Recent(ctx context.Context, tenantID string, limit int, actions ...Action) ([]Event, error) {
	if tenantID == "" {
		return nil, ErrInvalidEvent
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListRecent(ctx, tenantID, actions, limit)
}
