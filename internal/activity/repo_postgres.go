package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresRepo stores events in activity_events (INSERT-only).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO activity_events (
	id, tenant_id, action, performed_by, performer_role,
	target_employee_id, target_employee_name, lead_id, lead_name,
	message, metadata, created_at
) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10, NULLIF($11, '')::jsonb, $12)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.TenantID,
		string(e.Action),
		e.PerformedBy,
		string(e.PerformerRole),
		e.TargetEmployeeID,
		e.TargetEmployeeName,
		e.LeadID,
		e.LeadName,
		e.Message,
		e.Metadata,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("activity: append: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListRecent(ctx context.Context, tenantID string, actions []Action, limit int) ([]Event, error) {
	var b strings.Builder
	b.WriteString(`
SELECT id, tenant_id, action, performed_by, performer_role,
	COALESCE(target_employee_id, ''), target_employee_name, COALESCE(lead_id, ''), lead_name,
	message, COALESCE(metadata::text, ''), created_at
FROM activity_events
WHERE tenant_id = $1`)
	args := []any{tenantID}
	if len(actions) > 0 {
		ph := make([]string, 0, len(actions))
		for _, a := range actions {
			args = append(args, string(a))
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		b.WriteString(" AND action IN (" + strings.Join(ph, ", ") + ")")
	}
	args = append(args, limit)
	fmt.Fprintf(&b, "\nORDER BY created_at DESC\nLIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("activity: list recent: %w", err)
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var e Event
		var action, role string
		if err := rows.Scan(
			&e.ID,
			&e.TenantID,
			&action,
			&e.PerformedBy,
			&role,
			&e.TargetEmployeeID,
			&e.TargetEmployeeName,
			&e.LeadID,
			&e.LeadName,
			&e.Message,
			&e.Metadata,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		e.PerformerRole = PerformerRole(role)
		out = append(out, e)
	}
	return out, rows.Err()
}
