package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-platform/pkg/utils"
)

// PostgresRepo stores leads in the leads table (see migrations/001_init.sql).
// The identity column seq records upload order.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const leadColumns = `id, tenant_id, name, email, phone, received_at, location, language,
	assigned_to, assigned_at, temperature, status, appointment_date, appointment_slot,
	call_type, closed_at, upload_batch_id, uploaded_by, created_at, updated_at`

// InsertBatch stores new leads together with any assignment decided for them.
func (r *PostgresRepo) InsertBatch(ctx context.Context, leads []Lead) error {
	const q = `
INSERT INTO leads (
	id, tenant_id, name, email, phone, received_at, location, language, assigned_to, assigned_at,
	temperature, status, call_type, closed_at, upload_batch_id, uploaded_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
`
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		for _, l := range leads {
			if _, err := tx.ExecContext(ctx, q,
				l.ID,
				l.TenantID,
				l.Name,
				l.Email,
				l.Phone,
				l.ReceivedAt,
				l.Location,
				l.Language,
				nullString(l.AssignedTo),
				l.AssignedAt,
				string(l.Temperature),
				string(l.Status),
				string(l.CallType),
				l.ClosedAt,
				l.UploadBatchID,
				l.UploadedBy,
				l.CreatedAt,
			); err != nil {
				return fmt.Errorf("leads: insert %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepo) Get(ctx context.Context, tenantID, id string) (Lead, error) {
	q := `SELECT ` + leadColumns + `
FROM leads
WHERE tenant_id = $1 AND id = $2
`
	l, err := scanLead(utils.Conn(ctx, r.db).QueryRowContext(ctx, q, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return l, nil
}

func (r *PostgresRepo) List(ctx context.Context, tenantID string, f Filter) ([]Lead, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + leadColumns + `
FROM leads
WHERE tenant_id = $1`)
	args := []any{tenantID}
	if f.Unassigned {
		b.WriteString(" AND assigned_to IS NULL")
	}
	if f.AssignedTo != "" {
		args = append(args, f.AssignedTo)
		fmt.Fprintf(&b, " AND assigned_to = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		fmt.Fprintf(&b, " AND status = $%d", len(args))
	}
	if f.WithAppointment {
		b.WriteString(" AND appointment_date IS NOT NULL")
	}
	switch f.Order {
	case OrderNewest:
		b.WriteString("\nORDER BY seq DESC")
	case OrderRecentlyAssigned:
		b.WriteString("\nORDER BY assigned_at DESC NULLS LAST, seq ASC")
	case OrderAppointment:
		b.WriteString("\nORDER BY appointment_date ASC NULLS LAST, appointment_slot ASC, seq ASC")
	default:
		b.WriteString("\nORDER BY seq ASC")
	}

	rows, err := utils.Conn(ctx, r.db).QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	defer rows.Close()

	out := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, l Lead) error {
	const q = `
UPDATE leads
SET temperature = $3, status = $4, appointment_date = $5, appointment_slot = $6, closed_at = $7, updated_at = $8
WHERE tenant_id = $1 AND id = $2
`
	var apptDate sql.NullTime
	var apptSlot sql.NullString
	if l.Appointment != nil {
		apptDate = sql.NullTime{Time: l.Appointment.Date, Valid: true}
		apptSlot = sql.NullString{String: l.Appointment.TimeSlot, Valid: true}
	}
	res, err := utils.Conn(ctx, r.db).ExecContext(ctx, q,
		l.TenantID,
		l.ID,
		string(l.Temperature),
		string(l.Status),
		apptDate,
		apptSlot,
		nullTime(l.ClosedAt),
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("leads: update %s: %w", l.ID, err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepo) ApplyAssignments(ctx context.Context, tenantID string, writes []AssignmentWrite) error {
	if len(writes) == 0 {
		return nil
	}
	const assign = `
UPDATE leads
SET assigned_to = $3, assigned_at = $4, updated_at = $4
WHERE tenant_id = $1 AND id = $2
`
	const clear = `
UPDATE leads
SET assigned_to = NULL, assigned_at = NULL, updated_at = $3
WHERE tenant_id = $1 AND id = $2
`
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		for _, w := range writes {
			var (
				res sql.Result
				err error
			)
			if w.EmployeeID == "" {
				res, err = tx.ExecContext(ctx, clear, tenantID, w.LeadID, w.At)
			} else {
				res, err = tx.ExecContext(ctx, assign, tenantID, w.LeadID, w.EmployeeID, w.At)
			}
			if err != nil {
				return fmt.Errorf("leads: assign %s: %w", w.LeadID, err)
			}
			if err := expectOneRow(res); err != nil {
				return fmt.Errorf("leads: assign %s: %w", w.LeadID, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepo) SlotBooked(ctx context.Context, tenantID, employeeID string, date time.Time, slot, excludeLeadID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM leads
	WHERE tenant_id = $1 AND assigned_to = $2 AND id <> $3
	  AND appointment_date = $4 AND appointment_slot = $5
)
`
	var booked bool
	if err := utils.Conn(ctx, r.db).QueryRowContext(ctx, q, tenantID, employeeID, excludeLeadID, date, slot).Scan(&booked); err != nil {
		return false, err
	}
	return booked, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s rowScanner) (Lead, error) {
	var (
		l                       Lead
		phone, location, lang   sql.NullString
		assignedTo, apptSlot    sql.NullString
		batchID, uploadedBy     sql.NullString
		assignedAt, apptDate    sql.NullTime
		closedAt                sql.NullTime
		temperature, st, callTy string
	)
	if err := s.Scan(
		&l.ID,
		&l.TenantID,
		&l.Name,
		&l.Email,
		&phone,
		&l.ReceivedAt,
		&location,
		&lang,
		&assignedTo,
		&assignedAt,
		&temperature,
		&st,
		&apptDate,
		&apptSlot,
		&callTy,
		&closedAt,
		&batchID,
		&uploadedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return Lead{}, err
	}
	l.Phone = phone.String
	l.Location = location.String
	l.Language = lang.String
	l.AssignedTo = assignedTo.String
	l.AssignedAt = timePtr(assignedAt)
	l.Temperature = Temperature(temperature)
	l.Status = Status(st)
	if apptDate.Valid {
		l.Appointment = &Appointment{Date: apptDate.Time, TimeSlot: apptSlot.String}
	}
	l.CallType = CallType(callTy)
	l.ClosedAt = timePtr(closedAt)
	l.UploadBatchID = batchID.String
	l.UploadedBy = uploadedBy.String
	return l, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNotFound
	}
	return nil
}
