package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"crm-platform/pkg/utils"
)

// PostgresRepo stores employees. (tenant_id, lower(email)) is unique.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const employeeColumns = `id, tenant_id, first_name, last_name, email, location, languages,
	password_hash, active, last_login_at, created_by, created_at, updated_at`

func (r *PostgresRepo) Create(ctx context.Context, e Employee) error {
	const q = `
INSERT INTO employees (
	id, tenant_id, first_name, last_name, email, location, languages,
	password_hash, active, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err := utils.Conn(ctx, r.db).ExecContext(ctx, q,
		e.ID,
		e.TenantID,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Location,
		e.Languages,
		e.PasswordHash,
		e.Active,
		e.CreatedBy,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if utils.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("employees: create: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, tenantID, id string) (Employee, error) {
	q := `SELECT ` + employeeColumns + `
FROM employees
WHERE tenant_id = $1 AND id = $2
`
	return r.one(ctx, q, tenantID, id)
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, tenantID, email string) (Employee, error) {
	q := `SELECT ` + employeeColumns + `
FROM employees
WHERE tenant_id = $1 AND lower(email) = lower($2)
`
	return r.one(ctx, q, tenantID, email)
}

func (r *PostgresRepo) Roster(ctx context.Context, tenantID, excludeID string) ([]Employee, error) {
	q := `SELECT ` + employeeColumns + `
FROM employees
WHERE tenant_id = $1 AND active AND id <> $2
ORDER BY created_at ASC, id ASC
`
	return r.many(ctx, q, tenantID, excludeID)
}

func (r *PostgresRepo) List(ctx context.Context, tenantID string) ([]Employee, error) {
	q := `SELECT ` + employeeColumns + `
FROM employees
WHERE tenant_id = $1
ORDER BY created_at ASC, id ASC
`
	return r.many(ctx, q, tenantID)
}

func (r *PostgresRepo) Update(ctx context.Context, e Employee) error {
	const q = `
UPDATE employees
SET first_name = $3, last_name = $4, email = $5, password_hash = $6, updated_at = $7
WHERE tenant_id = $1 AND id = $2
`
	err := r.exec(ctx, q, e.TenantID, e.ID, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.UpdatedAt)
	if utils.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PostgresRepo) SetActive(ctx context.Context, tenantID, id string, active bool) error {
	const q = `UPDATE employees SET active = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`
	return r.exec(ctx, q, tenantID, id, active)
}

func (r *PostgresRepo) TouchLogin(ctx context.Context, tenantID, id string, at time.Time) error {
	const q = `UPDATE employees SET last_login_at = $3 WHERE tenant_id = $1 AND id = $2`
	return r.exec(ctx, q, tenantID, id, at)
}

func (r *PostgresRepo) Delete(ctx context.Context, tenantID, id string) error {
	const q = `DELETE FROM employees WHERE tenant_id = $1 AND id = $2`
	return r.exec(ctx, q, tenantID, id)
}

func (r *PostgresRepo) exec(ctx context.Context, q string, args ...any) error {
	res, err := utils.Conn(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) one(ctx context.Context, q string, args ...any) (Employee, error) {
	e, err := scanEmployee(utils.Conn(ctx, r.db).QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresRepo) many(ctx context.Context, q string, args ...any) ([]Employee, error) {
	rows, err := utils.Conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("employees: list: %w", err)
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s rowScanner) (Employee, error) {
	var (
		e         Employee
		lastLogin sql.NullTime
		createdBy sql.NullString
	)
	if err := s.Scan(
		&e.ID,
		&e.TenantID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Location,
		&e.Languages,
		&e.PasswordHash,
		&e.Active,
		&lastLogin,
		&createdBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return Employee{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		e.LastLoginAt = &t
	}
	e.CreatedBy = createdBy.String
	return e, nil
}
