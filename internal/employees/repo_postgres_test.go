package employees

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeRowColumns = []string{
	"id", "tenant_id", "first_name", "last_name", "email", "location", "languages",
	"password_hash", "active", "last_login_at", "created_by", "created_at", "updated_at",
}

func TestPostgresRepo_RosterExcludesDeparting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(employeeRowColumns).
		AddRow("e1", "t1", "Asha", "Rao", "a@x.io", "Pune", "Marathi", "hash", true, nil, "admin-1", at, at).
		AddRow("e3", "t1", "Ravi", "K", "r@x.io", "Delhi", "Hindi", "hash", true, at, nil, at, at)

	mock.ExpectQuery(`WHERE tenant_id = \$1 AND active AND id <> \$2\s+ORDER BY created_at ASC, id ASC`).
		WithArgs("t1", "e2").
		WillReturnRows(rows)

	got, err := NewPostgresRepo(db).Roster(context.Background(), "t1", "e2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Asha Rao", got[0].FullName())
	assert.Nil(t, got[0].LastLoginAt)
	assert.NotNil(t, got[1].LastLoginAt)
	assert.Empty(t, got[1].CreatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_CreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO employees")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = NewPostgresRepo(db).Create(context.Background(), Employee{ID: "e1", TenantID: "t1"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestPostgresRepo_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees")).
		WithArgs("t1", "e9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewPostgresRepo(db).Delete(context.Background(), "t1", "e9")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	e := Employee{ID: "e1", TenantID: "t1", FirstName: "Asha", LastName: "Rao", Email: "asha@x.io", PasswordHash: "h", UpdatedAt: at}

	mock.ExpectExec(regexp.QuoteMeta("SET first_name = $3, last_name = $4, email = $5, password_hash = $6, updated_at = $7")).
		WithArgs("t1", "e1", "Asha", "Rao", "asha@x.io", "h", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, NewPostgresRepo(db).Update(context.Background(), e))

	mock.ExpectExec("UPDATE employees").WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, NewPostgresRepo(db).Update(context.Background(), e), ErrEmailTaken)

	mock.ExpectExec("UPDATE employees").WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, NewPostgresRepo(db).Update(context.Background(), e), ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
