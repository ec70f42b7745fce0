// internal/crm/postgres_test.go
package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-concierge/internal/common/logger"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

var customerColumns = []string{
	"phone", "name", "address", "city", "credit_score", "pre_approved_limit", "monthly_salary",
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db, logger.NewTestLogger(t)), mock
}

func TestPostgresLookupByPhone(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT phone, name, address, city, credit_score, pre_approved_limit, monthly_salary").
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows(customerColumns).
			AddRow("9876543210", "Rohan Mehta", "12 Lake View Road", "Pune", 750, 500000, "85000"))

	profile, err := store.LookupByPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Rohan Mehta", profile.Name)
	assert.Equal(t, 750, profile.CreditScore)
	assert.Equal(t, 500000, profile.PreApprovedLimit)
	assert.True(t, profile.MonthlySalary.Equal(decimalFromString(t, "85000")))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLookupNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT phone, name").
		WithArgs("0000000000").
		WillReturnRows(sqlmock.NewRows(customerColumns))

	_, err := store.LookupByPhone(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLookupQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT phone, name").
		WithArgs("9876543210").
		WillReturnError(errors.New("connection refused"))

	_, err := store.LookupByPhone(context.Background(), "9876543210")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjections(t *testing.T) {
	store, mock := newMockStore(t)

	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(customerColumns).
			AddRow("9876543210", "Rohan Mehta", "", "", 750, 500000, "0")
	}
	mock.ExpectQuery("SELECT phone, name").WithArgs("9876543210").WillReturnRows(row())
	mock.ExpectQuery("SELECT phone, name").WithArgs("9876543210").WillReturnRows(row())

	assert.Equal(t, 750, store.CreditScore(context.Background(), "9876543210"))
	assert.Equal(t, 500000, store.PreapprovedLimit(context.Background(), "9876543210"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectionsSwallowErrors(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT phone, name").
		WithArgs("9876543210").
		WillReturnError(errors.New("timeout"))

	assert.Equal(t, 0, store.CreditScore(context.Background(), "9876543210"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
