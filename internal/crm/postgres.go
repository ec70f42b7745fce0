// internal/crm/postgres.go
package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loan-concierge/internal/common/logger"
	"loan-concierge/internal/models"
)

// PostgresStore serves customer records from the customers table. The table
// is read-only for this system; provisioning it is an ops concern.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "crm-postgres"}),
	}
}

func (s *PostgresStore) LookupByPhone(ctx context.Context, phone string) (*models.CustomerProfile, error) {
	query := `SELECT phone, name, address, city, credit_score, pre_approved_limit, monthly_salary
		FROM customers WHERE phone = $1`

	var profile models.CustomerProfile
	err := s.db.QueryRowContext(ctx, query, phone).Scan(
		&profile.Phone,
		&profile.Name,
		&profile.Address,
		&profile.City,
		&profile.CreditScore,
		&profile.PreApprovedLimit,
		&profile.MonthlySalary,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("customer lookup: %w", err)
	}

	return &profile, nil
}

func (s *PostgresStore) CreditScore(ctx context.Context, phone string) int {
	profile, err := s.LookupByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("credit score projection failed", map[string]interface{}{
				"phone": phone,
				"error": err.Error(),
			})
		}
		return 0
	}
	return profile.CreditScore
}

func (s *PostgresStore) PreapprovedLimit(ctx context.Context, phone string) int {
	profile, err := s.LookupByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("pre-approved limit projection failed", map[string]interface{}{
				"phone": phone,
				"error": err.Error(),
			})
		}
		return 0
	}
	return profile.PreApprovedLimit
}
