// internal/crm/store.go

// Package crm is the data-provider boundary: customer identity, credit
// score, and pre-approved limit, keyed by the registered phone number.
// Backends are read-only record sets; nothing here mutates customer data.
package crm

import (
	"context"
	"errors"

	"loan-concierge/internal/models"
)

// ErrNotFound is returned by LookupByPhone when no record matches.
var ErrNotFound = errors.New("customer not found")

// Store is the lookup contract the conversation and pipeline depend on.
// CreditScore and PreapprovedLimit are convenience projections that return
// zero for unknown phones instead of an error.
type Store interface {
	LookupByPhone(ctx context.Context, phone string) (*models.CustomerProfile, error)
	CreditScore(ctx context.Context, phone string) int
	PreapprovedLimit(ctx context.Context, phone string) int
}
