// internal/crm/file.go
package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"loan-concierge/internal/common/validation"
	"loan-concierge/internal/models"
)

// customersSchema guards the demo record set: a malformed file should fail
// loudly at startup, not as a zero credit score mid-conversation.
const customersSchema = `{
	"type": "object",
	"required": ["customers"],
	"properties": {
		"customers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["phone", "name", "credit_score", "pre_approved_limit"],
				"properties": {
					"phone": {"type": "string", "pattern": "^[0-9]{10}$"},
					"name": {"type": "string", "minLength": 1},
					"address": {"type": "string"},
					"city": {"type": "string"},
					"credit_score": {"type": "integer", "minimum": 0, "maximum": 900},
					"pre_approved_limit": {"type": "integer", "minimum": 0},
					"monthly_salary": {"type": "number", "minimum": 0}
				}
			}
		}
	}
}`

type customerFile struct {
	Customers []models.CustomerProfile `json:"customers"`
}

// FileStore serves customer records from a JSON file loaded once at
// construction. Lookups never touch the disk again.
type FileStore struct {
	byPhone map[string]models.CustomerProfile
}

// NewFileStore loads and validates the record set at path.
func NewFileStore(path string) (*FileStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customer data: %w", err)
	}

	if err := validation.ValidateJSON(customersSchema, raw); err != nil {
		return nil, fmt.Errorf("customer data %s: %w", path, err)
	}

	var doc customerFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse customer data: %w", err)
	}

	byPhone := make(map[string]models.CustomerProfile, len(doc.Customers))
	for _, c := range doc.Customers {
		byPhone[c.Phone] = c
	}

	return &FileStore{byPhone: byPhone}, nil
}

func (s *FileStore) LookupByPhone(_ context.Context, phone string) (*models.CustomerProfile, error) {
	c, ok := s.byPhone[phone]
	if !ok {
		return nil, ErrNotFound
	}
	profile := c
	return &profile, nil
}

func (s *FileStore) CreditScore(ctx context.Context, phone string) int {
	profile, err := s.LookupByPhone(ctx, phone)
	if err != nil {
		return 0
	}
	return profile.CreditScore
}

func (s *FileStore) PreapprovedLimit(ctx context.Context, phone string) int {
	profile, err := s.LookupByPhone(ctx, phone)
	if err != nil {
		return 0
	}
	return profile.PreApprovedLimit
}

// All returns every record sorted by name, for the startup preview.
func (s *FileStore) All() []models.CustomerProfile {
	out := make([]models.CustomerProfile, 0, len(s.byPhone))
	for _, c := range s.byPhone {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
