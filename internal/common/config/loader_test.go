// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "loan-concierge"
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, cfg.Policy.MinLoanAmount)
	assert.Equal(t, 6, cfg.Policy.MinTenureMonths)
	assert.Equal(t, 84, cfg.Policy.MaxTenureMonths)
	assert.Equal(t, 12.0, cfg.Policy.DefaultRatePct)
	assert.Equal(t, "file", cfg.Data.Backend)
	assert.Equal(t, "data/customers.json", cfg.Data.CustomersPath)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 120, cfg.Session.TTLMinutes)
}

func TestLoadFromFileExplicitValues(t *testing.T) {
	path := writeConfig(t, `
policy:
  min_loan_amount: 25000
  min_tenure_months: 12
  max_tenure_months: 60
  default_rate_pct: 10.5
session:
  backend: "redis"
  ttl_minutes: 30
database:
  redis:
    address: "localhost:6379"
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 25000.0, cfg.Policy.MinLoanAmount)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "25000", cfg.Policy.MinLoan().String())
	assert.Equal(t, "10.5", cfg.Policy.DefaultRate().String())
}

func TestLoadFromFileRejectsBadPolicy(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"tenure range inverted",
			"policy:\n  min_tenure_months: 60\n  max_tenure_months: 12\n",
		},
		{
			"negative rate",
			"policy:\n  default_rate_pct: -1\n",
		},
		{
			"unknown data backend",
			"data:\n  backend: \"dynamodb\"\n",
		},
		{
			"unknown session backend",
			"session:\n  backend: \"memcached\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestSessionTTL(t *testing.T) {
	cfg := &Config{Session: SessionConfig{TTLMinutes: 45}}
	assert.Equal(t, "45m0s", cfg.SessionTTL().String())
}
