// internal/common/config/config.go
package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Policy        PolicyConfig       `mapstructure:"policy"`
	Data          DataConfig         `mapstructure:"data"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Session       SessionConfig      `mapstructure:"session"`
	Outputs       OutputConfig       `mapstructure:"outputs"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// PolicyConfig holds the lending policy knobs the conversation and the
// underwriting preview depend on.
type PolicyConfig struct {
	MinLoanAmount   float64 `mapstructure:"min_loan_amount"`
	MinTenureMonths int     `mapstructure:"min_tenure_months"`
	MaxTenureMonths int     `mapstructure:"max_tenure_months"`
	DefaultRatePct  float64 `mapstructure:"default_rate_pct"`
}

// MinLoan returns the minimum sanctionable amount as a decimal.
func (p PolicyConfig) MinLoan() decimal.Decimal {
	return decimal.NewFromFloat(p.MinLoanAmount)
}

// DefaultRate returns the base annual rate as a decimal percentage.
func (p PolicyConfig) DefaultRate() decimal.Decimal {
	return decimal.NewFromFloat(p.DefaultRatePct)
}

// DataConfig selects and locates the customer record store.
type DataConfig struct {
	Backend       string `mapstructure:"backend"` // "file" or "postgres"
	CustomersPath string `mapstructure:"customers_path"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig selects where per-conversation state lives.
type SessionConfig struct {
	Backend    string `mapstructure:"backend"` // "memory" or "redis"
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

// OutputConfig locates the sanction artifact directory.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// NotificationConfig holds settings for the approval SMS.
type NotificationConfig struct {
	SMS SMSConfig `mapstructure:"sms"`
	AWS AWSConfig `mapstructure:"aws"`
}

// SMSConfig controls the outbound approval SMS channel.
type SMSConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	SenderID    string `mapstructure:"sender_id"`
	CountryCode string `mapstructure:"country_code"`
}

// AWSConfig holds AWS client settings.
type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// MetricsConfig holds settings for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
