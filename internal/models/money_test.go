// internal/models/money_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"13285.73", "₹13,286"},
		{"400000", "₹400,000"},
		{"1200000", "₹1,200,000"},
		{"-5000", "-₹5,000"},
	}
	for _, tt := range tests {
		got := FormatINR(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.expected, got, "input %s", tt.in)
	}
}
