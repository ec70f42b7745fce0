// internal/intent/classifier_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRestart(t *testing.T) {
	assert.True(t, IsRestart("restart"))
	assert.True(t, IsRestart("  RESET  "))
	assert.True(t, IsRestart("Start Over"))
	assert.True(t, IsRestart("new"))

	assert.False(t, IsRestart("please restart this"), "restart must be the whole message")
	assert.False(t, IsRestart("renew"))
	assert.False(t, IsRestart(""))
}

func TestKeywordsGreeting(t *testing.T) {
	c := NewKeywords()
	assert.True(t, c.IsGreeting("hi"))
	assert.True(t, c.IsGreeting("Hello there!"))
	assert.True(t, c.IsGreeting("hey, how are you"))
	assert.False(t, c.IsGreeting("highway to my house"), "greeting words match whole words only")
	assert.False(t, c.IsGreeting("9876543210"))
}

func TestKeywordsAffirmativeNegative(t *testing.T) {
	c := NewKeywords()
	assert.True(t, c.IsAffirmative("yes please"))
	assert.True(t, c.IsAffirmative("ok"))
	assert.True(t, c.IsAffirmative("sure, proceed"))
	assert.False(t, c.IsAffirmative("yesterday"), "no substring matches")

	assert.True(t, c.IsNegative("no thanks"))
	assert.True(t, c.IsNegative("maybe later"))
	assert.True(t, c.IsNegative("skip that"))
	assert.False(t, c.IsNegative("nothing special"), "\"nothing\" is not \"not\"")
}

func TestWantsLowerRate(t *testing.T) {
	c := NewKeywords()
	assert.True(t, c.WantsLowerRate("can you lower the interest rate?"))
	assert.True(t, c.WantsLowerRate("any discount on the ROI"))
	assert.True(t, c.WantsLowerRate("I want a better percentage"))

	assert.False(t, c.WantsLowerRate("what is the rate?"), "needs a lowering term too")
	assert.False(t, c.WantsLowerRate("reduce the tenure"), "needs a rate term too")
}

func TestWantsAmountAdjustment(t *testing.T) {
	c := NewKeywords()
	assert.True(t, c.WantsAmountAdjustment("can you approve 300000 loan"))
	assert.True(t, c.WantsAmountAdjustment("make it 250000 instead"))
	assert.True(t, c.WantsAmountAdjustment("lower the amount to 3,00,000"))

	assert.False(t, c.WantsAmountAdjustment("reduce the loan amount"), "no number, no amount intent")
	assert.False(t, c.WantsAmountAdjustment("300000"), "bare number carries no adjustment vocabulary")
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		text     string
		expected string
		ok       bool
	}{
		{"I need 400000", "400000", true},
		{"around 4,00,000 please", "400000", true},
		{"make it 2.5 lakh", "2.5", true},
		{"sentence ending in 36.", "36", true},
		{"no numbers here", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractNumber(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		if tt.ok {
			assert.Equal(t, tt.expected, got.String(), "text %q", tt.text)
		}
	}
}

func TestExtractDigits(t *testing.T) {
	assert.Equal(t, "9876543210", ExtractDigits("my number is 98765-43210"))
	assert.Equal(t, "919876543210", ExtractDigits("+91 98765 43210"))
	assert.Equal(t, "", ExtractDigits("call me maybe"))
}

func TestParseTenureMonths(t *testing.T) {
	tests := []struct {
		text   string
		months int
		ok     bool
	}{
		{"36", 36, true},
		{"36 months", 36, true},
		{"3 years", 36, true},
		{"2.5 years", 30, true},
		{"over five years", 0, false},
		{"0 months", 0, false},
		{"no idea", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseTenureMonths(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		assert.Equal(t, tt.months, got, "text %q", tt.text)
	}
}
