// internal/models/application_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMissingFields(t *testing.T) {
	app := NewApplicationContext(decimal.RequireFromString("12"))
	assert.Equal(t, []string{"customer_phone", "loan_amount", "tenure_months"}, app.MissingFields())

	app.CustomerPhone = "9876543210"
	assert.Equal(t, []string{"loan_amount", "tenure_months"}, app.MissingFields())

	app.LoanAmount = decimal.RequireFromString("400000")
	app.TenureMonths = 36
	assert.Empty(t, app.MissingFields())
}

func TestClearVerification(t *testing.T) {
	app := NewApplicationContext(decimal.RequireFromString("12"))
	app.CustomerPhone = "9876543210"
	app.CustomerName = "Rohan Mehta"
	app.CustomerProfile = &CustomerProfile{Phone: "9876543210"}
	app.LoanAmount = decimal.RequireFromString("400000")

	app.ClearVerification()
	assert.Empty(t, app.CustomerPhone)
	assert.Empty(t, app.CustomerName)
	assert.Nil(t, app.CustomerProfile)
	assert.True(t, app.LoanAmount.Equal(decimal.RequireFromString("400000")),
		"collected terms survive a re-verification")
}

func TestSessionReset(t *testing.T) {
	rate := decimal.RequireFromString("12")
	sess := NewSession("abc", rate)
	sess.State = StateDone
	sess.PhoneRetryCount = 2
	sess.Context.CustomerPhone = "9876543210"
	sess.LatestOutcome = &PipelineOutcome{Status: StatusApproved}

	sess.Reset(rate)
	assert.Equal(t, StateCollectPhone, sess.State)
	assert.Zero(t, sess.PhoneRetryCount)
	assert.Empty(t, sess.Context.CustomerPhone)
	assert.Nil(t, sess.LatestOutcome)
	assert.True(t, sess.Context.AnnualRatePct.Equal(rate))
	assert.Equal(t, "abc", sess.ID, "identity survives a reset")
}
