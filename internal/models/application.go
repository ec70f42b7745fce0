// internal/models/application.go
package models

import "github.com/shopspring/decimal"

// Decision is the underwriting verdict for an application.
type Decision string

const (
	DecisionApproveInstant Decision = "APPROVE_INSTANT"
	DecisionRequireSalary  Decision = "REQUIRE_SALARY"
	DecisionReject         Decision = "REJECT"
)

// ApplicationContext holds everything collected for one loan application.
// It is owned by exactly one session and mutated only by the component
// handling the current turn.
//
// LoanAmount and MonthlySalary use their zero value to mean "not provided":
// a valid loan amount is always at or above the configured minimum and a
// declared salary is always positive.
type ApplicationContext struct {
	CustomerPhone    string           `json:"customer_phone,omitempty"`
	CustomerName     string           `json:"customer_name,omitempty"`
	CustomerProfile  *CustomerProfile `json:"customer_profile,omitempty"`
	LoanAmount       decimal.Decimal  `json:"loan_amount"`
	TenureMonths     int              `json:"tenure_months"`
	AnnualRatePct    decimal.Decimal  `json:"annual_rate_pct"`
	MonthlySalary    decimal.Decimal  `json:"monthly_salary"`
	CreditScore      int              `json:"credit_score"`
	PreApprovedLimit int              `json:"pre_approved_limit"`
	EMI              decimal.Decimal  `json:"emi"`
	Decision         Decision         `json:"decision,omitempty"`
	DecisionReason   string           `json:"decision_reason,omitempty"`
}

// NewApplicationContext returns a fresh context carrying only the configured
// base rate, matching the state right after a session start or restart.
func NewApplicationContext(defaultRatePct decimal.Decimal) *ApplicationContext {
	return &ApplicationContext{AnnualRatePct: defaultRatePct}
}

// MissingFields lists the required inputs that are still absent, in the
// order the conversation collects them.
func (c *ApplicationContext) MissingFields() []string {
	var missing []string
	if c.CustomerPhone == "" {
		missing = append(missing, "customer_phone")
	}
	if c.LoanAmount.IsZero() {
		missing = append(missing, "loan_amount")
	}
	if c.TenureMonths == 0 {
		missing = append(missing, "tenure_months")
	}
	return missing
}

// ClearVerification discards the tentative identity after a failed lookup
// so phone collection can start over.
func (c *ApplicationContext) ClearVerification() {
	c.CustomerPhone = ""
	c.CustomerName = ""
	c.CustomerProfile = nil
}

// SalaryDeclared reports whether the user has provided a monthly income.
func (c *ApplicationContext) SalaryDeclared() bool {
	return c.MonthlySalary.IsPositive()
}
