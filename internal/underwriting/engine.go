// internal/underwriting/engine.go

// Package underwriting holds the decision rules for a loan application.
// Everything here is a pure function of the application context: no I/O,
// no clock, no state.
package underwriting

import (
	"github.com/shopspring/decimal"

	"loan-concierge/internal/models"
)

const (
	ReasonLowCreditScore  = "Credit score below 700"
	ReasonEMITooHigh      = "EMI exceeds 50% of salary"
	ReasonAmountOverLimit = "Loan amount exceeds 2x pre-approved limit"
	ReasonNeedSalary      = "Need salary slip to evaluate EMI threshold"
)

// minCreditScore is the hard floor below which no application proceeds.
const minCreditScore = 700

// Details carries the supporting figures alongside a decision.
type Details struct {
	Reason string
	EMI    decimal.Decimal
}

// EMI computes the equated monthly installment via the standard
// amortization formula EMI = P*r*(1+r)^n / ((1+r)^n - 1), where r is the
// monthly rate. A zero rate degenerates to straight division.
// The result is rounded to 2 decimal places.
func EMI(principal, annualRatePct decimal.Decimal, tenureMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(tenureMonths))
	r := annualRatePct.Div(decimal.NewFromInt(1200))
	if r.IsZero() {
		return principal.DivRound(n, 2)
	}

	one := decimal.NewFromInt(1)
	growth := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).DivRound(growth.Sub(one), 2)
}

// Evaluate applies the policy rules in strict order, first match wins:
//
//  1. credit score below the floor rejects outright
//  2. amount within the pre-approved limit approves instantly
//  3. amount up to twice the limit needs a salary check: approve when the
//     EMI stays within half the declared monthly salary
//  4. anything beyond twice the limit rejects
func Evaluate(app *models.ApplicationContext) (models.Decision, Details) {
	limit := decimal.NewFromInt(int64(app.PreApprovedLimit))

	if app.CreditScore < minCreditScore {
		return models.DecisionReject, Details{Reason: ReasonLowCreditScore}
	}

	if app.LoanAmount.LessThanOrEqual(limit) {
		return models.DecisionApproveInstant, Details{
			EMI: EMI(app.LoanAmount, app.AnnualRatePct, app.TenureMonths),
		}
	}

	if app.LoanAmount.LessThanOrEqual(limit.Mul(decimal.NewFromInt(2))) {
		emi := EMI(app.LoanAmount, app.AnnualRatePct, app.TenureMonths)
		if !app.SalaryDeclared() {
			return models.DecisionRequireSalary, Details{Reason: ReasonNeedSalary, EMI: emi}
		}
		half := app.MonthlySalary.Div(decimal.NewFromInt(2))
		if emi.LessThanOrEqual(half) {
			return models.DecisionApproveInstant, Details{EMI: emi}
		}
		return models.DecisionReject, Details{Reason: ReasonEMITooHigh, EMI: emi}
	}

	return models.DecisionReject, Details{Reason: ReasonAmountOverLimit}
}
