// internal/models/customer.go
package models

import "github.com/shopspring/decimal"

// CustomerProfile is the record the CRM holds for a customer. The registered
// 10-digit phone number is the unique key across all provider backends.
type CustomerProfile struct {
	Phone            string          `json:"phone" db:"phone"`
	Name             string          `json:"name" db:"name"`
	Address          string          `json:"address" db:"address"`
	City             string          `json:"city" db:"city"`
	CreditScore      int             `json:"credit_score" db:"credit_score"`
	PreApprovedLimit int             `json:"pre_approved_limit" db:"pre_approved_limit"`
	MonthlySalary    decimal.Decimal `json:"monthly_salary" db:"monthly_salary"`
}
