// internal/models/money.go
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount as a rupee figure with thousands separators
// and no paise, e.g. 500000 -> "₹500,000".
func FormatINR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Round(0).BigInt().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
