// internal/intent/numbers.go
package intent

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numberPattern   = regexp.MustCompile(`\d[\d,\.]*`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// ExtractNumber pulls the first numeric figure out of free text, tolerating
// thousands separators ("4,00,000", "50,000"). Reports false when the text
// carries no parseable number.
func ExtractNumber(text string) (decimal.Decimal, bool) {
	raw := numberPattern.FindString(text)
	if raw == "" {
		return decimal.Zero, false
	}
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimRight(raw, ".")

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ExtractDigits strips everything but digits from the text.
func ExtractDigits(text string) string {
	return nonDigitPattern.ReplaceAllString(text, "")
}

// ParseTenureMonths reads a repayment tenure, interpreting "year" wording
// as multiples of 12 and rounding to the nearest whole month. Reports false
// for missing numbers and non-positive results.
func ParseTenureMonths(text string) (int, bool) {
	number, ok := ExtractNumber(text)
	if !ok {
		return 0, false
	}

	if strings.Contains(strings.ToLower(text), "year") {
		number = number.Mul(decimal.NewFromInt(12))
	}
	months := int(number.Round(0).IntPart())
	if months <= 0 {
		return 0, false
	}
	return months, true
}
