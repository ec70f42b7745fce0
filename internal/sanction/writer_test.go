// internal/sanction/writer_test.go
package sanction

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-concierge/internal/models"
)

func testLetter() Letter {
	return Letter{
		CustomerName:  "Rohan Mehta",
		Phone:         "9876543210",
		LoanAmount:    "400000.00",
		TenureMonths:  36,
		AnnualRatePct: "12.00",
		EMI:           "13285.73",
	}
}

func TestRenderSanction(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }

	path, err := w.RenderSanction(context.Background(), testLetter())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sanction_9876543210.txt"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Personal Loan Sanction Letter")
	assert.Contains(t, content, "Date: 2026-08-28")
	assert.Contains(t, content, "To: Rohan Mehta (9876543210)")
	assert.Contains(t, content, "Sanction Amount: INR 400000.00")
	assert.Contains(t, content, "Tenure: 36 months")
	assert.Contains(t, content, "Interest Rate: 12.00% p.a.")
	assert.Contains(t, content, "Calculated EMI: INR 13285.73")
	assert.Contains(t, content, "demonstration purposes only")
}

func TestRenderSanctionOverwritesOnRerun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	first, err := w.RenderSanction(context.Background(), testLetter())
	require.NoError(t, err)

	revised := testLetter()
	revised.LoanAmount = "300000.00"
	second, err := w.RenderSanction(context.Background(), revised)
	require.NoError(t, err)
	assert.Equal(t, first, second, "one artifact per phone number")

	raw, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "300000.00")
	assert.NotContains(t, string(raw), "400000.00")
}

func TestRenderSanctionCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	w := NewWriter(dir)

	path, err := w.RenderSanction(context.Background(), testLetter())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLetterFromContext(t *testing.T) {
	app := &models.ApplicationContext{
		CustomerPhone: "9876543210",
		CustomerName:  "Rohan Mehta",
		LoanAmount:    decimal.RequireFromString("400000"),
		TenureMonths:  36,
		AnnualRatePct: decimal.RequireFromString("11.5"),
		EMI:           decimal.RequireFromString("13285.73"),
	}

	letter := LetterFromContext(app)
	assert.Equal(t, "Rohan Mehta", letter.CustomerName)
	assert.Equal(t, "9876543210", letter.Phone)
	assert.Equal(t, "400000.00", letter.LoanAmount)
	assert.Equal(t, 36, letter.TenureMonths)
	assert.Equal(t, "11.50", letter.AnnualRatePct)
	assert.Equal(t, "13285.73", letter.EMI)
}
