// internal/sanction/writer.go

// Package sanction renders the approval artifact. The layout is not
// architecturally significant; what matters is one artifact per phone
// number, overwritten on rerun.
package sanction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loan-concierge/internal/common/metrics"
	"loan-concierge/internal/models"
)

// Letter carries the finalized fields the renderer needs.
type Letter struct {
	CustomerName  string
	Phone         string
	LoanAmount    string
	TenureMonths  int
	AnnualRatePct string
	EMI           string
}

// LetterFromContext assembles a Letter from an approved application.
func LetterFromContext(app *models.ApplicationContext) Letter {
	return Letter{
		CustomerName:  app.CustomerName,
		Phone:         app.CustomerPhone,
		LoanAmount:    app.LoanAmount.StringFixed(2),
		TenureMonths:  app.TenureMonths,
		AnnualRatePct: app.AnnualRatePct.StringFixed(2),
		EMI:           app.EMI.StringFixed(2),
	}
}

// Writer produces plain-text sanction letters under a fixed directory.
type Writer struct {
	dir string
	now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// RenderSanction writes sanction_<phone>.txt and returns its path.
func (w *Writer) RenderSanction(_ context.Context, letter Letter) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("sanction_%s.txt", letter.Phone))

	var b strings.Builder
	b.WriteString("Personal Loan Sanction Letter\n")
	b.WriteString(strings.Repeat("=", 29) + "\n\n")
	fmt.Fprintf(&b, "Date: %s\n", w.now().Format("2006-01-02"))
	fmt.Fprintf(&b, "To: %s (%s)\n", letter.CustomerName, letter.Phone)
	b.WriteString("Subject: Sanction of Personal Loan\n\n")
	b.WriteString("We are pleased to inform you that your personal loan has been sanctioned.\n")
	fmt.Fprintf(&b, "Sanction Amount: INR %s\n", letter.LoanAmount)
	fmt.Fprintf(&b, "Tenure: %d months\n", letter.TenureMonths)
	fmt.Fprintf(&b, "Interest Rate: %s%% p.a.\n", letter.AnnualRatePct)
	fmt.Fprintf(&b, "Calculated EMI: INR %s (approx.)\n\n", letter.EMI)
	b.WriteString("Please note: This is a system-generated letter for demonstration purposes only.\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write sanction letter: %w", err)
	}

	metrics.SanctionLettersRendered.Inc()
	return path, nil
}
