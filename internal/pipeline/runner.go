// internal/pipeline/runner.go

// Package pipeline is the master sequencing: verify the phone, fetch the
// score and limit, underwrite, and on approval render the sanction
// artifact. Every run recomputes the whole sequence from the current
// context; negotiation can change any input, so nothing is cached.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	stderrors "loan-concierge/internal/common/errors"
	"loan-concierge/internal/common/logger"
	"loan-concierge/internal/common/metrics"
	"loan-concierge/internal/common/observability"
	"loan-concierge/internal/crm"
	"loan-concierge/internal/models"
	"loan-concierge/internal/sanction"
	"loan-concierge/internal/underwriting"
)

// Renderer is the document-renderer boundary.
type Renderer interface {
	RenderSanction(ctx context.Context, letter sanction.Letter) (string, error)
}

// Notifier sends the courtesy approval message. Optional; failures are
// logged and never affect the outcome.
type Notifier interface {
	SendApproval(ctx context.Context, phone, message string) error
}

// Runner executes the orchestration sequence against a live application
// context.
type Runner struct {
	store    crm.Store
	renderer Renderer
	notifier Notifier
	obs      *observability.Observability
	logger   logger.Logger
}

func NewRunner(store crm.Store, renderer Renderer, notifier Notifier, obs *observability.Observability, log logger.Logger) *Runner {
	return &Runner{
		store:    store,
		renderer: renderer,
		notifier: notifier,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Run executes verify -> fetch -> underwrite -> (render on approval).
// A missing required field or an infrastructure failure returns an error;
// every policy outcome, including rejection, is a valid PipelineOutcome.
func (r *Runner) Run(ctx context.Context, app *models.ApplicationContext) (*models.PipelineOutcome, error) {
	start := time.Now()

	if missing := app.MissingFields(); len(missing) > 0 {
		return nil, stderrors.NewMissingRequiredFieldsError(missing)
	}

	outcome, err := r.run(ctx, app)
	if err != nil {
		return nil, err
	}

	metrics.PipelineRuns.WithLabelValues(string(outcome.Status)).Inc()
	if r.obs != nil {
		r.obs.RecordPipelineDuration(ctx, time.Since(start), string(outcome.Status))
	}
	r.logger.Info("pipeline run complete", map[string]interface{}{
		"phone":  app.CustomerPhone,
		"status": string(outcome.Status),
	})
	return outcome, nil
}

func (r *Runner) run(ctx context.Context, app *models.ApplicationContext) (*models.PipelineOutcome, error) {
	// 1. Defensive KYC re-check. The phone was verified at collection
	// time, but a restart-free edit path must never slip past it.
	profile, err := r.store.LookupByPhone(ctx, app.CustomerPhone)
	if err != nil {
		if errors.Is(err, crm.ErrNotFound) {
			return &models.PipelineOutcome{Status: models.StatusKYCFailed}, nil
		}
		return nil, stderrors.NewDataStoreUnavailableError(err)
	}
	app.CustomerName = profile.Name

	// 2. Credit score and pre-approved limit.
	app.CreditScore = r.store.CreditScore(ctx, app.CustomerPhone)
	app.PreApprovedLimit = r.store.PreapprovedLimit(ctx, app.CustomerPhone)

	// 3. Underwrite.
	decision, details := underwriting.Evaluate(app)
	app.Decision = decision
	app.DecisionReason = details.Reason
	app.EMI = details.EMI
	metrics.UnderwritingDecisions.WithLabelValues(string(decision)).Inc()

	switch decision {
	case models.DecisionReject:
		return &models.PipelineOutcome{
			Status: models.StatusReject,
			Reason: details.Reason,
			EMI:    details.EMI,
		}, nil
	case models.DecisionRequireSalary:
		return &models.PipelineOutcome{
			Status: models.StatusRequireSalary,
			Reason: details.Reason,
			EMI:    details.EMI,
		}, nil
	}

	// 4. Sanction artifact.
	path, err := r.renderer.RenderSanction(ctx, sanction.LetterFromContext(app))
	if err != nil {
		return nil, stderrors.NewSanctionRenderFailedError(err)
	}

	if r.notifier != nil {
		msg := fmt.Sprintf(
			"Congratulations %s! Your personal loan of %s is sanctioned. EMI: %s/month.",
			app.CustomerName, models.FormatINR(app.LoanAmount), models.FormatINR(app.EMI),
		)
		if nerr := r.notifier.SendApproval(ctx, app.CustomerPhone, msg); nerr != nil {
			r.logger.Warn("approval notification failed", map[string]interface{}{
				"phone": app.CustomerPhone,
				"error": nerr.Error(),
			})
		}
	}

	return &models.PipelineOutcome{
		Status:       models.StatusApproved,
		EMI:          app.EMI,
		ArtifactPath: path,
	}, nil
}
