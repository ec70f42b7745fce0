// internal/negotiation/resolver.go

// Package negotiation interprets ad-hoc rate and amount requests that cut
// across the normal collection flow. It runs on every utterance before
// state dispatch, but only once a verified phone is on file.
package negotiation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-concierge/internal/common/logger"
	"loan-concierge/internal/common/metrics"
	"loan-concierge/internal/intent"
	"loan-concierge/internal/models"
)

// rateTiers maps credit score bands to the best annual rate the concierge
// may offer. The floor never goes below the customer's band.
var rateTiers = []struct {
	minScore int
	rate     decimal.Decimal
}{
	{800, decimal.RequireFromString("9.75")},
	{760, decimal.RequireFromString("10.25")},
	{720, decimal.RequireFromString("10.75")},
	{680, decimal.RequireFromString("11.25")},
}

var (
	fallbackRate = decimal.RequireFromString("11.75")
	halfPoint    = decimal.RequireFromString("0.5")
	// Numbers under 5 in a rate request are almost never a percentage.
	rateNoiseFloor = decimal.NewFromInt(5)
)

// BestRate returns the lowest annual rate available for a credit score.
func BestRate(creditScore int) decimal.Decimal {
	for _, tier := range rateTiers {
		if creditScore >= tier.minScore {
			return tier.rate
		}
	}
	return fallbackRate
}

// Resolver mutates in-flight terms in response to negotiation intents.
type Resolver struct {
	classifier intent.Classifier
	logger     logger.Logger
}

func NewResolver(classifier intent.Classifier, log logger.Logger) *Resolver {
	return &Resolver{
		classifier: classifier,
		logger:     log.WithFields(map[string]interface{}{"component": "negotiation"}),
	}
}

// Resolve inspects one utterance. When it handles a negotiation intent it
// returns the replies to surface; rerun reports that the revised terms
// should go straight back through the pipeline. At most one intent is acted
// on per message, rate first.
func (r *Resolver) Resolve(sess *models.Session, utterance string) (handled bool, replies []models.Reply, rerun bool) {
	app := sess.Context
	if app.CustomerPhone == "" {
		return false, nil, false
	}

	if r.classifier.WantsLowerRate(utterance) {
		return true, r.resolveRate(sess, utterance), false
	}

	if !app.LoanAmount.IsZero() && r.classifier.WantsAmountAdjustment(utterance) {
		return r.resolveAmount(sess, utterance)
	}

	return false, nil, false
}

func (r *Resolver) resolveRate(sess *models.Session, utterance string) []models.Reply {
	metrics.NegotiationIntents.WithLabelValues("rate").Inc()

	if sess.Decided() {
		return []models.Reply{models.Master(
			"We've already wrapped this ticket. Type `restart` and I'll open a fresh application so we can revisit the rate together.",
		)}
	}

	app := sess.Context
	current := app.AnnualRatePct

	score := 0
	if app.CustomerProfile != nil {
		score = app.CustomerProfile.CreditScore
	}
	best := BestRate(score)

	requested, hasRequested := intent.ExtractNumber(utterance)
	if hasRequested && requested.LessThan(rateNoiseFloor) {
		hasRequested = false
	}

	var proposed decimal.Decimal
	if hasRequested {
		proposed = decimal.Max(best, requested)
	} else {
		proposed = decimal.Max(best, current.Sub(halfPoint))
	}

	if proposed.LessThan(current) {
		app.AnnualRatePct = proposed
		r.logger.Info("rate concession granted", map[string]interface{}{
			"sessionId": sess.ID,
			"rate":      proposed.StringFixed(2),
		})

		creditHint := ""
		if score > 0 {
			creditHint = fmt.Sprintf(" Given your credit score of %d, I've got room to request this concession.", score)
		}
		return []models.Reply{{
			Speaker: models.SpeakerSales,
			Text: fmt.Sprintf(
				"I can pitch a rate of about %s%% to underwriting for you.%s Final numbers will still reflect their call, but I'll go in with this ask.",
				proposed.StringFixed(2), creditHint,
			),
		}}
	}

	return []models.Reply{{
		Speaker: models.SpeakerSales,
		Text: fmt.Sprintf(
			"We're already sitting at %s%%. I'll flag your request and see if underwriting can sweeten the offer further when we submit.",
			current.StringFixed(2),
		),
	}}
}

func (r *Resolver) resolveAmount(sess *models.Session, utterance string) (bool, []models.Reply, bool) {
	metrics.NegotiationIntents.WithLabelValues("amount").Inc()

	if sess.Decided() {
		return true, []models.Reply{models.Master(
			"Happy to explore a different ticket size. Type `restart` and we'll tailor a fresh request.",
		)}, false
	}

	app := sess.Context
	newAmount, ok := intent.ExtractNumber(utterance)
	if !ok || !newAmount.IsPositive() {
		return true, []models.Reply{{
			Speaker: models.SpeakerSales,
			Text:    "I didn't quite catch the amount you had in mind. Could you share the figure in rupees?",
		}}, false
	}

	if newAmount.GreaterThanOrEqual(app.LoanAmount) {
		return true, []models.Reply{{
			Speaker: models.SpeakerSales,
			Text: "I'm already championing a higher ticket with underwriting. " +
				"If you'd like to go even bigger, we may need fresh documents. Shall we keep the current ask for now?",
		}}, false
	}

	app.LoanAmount = newAmount
	r.logger.Info("loan amount reduced", map[string]interface{}{
		"sessionId": sess.ID,
		"amount":    newAmount.String(),
	})

	limitNote := ""
	if app.CustomerProfile != nil && app.CustomerProfile.PreApprovedLimit > 0 {
		limit := decimal.NewFromInt(int64(app.CustomerProfile.PreApprovedLimit))
		if newAmount.GreaterThan(limit) {
			limitNote = fmt.Sprintf(" (still a bit above your pre-approved %s, but I'll push for it)", models.FormatINR(limit))
		} else {
			limitNote = fmt.Sprintf(" (comfortably within your pre-approved %s)", models.FormatINR(limit))
		}
	}

	replies := []models.Reply{{
		Speaker: models.SpeakerSales,
		Text: fmt.Sprintf(
			"Got it, we'll reshape the request to %s%s and see if underwriting signs off.",
			models.FormatINR(newAmount), limitNote,
		),
	}}

	// Only a fully collected application is worth re-running immediately;
	// mid-collection adjustments just update the figure.
	rerun := sess.State == models.StateReadyToRun
	return true, replies, rerun
}
