// internal/conversation/engine.go
package conversation

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-concierge/internal/common/config"
	"loan-concierge/internal/common/logger"
	"loan-concierge/internal/common/metrics"
	"loan-concierge/internal/common/observability"
	"loan-concierge/internal/crm"
	"loan-concierge/internal/intent"
	"loan-concierge/internal/models"
	"loan-concierge/internal/negotiation"
	"loan-concierge/internal/pipeline"
)

// Engine drives the turn-by-turn conversation. Each HandleTurn call mutates
// the session in place and returns the replies to surface, in order. The
// engine itself is stateless; all conversational state lives on the session.
type Engine struct {
	policy     config.PolicyConfig
	store      crm.Store
	runner     *pipeline.Runner
	resolver   *negotiation.Resolver
	classifier intent.Classifier
	obs        *observability.Observability
	logger     logger.Logger
}

func NewEngine(
	policy config.PolicyConfig,
	store crm.Store,
	runner *pipeline.Runner,
	resolver *negotiation.Resolver,
	classifier intent.Classifier,
	obs *observability.Observability,
	log logger.Logger,
) *Engine {
	return &Engine{
		policy:     policy,
		store:      store,
		runner:     runner,
		resolver:   resolver,
		classifier: classifier,
		obs:        obs,
		logger:     log,
	}
}

// Greeting is the opening message shown before the user has said anything.
func (e *Engine) Greeting() models.Reply {
	return models.Master("Hi there! I'm your personal loan concierge. I'll keep things friendly and loop in my specialist teammates whenever we need them. To pull up your profile, could you share the mobile number you use with us?")
}

// HandleTurn processes one user utterance against the session. Restart
// requests and negotiation intents are checked before the state dispatch so
// they work from any state.
func (e *Engine) HandleTurn(ctx context.Context, sess *models.Session, utterance string) []models.Reply {
	start := time.Now()
	metrics.TurnsProcessed.WithLabelValues(string(sess.State)).Inc()
	if e.obs != nil {
		e.obs.RecordTurn(ctx, string(sess.State))
	}
	defer func() {
		metrics.TurnDuration.Observe(time.Since(start).Seconds())
		sess.UpdatedAt = time.Now().UTC()
	}()

	if intent.IsRestart(utterance) {
		sess.Reset(e.policy.DefaultRate())
		return []models.Reply{
			models.Master("Fresh start it is! I've cleared the previous application."),
			e.Greeting(),
		}
	}

	if handled, replies, rerun := e.resolver.Resolve(sess, utterance); handled {
		if rerun {
			replies = append(replies, models.Master("Let me refresh the checks with this revised amount."))
			replies = append(replies, e.runPipeline(ctx, sess)...)
		}
		return replies
	}

	switch sess.State {
	case models.StateCollectPhone:
		return e.handleCollectPhone(ctx, sess, utterance)
	case models.StateCollectLoan:
		return e.handleCollectLoan(sess, utterance)
	case models.StateCollectTenure:
		return e.handleCollectTenure(ctx, sess, utterance)
	case models.StateAskSalaryOption:
		return e.handleAskSalaryOption(ctx, sess, utterance)
	case models.StateCollectSalary:
		return e.handleCollectSalary(ctx, sess, utterance)
	case models.StateReadyToRun:
		return e.runPipeline(ctx, sess)
	case models.StateDone:
		return []models.Reply{models.Master("This application is wrapped up. Type `restart` whenever you'd like to run a fresh one.")}
	default:
		e.logger.Warn("unknown conversation state", map[string]interface{}{
			"state": string(sess.State),
		})
		return []models.Reply{models.Master("I'm not sure how to use that just yet. Let's keep going with the application.")}
	}
}

func (e *Engine) handleCollectPhone(ctx context.Context, sess *models.Session, utterance string) []models.Reply {
	digits := intent.ExtractDigits(utterance)
	if digits == "" {
		if e.classifier.IsGreeting(utterance) {
			sess.PhoneRetryCount = 0
			return []models.Reply{models.Master("Hey, it's great to hear from you! Whenever you're ready, drop in the 10-digit number you use with us.")}
		}
		if e.classifier.IsNegative(utterance) {
			return []models.Reply{models.Master("No problem at all. We can pause here; when you're ready to continue, just share the mobile number you bank with.")}
		}
		return []models.Reply{models.Master(nextPhonePrompt(sess))}
	}
	if len(digits) < 10 {
		return []models.Reply{
			models.Master("Looks like a few digits might be missing there."),
			models.Master(nextPhonePrompt(sess)),
		}
	}

	phone := digits[len(digits)-10:]
	app := sess.Context
	app.CustomerPhone = phone
	sess.PhoneRetryCount = 0

	replies := []models.Reply{
		models.Master(fmt.Sprintf("Perfect, thanks! Give me a second while I get %s verified.", phone)),
	}

	profile, err := e.store.LookupByPhone(ctx, phone)
	if err != nil {
		app.ClearVerification()
		if stderrors.Is(err, crm.ErrNotFound) {
			return append(replies, models.Reply{
				Speaker: models.SpeakerVerification,
				Text:    "I couldn't find a customer with that number. Could you double-check and share it again?",
			})
		}
		e.logger.Error("customer lookup failed", map[string]interface{}{
			"phone": phone,
			"error": err.Error(),
		})
		return append(replies, models.Master("I'm having trouble reaching our records right now. Mind sharing that number once more in a moment?"))
	}

	app.CustomerName = profile.Name
	app.CustomerProfile = profile

	address := strings.TrimSpace(profile.Address)
	if address == "" {
		address = "the address we have on file"
	}
	replies = append(replies, models.Reply{
		Speaker: models.SpeakerVerification,
		Text:    fmt.Sprintf("All set! I've confirmed %s's details at %s.", profile.Name, address),
	})

	var ask strings.Builder
	ask.WriteString("Wonderful! ")
	if profile.City != "" {
		fmt.Fprintf(&ask, "Always lovely to connect with our %s family. ", profile.City)
	}
	if profile.PreApprovedLimit > 0 {
		fmt.Fprintf(&ask, "You're pre-approved for up to %s. What loan amount are you hoping to secure?",
			models.FormatINR(decimal.NewFromInt(int64(profile.PreApprovedLimit))))
	} else {
		ask.WriteString("What loan amount are you hoping to secure today?")
	}

	sess.State = models.StateCollectLoan
	return append(replies, models.Master(ask.String()))
}

func (e *Engine) handleCollectLoan(sess *models.Session, utterance string) []models.Reply {
	amount, ok := intent.ExtractNumber(utterance)
	if !ok || !amount.IsPositive() {
		return []models.Reply{models.Master("Could you share the desired loan amount as a number? Something like 400000 works great.")}
	}
	minLoan := e.policy.MinLoan()
	if amount.LessThan(minLoan) {
		return []models.Reply{models.Master(fmt.Sprintf("The smallest loan we can set up is %s. Could you confirm an amount at or above that?", models.FormatINR(minLoan)))}
	}

	app := sess.Context
	app.LoanAmount = amount

	var replies []models.Reply
	if p := app.CustomerProfile; p != nil && p.PreApprovedLimit > 0 {
		limit := decimal.NewFromInt(int64(p.PreApprovedLimit))
		if amount.GreaterThan(limit) {
			replies = append(replies, models.Master(fmt.Sprintf("Noted. That's a touch above your pre-approved %s, but let's see what underwriting can stretch to.", models.FormatINR(limit))))
		}
	}
	replies = append(replies, models.Master("Perfect. Over how many months would you like to repay the loan?"))

	sess.State = models.StateCollectTenure
	return replies
}

func (e *Engine) handleCollectTenure(ctx context.Context, sess *models.Session, utterance string) []models.Reply {
	months, ok := intent.ParseTenureMonths(utterance)
	if !ok {
		return []models.Reply{models.Master("Could you share the tenure as a number of months, or in years? For example, 36 months or 3 years.")}
	}
	if months < e.policy.MinTenureMonths || months > e.policy.MaxTenureMonths {
		return []models.Reply{models.Master(fmt.Sprintf("We can spread repayments anywhere between %d and %d months. What tenure works for you within that range?", e.policy.MinTenureMonths, e.policy.MaxTenureMonths))}
	}

	sess.Context.TenureMonths = months
	sess.State = models.StateAskSalaryOption
	return []models.Reply{models.Master("Great choice. If it's okay with you, could we note your monthly salary now? It often speeds up approval, and you can always say no; I'll only ask again if underwriting insists.")}
}

func (e *Engine) handleAskSalaryOption(ctx context.Context, sess *models.Session, utterance string) []models.Reply {
	switch {
	case e.classifier.IsAffirmative(utterance):
		sess.State = models.StateCollectSalary
		return []models.Reply{models.Master("Appreciate it! What's your approximate monthly salary in rupees?")}
	case e.classifier.IsNegative(utterance):
		sess.State = models.StateReadyToRun
		replies := []models.Reply{models.Master("Totally fine. I'll take this forward as is and loop back only if the underwriting team insists on it.")}
		return append(replies, e.runPipeline(ctx, sess)...)
	default:
		return []models.Reply{models.Master("I caught neither a yes nor a no there. Would you like to share your monthly salary now?")}
	}
}

func (e *Engine) handleCollectSalary(ctx context.Context, sess *models.Session, utterance string) []models.Reply {
	salary, ok := intent.ExtractNumber(utterance)
	if !ok || !salary.IsPositive() {
		return []models.Reply{models.Master("Please share the salary as a plain number, like 60000.")}
	}

	sess.Context.MonthlySalary = salary
	sess.State = models.StateReadyToRun
	replies := []models.Reply{models.Master("Thanks! I'll highlight that figure while I liaise with underwriting.")}
	return append(replies, e.runPipeline(ctx, sess)...)
}

// runPipeline hands the collected application to the orchestration pipeline
// and translates the outcome into conversational replies plus the follow-up
// state. It is callable from READY_TO_RUN dispatch, the salary paths, and a
// post-negotiation rerun.
func (e *Engine) runPipeline(ctx context.Context, sess *models.Session) []models.Reply {
	app := sess.Context
	if missing := app.MissingFields(); len(missing) > 0 {
		return []models.Reply{models.Master("I still need a couple of details before I brief the team: " + strings.Join(missing, ", ") + ".")}
	}

	displayName := "there"
	if app.CustomerProfile != nil && app.CustomerProfile.Name != "" {
		displayName = app.CustomerProfile.Name
	}
	replies := []models.Reply{
		models.Master(fmt.Sprintf("Thanks, %s! I'm taking forward %s over %d months at around %s%% while I sync with underwriting and the docs team.",
			displayName, models.FormatINR(app.LoanAmount), app.TenureMonths, app.AnnualRatePct.StringFixed(2))),
	}

	outcome, err := e.runner.Run(ctx, app)
	if err != nil {
		e.logger.Error("pipeline run failed", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return append(replies, models.Master("I hit a snag while running the checks. Nothing's lost, give me a moment and we can try again."))
	}
	sess.LatestOutcome = outcome

	switch outcome.Status {
	case models.StatusKYCFailed:
		app.ClearVerification()
		sess.State = models.StateCollectPhone
		replies = append(replies, models.Reply{
			Speaker: models.SpeakerVerification,
			Text:    "I couldn't match that number to any of our customers. Mind double-checking the digits and sharing it again?",
		})

	case models.StatusRequireSalary:
		sess.State = models.StateCollectSalary
		text := "I'm nearly there, but I do need a monthly take-home figure before I can close this out."
		if outcome.EMI.IsPositive() {
			text += fmt.Sprintf(" The EMI is currently tracking around %s.", models.FormatINR(outcome.EMI))
		}
		replies = append(replies,
			models.Reply{Speaker: models.SpeakerUnderwriting, Text: text},
			models.Master("A quick salary number will help me champion this for you. What does your monthly income look like?"),
		)

	case models.StatusReject:
		sess.State = models.StateDone
		reason := outcome.Reason
		if reason == "" {
			reason = "policy rules prevent us from approving this request"
		}
		replies = append(replies,
			models.Reply{Speaker: models.SpeakerUnderwriting, Text: fmt.Sprintf("I'm sorry, we have to decline this one: %s.", reason)},
			models.Master("If you'd like, we can explore a different amount or tenure. Just type `restart` and we'll go again together."),
		)

	case models.StatusApproved:
		sess.State = models.StateDone
		replies = append(replies,
			models.Reply{Speaker: models.SpeakerUnderwriting, Text: fmt.Sprintf("All checks passed! Your estimated EMI comes to %s a month.", models.FormatINR(outcome.EMI))},
			models.Reply{Speaker: models.SpeakerSanction, Text: "I've drafted your sanction letter with the final terms. It's ready whenever you are!"},
			models.Master("Congratulations! If you'd like to run another application, just type `restart`."),
		)

	default:
		e.logger.Warn("unexpected pipeline status", map[string]interface{}{
			"status": string(outcome.Status),
		})
		replies = append(replies, models.Master("Something unexpected came back from the checks. Let's try once more in a moment."))
	}

	return replies
}
