// internal/models/session.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversationState names a stop in the collection pipeline.
type ConversationState string

const (
	StateCollectPhone    ConversationState = "COLLECT_PHONE"
	StateCollectLoan     ConversationState = "COLLECT_LOAN"
	StateCollectTenure   ConversationState = "COLLECT_TENURE"
	StateAskSalaryOption ConversationState = "ASK_SALARY_OPTION"
	StateCollectSalary   ConversationState = "COLLECT_SALARY"
	StateReadyToRun      ConversationState = "READY_TO_RUN"
	StateDone            ConversationState = "DONE"
)

// PipelineStatus is the result class of one orchestration run.
type PipelineStatus string

const (
	StatusKYCFailed     PipelineStatus = "KYC_FAILED"
	StatusRequireSalary PipelineStatus = "REQUIRE_SALARY"
	StatusReject        PipelineStatus = "REJECT"
	StatusApproved      PipelineStatus = "APPROVED"
)

// PipelineOutcome is the payload returned by the orchestration pipeline and
// retained on the session for the post-decision surface (artifact download,
// rejection banner).
type PipelineOutcome struct {
	Status       PipelineStatus  `json:"status"`
	Reason       string          `json:"reason,omitempty"`
	EMI          decimal.Decimal `json:"emi"`
	ArtifactPath string          `json:"artifact_path,omitempty"`
}

// Session is the per-conversation state: the current collection state, the
// single in-flight application, and the phone prompt rotation counter.
// Sessions are isolated per conversation identifier and never share state.
type Session struct {
	ID              string             `json:"id"`
	State           ConversationState  `json:"state"`
	Context         *ApplicationContext `json:"context"`
	PhoneRetryCount int                `json:"phone_retry_count"`
	LatestOutcome   *PipelineOutcome   `json:"latest_outcome,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewSession starts a session at phone collection with an empty application
// carrying the configured base rate.
func NewSession(id string, defaultRatePct decimal.Decimal) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		State:     StateCollectPhone,
		Context:   NewApplicationContext(defaultRatePct),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset discards the application entirely and returns to initial collection,
// keeping only the session identity.
func (s *Session) Reset(defaultRatePct decimal.Decimal) {
	s.State = StateCollectPhone
	s.Context = NewApplicationContext(defaultRatePct)
	s.PhoneRetryCount = 0
	s.LatestOutcome = nil
	s.UpdatedAt = time.Now().UTC()
}

// Decided reports whether the session reached a terminal decision.
func (s *Session) Decided() bool {
	return s.State == StateDone
}
