// Package errors provides standardized error handling for the loan
// origination flow. Every failure here is recoverable: it resolves to a
// user-facing message and a well-defined conversation state, never a crash.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCustomerNotFound      ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeVerificationFailed    ErrorCode = "VERIFICATION_FAILED"
	ErrCodeMissingRequiredFields ErrorCode = "MISSING_REQUIRED_FIELDS"
	ErrCodeDataStoreUnavailable  ErrorCode = "DATA_STORE_UNAVAILABLE"
	ErrCodeCustomerDataInvalid   ErrorCode = "CUSTOMER_DATA_INVALID"
	ErrCodeSanctionRenderFailed  ErrorCode = "SANCTION_RENDER_FAILED"
	ErrCodeNotificationFailed    ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeSessionStoreFailed    ErrorCode = "SESSION_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewCustomerNotFoundError marks a phone lookup that matched no record.
// Not retryable: the user has to supply a different number.
func NewCustomerNotFoundError(phone string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCustomerNotFound,
		Message:   "No customer record matches the given phone number",
		Details:   fmt.Sprintf("phone: %s", phone),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldsError lists the inputs still needed before the
// pipeline can run.
func NewMissingRequiredFieldsError(fields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredFields,
		Message:   "Application is missing required fields",
		Details:   strings.Join(fields, ", "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]interface{}{"fields": fields},
	}
}

// NewDataStoreUnavailableError wraps an infrastructure failure while
// reaching the customer record store.
func NewDataStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataStoreUnavailable,
		Message:   "Customer record store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCustomerDataInvalidError marks a customer record set that failed
// schema validation at load time.
func NewCustomerDataInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCustomerDataInvalid,
		Message:   "Customer record set failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSanctionRenderFailedError wraps a failure while writing the sanction
// artifact.
func NewSanctionRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSanctionRenderFailed,
		Message:   "Failed to render sanction letter",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationFailedError wraps an SMS publish failure. The approval
// itself stands; only the courtesy notification was lost.
func NewNotificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Approval notification could not be sent",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError wraps a session persistence failure.
func NewSessionStoreFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
