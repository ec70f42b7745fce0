// internal/notify/sns.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"loan-concierge/internal/common/aws"
	"loan-concierge/internal/common/config"
	"loan-concierge/internal/common/errors"
	"loan-concierge/internal/common/logger"
)

// SMSPublisher is the slice of the SNS client the notifier needs.
type SMSPublisher interface {
	SendSMS(ctx context.Context, phoneE164, message, senderID string) error
}

var _ SMSPublisher = (*aws.SNSClient)(nil)

// SMSNotifier sends the approval SMS to the verified customer phone. It is
// wired into the pipeline only when notifications are enabled in config.
type SMSNotifier struct {
	publisher   SMSPublisher
	senderID    string
	countryCode string
	logger      logger.Logger
}

func NewSMSNotifier(publisher SMSPublisher, cfg config.SMSConfig, log logger.Logger) *SMSNotifier {
	return &SMSNotifier{
		publisher:   publisher,
		senderID:    cfg.SenderID,
		countryCode: cfg.CountryCode,
		logger:      log,
	}
}

// SendApproval delivers the approval message over SMS. The stored phone is a
// bare 10-digit number, so the configured country code is prefixed here.
func (n *SMSNotifier) SendApproval(ctx context.Context, phone, message string) error {
	e164 := phone
	if !strings.HasPrefix(phone, "+") {
		e164 = n.countryCode + phone
	}

	if err := n.publisher.SendSMS(ctx, e164, message, n.senderID); err != nil {
		return errors.NewNotificationFailedError(err)
	}

	n.logger.Info("approval sms sent", map[string]interface{}{
		"phone": phone,
	})
	return nil
}

// ApprovalMessage formats the SMS body for an approved application.
func ApprovalMessage(customerName, amount, emi string) string {
	return fmt.Sprintf("Hi %s, your loan of %s is approved. Your monthly EMI is %s. Your sanction letter is on its way.", customerName, amount, emi)
}
