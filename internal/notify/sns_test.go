// internal/notify/sns_test.go
package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-concierge/internal/common/config"
	stderrors "loan-concierge/internal/common/errors"
	"loan-concierge/internal/common/logger"
)

type fakePublisher struct {
	phones   []string
	messages []string
	senders  []string
	err      error
}

func (p *fakePublisher) SendSMS(_ context.Context, phoneE164, message, senderID string) error {
	if p.err != nil {
		return p.err
	}
	p.phones = append(p.phones, phoneE164)
	p.messages = append(p.messages, message)
	p.senders = append(p.senders, senderID)
	return nil
}

func testSMSConfig() config.SMSConfig {
	return config.SMSConfig{Enabled: true, SenderID: "LNCNCG", CountryCode: "+91"}
}

func TestSendApprovalPrefixesCountryCode(t *testing.T) {
	pub := &fakePublisher{}
	n := NewSMSNotifier(pub, testSMSConfig(), logger.NewTestLogger(t))

	err := n.SendApproval(context.Background(), "9876543210", "approved!")
	require.NoError(t, err)
	require.Len(t, pub.phones, 1)
	assert.Equal(t, "+919876543210", pub.phones[0])
	assert.Equal(t, "approved!", pub.messages[0])
	assert.Equal(t, "LNCNCG", pub.senders[0])
}

func TestSendApprovalKeepsE164Input(t *testing.T) {
	pub := &fakePublisher{}
	n := NewSMSNotifier(pub, testSMSConfig(), logger.NewTestLogger(t))

	require.NoError(t, n.SendApproval(context.Background(), "+449876543210", "approved!"))
	assert.Equal(t, "+449876543210", pub.phones[0])
}

func TestSendApprovalWrapsPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("throttled")}
	n := NewSMSNotifier(pub, testSMSConfig(), logger.NewTestLogger(t))

	err := n.SendApproval(context.Background(), "9876543210", "approved!")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeNotificationFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestApprovalMessage(t *testing.T) {
	msg := ApprovalMessage("Rohan Mehta", "₹400,000", "₹13,286")
	assert.Contains(t, msg, "Rohan Mehta")
	assert.Contains(t, msg, "₹400,000")
	assert.Contains(t, msg, "₹13,286")
}
