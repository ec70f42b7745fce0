// internal/conversation/prompts.go
package conversation

import "loan-concierge/internal/models"

// phonePrompts are rotated on consecutive phone-collection failures so the
// concierge never repeats itself back to back. The cycling counter lives on
// the session, not in package state.
var phonePrompts = []string{
	"I'll need the mobile number linked to your account so I can pull up the right details.",
	"As soon as I have your registered 10-digit number, I can bring up your loan options.",
	"Whenever you're ready, pop in the mobile number you use with us and I'll take it from there.",
}

func nextPhonePrompt(sess *models.Session) string {
	prompt := phonePrompts[sess.PhoneRetryCount%len(phonePrompts)]
	sess.PhoneRetryCount++
	return prompt
}
