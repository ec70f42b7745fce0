// internal/intent/classifier.go

// Package intent classifies free-text utterances into the handful of
// signals the conversation reacts to. The keyword implementation is
// deliberately simple and fully deterministic; the Classifier interface
// keeps it swappable for a real NLU component without touching the state
// machine.
package intent

import (
	"regexp"
	"strings"
)

// Classifier answers the intent questions the state machine and the
// negotiation resolver ask about an utterance.
type Classifier interface {
	IsGreeting(text string) bool
	IsAffirmative(text string) bool
	IsNegative(text string) bool
	WantsLowerRate(text string) bool
	WantsAmountAdjustment(text string) bool
}

// restartTokens are recognized as whole-message intents in every state.
var restartTokens = map[string]bool{
	"restart":    true,
	"reset":      true,
	"start over": true,
	"new":        true,
}

// IsRestart reports whether the whole message is a reserved control token.
func IsRestart(text string) bool {
	return restartTokens[strings.ToLower(strings.TrimSpace(text))]
}

var (
	greetingWords    = wordSet("hi", "hello", "hey", "heya", "hiya", "greetings")
	affirmativeWords = wordSet("yes", "y", "sure", "okay", "ok", "yeah", "yup", "proceed", "go", "affirmative")
	negativeWords    = wordSet("no", "n", "not", "later", "skip", "nah")

	rateTerms  = []string{"rate", "interest", "roi", "percentage"}
	lowerTerms = []string{"lower", "less", "reduce", "drop", "discount", "better"}

	amountTerms = []string{"loan", "amount", "principal", "ticket", "disburse", "sanction", "lakh", "lac", "crore", "limit"}
	adjustTerms = []string{"less", "lower", "reduce", "drop", "smaller", "instead", "maybe", "around", "about", "approve", "can you", "could you", "let's", "do"}
)

// Keywords is the token-set classifier distilled from the original chat
// heuristics.
type Keywords struct{}

func NewKeywords() Keywords { return Keywords{} }

var nonAlphaPattern = regexp.MustCompile(`[^a-z\s]`)

// words lowercases the text, strips punctuation, and returns the word set.
func words(text string) map[string]bool {
	cleaned := nonAlphaPattern.ReplaceAllString(strings.ToLower(text), " ")
	set := make(map[string]bool)
	for _, w := range strings.Fields(cleaned) {
		set[w] = true
	}
	return set
}

func wordSet(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func intersects(a, b map[string]bool) bool {
	for w := range a {
		if b[w] {
			return true
		}
	}
	return false
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func (Keywords) IsGreeting(text string) bool {
	return intersects(words(text), greetingWords)
}

func (Keywords) IsAffirmative(text string) bool {
	return intersects(words(text), affirmativeWords)
}

func (Keywords) IsNegative(text string) bool {
	return intersects(words(text), negativeWords)
}

// WantsLowerRate fires on a rate/interest term paired with a lowering term.
func (Keywords) WantsLowerRate(text string) bool {
	lowered := strings.ToLower(text)
	return containsAny(lowered, rateTerms) && containsAny(lowered, lowerTerms)
}

// WantsAmountAdjustment fires when a numeric figure rides along with amount
// vocabulary plus an adjustment term. The word "instead" alone is enough of
// an amount signal.
func (Keywords) WantsAmountAdjustment(text string) bool {
	if _, ok := ExtractNumber(text); !ok {
		return false
	}
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "instead") {
		return true
	}
	return containsAny(lowered, amountTerms) && containsAny(lowered, adjustTerms)
}
