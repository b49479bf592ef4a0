// Package hotlead implements the per-message urgency classifier.
//
// A single inbound message (plus a short rolling history) is scored 0-10 to
// decide real-time alerting. The keyword tiers below are prompting context
// for the reasoning model, not a closed-form formula; the aggregate lead
// temperature lives in the scoring package and must not be conflated with
// this classifier.
package hotlead

import "strings"

// A message scoring at or above this cutoff is flagged hot.
const hotScoreCutoff = 7

// Urgency levels reported by the classifier.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

var highIntentKeywords = []string{
	"asap",
	"urgent",
	"urgently",
	"immediately",
	"right away",
	"today",
	"emergency",
	"call me",
	"budget",
	"ready to buy",
	"ready to start",
	"how much",
	"$",
}

var mediumIntentKeywords = []string{
	"interested",
	"pricing",
	"quote",
	"estimate",
	"schedule",
	"appointment",
	"available",
	"when can",
	"this week",
}

var lowIntentKeywords = []string{
	"just looking",
	"just curious",
	"maybe",
	"someday",
	"in the future",
	"thinking about",
	"browsing",
}

// KeywordMatches holds the tiered keyword hits for one message.
type KeywordMatches struct {
	High   []string
	Medium []string
	Low    []string
}

// All returns every matched keyword, strongest tier first.
func (m KeywordMatches) All() []string {
	all := make([]string, 0, len(m.High)+len(m.Medium)+len(m.Low))
	all = append(all, m.High...)
	all = append(all, m.Medium...)
	all = append(all, m.Low...)
	return all
}

// SuggestedUrgency maps the matched tiers onto an urgency level.
func (m KeywordMatches) SuggestedUrgency() string {
	switch {
	case len(m.High) > 0:
		return UrgencyHigh
	case len(m.Medium) > 0:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// MatchKeywords runs the tiered substring match over a message.
// Matching is deterministic and case-insensitive.
func MatchKeywords(message string) KeywordMatches {
	lowered := strings.ToLower(message)
	return KeywordMatches{
		High:   matchTier(lowered, highIntentKeywords),
		Medium: matchTier(lowered, mediumIntentKeywords),
		Low:    matchTier(lowered, lowIntentKeywords),
	}
}

func matchTier(lowered string, keywords []string) []string {
	matched := make([]string, 0)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
