// Package behavior detects conversation behaviors from a single
// AI-response/user-message exchange. Detection is pure keyword matching:
// same inputs always yield the same behaviors, and the absence of any
// signal yields an empty slice, never an error.
package behavior

import "strings"

// Sources identify which side of the exchange a behavior fired on.
const (
	SourceAIResponse  = "ai_response"
	SourceUserMessage = "user_message"
)

// Behavior tags. EventType maps each tag onto the event vocabulary the
// scoring engine understands.
const (
	TagPhoneRequested      = "phone_requested"
	TagAppointmentOffered  = "appointment_offered"
	TagEmailRequested      = "email_requested"
	TagUrgencyExpressed    = "urgency_expressed"
	TagUrgencyAcknowledged = "urgency_acknowledged"
	TagBudgetMentioned     = "budget_mentioned"
)

// Behavior is a single detected conversation signal.
type Behavior struct {
	Tag       string
	EventType string
	Source    string
	Matched   string
}

type pattern struct {
	tag       string
	eventType string
	source    string
	phrases   []string
}

// Patterns that fire on the AI response side detect what the assistant asked
// for or offered. Patterns on the user side detect expressed intent.
var patterns = []pattern{
	{
		tag:       TagPhoneRequested,
		eventType: "phone_request",
		source:    SourceAIResponse,
		phrases:   []string{"phone number", "your number", "call you", "reach you by phone", "best number"},
	},
	{
		tag:       TagEmailRequested,
		eventType: "message",
		source:    SourceAIResponse,
		phrases:   []string{"email address", "your email", "reach you by email"},
	},
	{
		tag:       TagAppointmentOffered,
		eventType: "appointment_scheduled",
		source:    SourceAIResponse,
		phrases:   []string{"schedule a", "book a time", "set up an appointment", "appointment", "calendar link"},
	},
	{
		tag:       TagUrgencyAcknowledged,
		eventType: "message",
		source:    SourceAIResponse,
		phrases:   []string{"right away", "as soon as possible", "understand the urgency", "prioritize"},
	},
	{
		tag:       TagUrgencyExpressed,
		eventType: "hot_lead",
		source:    SourceUserMessage,
		phrases:   []string{"asap", "urgent", "urgently", "right away", "immediately", "today", "emergency"},
	},
	{
		tag:       TagBudgetMentioned,
		eventType: "hot_lead",
		source:    SourceUserMessage,
		phrases:   []string{"budget", "my budget is", "willing to pay", "price range", "$"},
	},
}

// Analyze detects behaviors in a single exchange. Matching is applied
// independently per pattern, so one exchange can surface several behaviors
// at once; no tag excludes another.
func Analyze(aiResponse, userMessage string) []Behavior {
	loweredAI := strings.ToLower(aiResponse)
	loweredUser := strings.ToLower(userMessage)

	behaviors := make([]Behavior, 0)
	for _, p := range patterns {
		haystack := loweredAI
		if p.source == SourceUserMessage {
			haystack = loweredUser
		}
		if haystack == "" {
			continue
		}
		if matched, ok := firstMatch(haystack, p.phrases); ok {
			behaviors = append(behaviors, Behavior{
				Tag:       p.tag,
				EventType: p.eventType,
				Source:    p.source,
				Matched:   matched,
			})
		}
	}
	return behaviors
}

func firstMatch(haystack string, phrases []string) (string, bool) {
	for _, phrase := range phrases {
		if strings.Contains(haystack, phrase) {
			return phrase, true
		}
	}
	return "", false
}
