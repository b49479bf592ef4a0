// Package scoring implements the aggregate lead temperature score.
//
// The score is a pure function of a contact's event set and the evaluation
// instant: four independently capped components are summed and clamped to
// 100. Repeated evaluation with an unchanged event set and a fixed instant
// always agrees, but the score decays as time advances because the recency
// component references "now".
//
// This is distinct from the per-message urgency classifier in the hotlead
// package, which scores a single message 0-10 for real-time alerting.
package scoring

import (
	"time"

	"bizzybot_backend/internal/leads/domain"
)

// Temperature thresholds over the 0-100 score.
const (
	hotThreshold  = 70
	warmThreshold = 40
)

// Breakdown exposes the four component sub-scores.
type Breakdown struct {
	Engagement int `json:"engagement"`
	Recency    int `json:"recency"`
	Contact    int `json:"contact"`
	Frequency  int `json:"frequency"`
}

// Result is the computed aggregate score for one contact.
type Result struct {
	Score       int                `json:"score"`
	Temperature domain.Temperature `json:"temperature"`
	Breakdown   Breakdown          `json:"breakdown"`
}

// Compute scores a contact's full event history at the given instant.
// Scoring is only meaningful over non-empty event sets; an empty set
// yields a zero, cold result.
func Compute(events []domain.Event, now time.Time) Result {
	if len(events) == 0 {
		return Result{Temperature: domain.TemperatureCold}
	}

	breakdown := Breakdown{
		Engagement: engagementComponent(events),
		Recency:    recencyComponent(events, now),
		Contact:    contactComponent(events),
		Frequency:  frequencyComponent(events),
	}

	score := breakdown.Engagement + breakdown.Recency + breakdown.Contact + breakdown.Frequency
	if score > 100 {
		score = 100
	}

	return Result{
		Score:       score,
		Temperature: TemperatureFor(score),
		Breakdown:   breakdown,
	}
}

// TemperatureFor maps a score onto the three-level classification.
// Temperature is a step function of the score and nothing else.
func TemperatureFor(score int) domain.Temperature {
	switch {
	case score >= hotThreshold:
		return domain.TemperatureHot
	case score >= warmThreshold:
		return domain.TemperatureWarm
	default:
		return domain.TemperatureCold
	}
}

// engagementComponent (max 40) combines the strongest intent signal seen
// (max 20) with total event volume (max 20).
func engagementComponent(events []domain.Event) int {
	var hasHotLead, hasAppointment, hasPhoneRequest bool
	for _, event := range events {
		switch event.EventType {
		case "hot_lead":
			hasHotLead = true
		case "appointment_scheduled":
			hasAppointment = true
		case "phone_request":
			hasPhoneRequest = true
		}
	}

	intent := 5
	switch {
	case hasHotLead:
		intent = 20
	case hasAppointment:
		intent = 15
	case hasPhoneRequest:
		intent = 10
	}

	volume := 5
	switch n := len(events); {
	case n > 10:
		volume = 20
	case n > 5:
		volume = 15
	case n > 2:
		volume = 10
	}

	return intent + volume
}

// recencyComponent (max 20) is strictly banded on the age of the most
// recent event, not continuous decay.
func recencyComponent(events []domain.Event, now time.Time) int {
	var latest time.Time
	for _, event := range events {
		if event.CreatedAt.After(latest) {
			latest = event.CreatedAt
		}
	}

	age := now.Sub(latest)
	switch {
	case age <= 24*time.Hour:
		return 20
	case age <= 3*24*time.Hour:
		return 15
	case age <= 7*24*time.Hour:
		return 10
	case age <= 14*24*time.Hour:
		return 5
	default:
		return 0
	}
}

// contactComponent (max 20) awards 10 points each for an email and a phone
// ever captured, independently and additively.
func contactComponent(events []domain.Event) int {
	var hasEmail, hasPhone bool
	for _, event := range events {
		if event.Email != "" {
			hasEmail = true
		}
		if event.Phone != "" {
			hasPhone = true
		}
	}

	score := 0
	if hasEmail {
		score += 10
	}
	if hasPhone {
		score += 10
	}
	return score
}

// frequencyComponent (max 20) is banded on the count of distinct calendar
// days (UTC) with at least one event.
func frequencyComponent(events []domain.Event) int {
	days := make(map[string]struct{}, len(events))
	for _, event := range events {
		days[event.CreatedAt.UTC().Format("2006-01-02")] = struct{}{}
	}

	switch n := len(days); {
	case n >= 5:
		return 20
	case n >= 3:
		return 15
	case n >= 2:
		return 10
	default:
		return 5
	}
}
