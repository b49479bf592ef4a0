// Package domain holds the core types for the leads bounded context.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Temperature classifies an aggregate lead score.
type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

// Event is the leads-side read model of a stored interaction event.
// Events are immutable facts; all lead state is derived from them.
type Event struct {
	ID        uuid.UUID `json:"id"`
	EventType string    `json:"eventType"`
	Channel   string    `json:"channel"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
	Location  string    `json:"location,omitempty"`
	Message   string    `json:"message,omitempty"`
	Value     float64   `json:"value,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contact is a derived aggregate: all events resolved to the same identity.
// It is never stored; it is recomputed (or served from cache) on demand.
type Contact struct {
	LeadID   string  `json:"leadId"`
	Name     string  `json:"name,omitempty"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Company  string  `json:"company,omitempty"`
	Location string  `json:"location,omitempty"`
	Events   []Event `json:"events"`
}

// LastEventAt returns the timestamp of the contact's most recent event.
func (c Contact) LastEventAt() time.Time {
	if len(c.Events) == 0 {
		return time.Time{}
	}
	return c.Events[len(c.Events)-1].CreatedAt
}

// Channels returns the distinct channels the contact has interacted on.
func (c Contact) Channels() []string {
	seen := make(map[string]struct{})
	channels := make([]string, 0, 2)
	for _, event := range c.Events {
		if event.Channel == "" {
			continue
		}
		if _, ok := seen[event.Channel]; ok {
			continue
		}
		seen[event.Channel] = struct{}{}
		channels = append(channels, event.Channel)
	}
	return channels
}

// TotalValue sums the monetary value captured across the contact's events.
func (c Contact) TotalValue() float64 {
	var total float64
	for _, event := range c.Events {
		total += event.Value
	}
	return total
}
