// Package transport defines request and response DTOs for the interactions API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// EventMetadata carries the semi-structured payload attached to an interaction
// event. All fields are optional; scoring treats absent contact fields as
// contributing nothing to contact completeness.
type EventMetadata struct {
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Name     string  `json:"name,omitempty"`
	Company  string  `json:"company,omitempty"`
	Location string  `json:"location,omitempty"`
	Message  string  `json:"message,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// RecordEventRequest is the payload for recording a single interaction event.
type RecordEventRequest struct {
	EventType string        `json:"eventType" binding:"required" validate:"required,max=64"`
	Channel   string        `json:"channel" validate:"omitempty,oneof=email sms facebook instagram chat voice"`
	Metadata  EventMetadata `json:"metadata"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
}

// EventResponse is the stored representation of an interaction event.
type EventResponse struct {
	ID        uuid.UUID     `json:"id"`
	EventType string        `json:"eventType"`
	Channel   string        `json:"channel"`
	Metadata  EventMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"createdAt"`
}

// EventsResponse wraps a list of events.
type EventsResponse struct {
	Items []EventResponse `json:"items"`
}

// AnalyzeBehaviorsRequest is the payload for conversation behavior analysis.
type AnalyzeBehaviorsRequest struct {
	AIResponse  string        `json:"aiResponse"`
	UserMessage string        `json:"userMessage"`
	Channel     string        `json:"channel" validate:"omitempty,oneof=email sms facebook instagram chat voice"`
	Metadata    EventMetadata `json:"metadata"`
	// Persist controls whether detected behaviors are recorded as events.
	Persist bool `json:"persist"`
}

// BehaviorResponse describes a single detected behavior.
type BehaviorResponse struct {
	Tag       string `json:"tag"`
	EventType string `json:"eventType"`
	Source    string `json:"source"`
	Matched   string `json:"matched"`
}

// AnalyzeBehaviorsResponse wraps the detected behaviors.
type AnalyzeBehaviorsResponse struct {
	Behaviors []BehaviorResponse `json:"behaviors"`
	Recorded  int                `json:"recorded"`
}
