// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"bizzybot_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Interaction Domain Events
// =============================================================================

// InteractionRecorded is published when a new interaction event is stored.
type InteractionRecorded struct {
	BaseEvent
	InteractionID uuid.UUID `json:"interactionId"`
	CustomerID    uuid.UUID `json:"customerId"`
	Intent        string    `json:"intent"`
	UserName      string    `json:"userName,omitempty"`
	UserEmail     string    `json:"userEmail,omitempty"`
	UserPhone     string    `json:"userPhone,omitempty"`
	OccurredOn    time.Time `json:"occurredOn"`
}

func (e InteractionRecorded) EventName() string { return "interactions.recorded" }

// BehaviorDetected is published when the behavior analyzer matches a keyword
// pattern in a conversation exchange.
type BehaviorDetected struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	Intent     string    `json:"intent"`
	Matched    string    `json:"matched"`
	UserEmail  string    `json:"userEmail,omitempty"`
	UserPhone  string    `json:"userPhone,omitempty"`
}

func (e BehaviorDetected) EventName() string { return "interactions.behavior.detected" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// HotLeadDetected is published when the per-message classifier or the scoring
// engine marks a lead as hot. Downstream handlers dispatch alerts.
type HotLeadDetected struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	LeadID     string    `json:"leadId"`
	UserName   string    `json:"userName,omitempty"`
	UserEmail  string    `json:"userEmail,omitempty"`
	UserPhone  string    `json:"userPhone,omitempty"`
	Score      int       `json:"score"`
	Reasoning  string    `json:"reasoning,omitempty"`
	Source     string    `json:"source"` // "classifier" or "scoring"
}

func (e HotLeadDetected) EventName() string { return "leads.hot_lead.detected" }

// MessageClassified is published after every per-message classification,
// including fail-safe fallbacks.
type MessageClassified struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	Score      int       `json:"score"`
	IsHotLead  bool      `json:"isHotLead"`
	Fallback   bool      `json:"fallback"`
}

func (e MessageClassified) EventName() string { return "leads.message.classified" }

// LeadNoteSaved is published when an agent note is created or updated for a lead.
type LeadNoteSaved struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	LeadID     string    `json:"leadId"`
	UserID     uuid.UUID `json:"userId"`
}

func (e LeadNoteSaved) EventName() string { return "leads.note.saved" }

// ScoreRefreshRequested is published when lead scores for a customer should be
// recomputed, e.g. after a batch of interactions lands via webhook.
type ScoreRefreshRequested struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
}

func (e ScoreRefreshRequested) EventName() string { return "leads.score.refresh_requested" }

// =============================================================================
// Webhook Domain Events
// =============================================================================

// WebhookMessageReceived is published when a chat message arrives via the
// webhook ingest endpoint.
type WebhookMessageReceived struct {
	BaseEvent
	CustomerID   uuid.UUID `json:"customerId"`
	SourceDomain string    `json:"sourceDomain"`
	Channel      string    `json:"channel"`
}

func (e WebhookMessageReceived) EventName() string { return "webhook.message.received" }
