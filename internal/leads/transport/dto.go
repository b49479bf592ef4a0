// Package transport defines request and response DTOs for the leads API.
package transport

import (
	"time"

	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// ListLeadsQuery carries the filter and sort options for listing leads.
type ListLeadsQuery struct {
	Channel     string `form:"channel" validate:"omitempty,oneof=email sms facebook instagram chat voice"`
	Temperature string `form:"temperature" validate:"omitempty,oneof=hot warm cold"`
	Search      string `form:"search" validate:"omitempty,max=200"`
	SortBy      string `form:"sortBy" validate:"omitempty,oneof=score recent"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=200"`
}

// LeadSummary is one scored lead in a listing.
type LeadSummary struct {
	LeadID      string             `json:"leadId"`
	Name        string             `json:"name,omitempty"`
	Email       string             `json:"email,omitempty"`
	Phone       string             `json:"phone,omitempty"`
	Company     string             `json:"company,omitempty"`
	Location    string             `json:"location,omitempty"`
	Score       int                `json:"score"`
	Temperature domain.Temperature `json:"temperature"`
	Breakdown   scoring.Breakdown  `json:"breakdown"`
	EventCount  int                `json:"eventCount"`
	Channels    []string           `json:"channels"`
	LastEventAt time.Time          `json:"lastEventAt"`
	TotalValue  float64            `json:"totalValue,omitempty"`
}

// ListLeadsResponse is the leads listing page.
type ListLeadsResponse struct {
	Items    []LeadSummary `json:"items"`
	Total    int           `json:"total"`
	HotCount int           `json:"hotCount"`
}

// EventView is an interaction event as shown in lead details.
type EventView struct {
	ID        uuid.UUID `json:"id"`
	EventType string    `json:"eventType"`
	Channel   string    `json:"channel"`
	Message   string    `json:"message,omitempty"`
	Value     float64   `json:"value,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeadDetailsResponse is the single-lead expansion.
type LeadDetailsResponse struct {
	LeadSummary
	Tags         []string      `json:"tags"`
	RecentEvents []EventView   `json:"recentEvents"`
	Events       []EventView   `json:"events"`
	Note         *NoteResponse `json:"note"`
}

// SaveNoteRequest is the payload for upserting a lead note.
type SaveNoteRequest struct {
	Notes string `json:"notes" binding:"required" validate:"required,max=5000"`
}

// NoteResponse is a stored lead note.
type NoteResponse struct {
	LeadID    string    `json:"leadId"`
	Notes     string    `json:"notes"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClassifyMessageRequest is the payload for per-message classification.
type ClassifyMessageRequest struct {
	Message string   `json:"message" binding:"required" validate:"required,max=4000"`
	History []string `json:"history" validate:"omitempty,max=20,dive,max=4000"`
	// Optional identifying fields linking the message to a lead.
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
	Name  string `json:"name" validate:"omitempty,max=200"`
}

// ClassificationResponse is the per-message classification result.
type ClassificationResponse struct {
	Score      int      `json:"score"`
	IsHotLead  bool     `json:"isHotLead"`
	Reasoning  string   `json:"reasoning"`
	Keywords   []string `json:"keywords"`
	Urgency    string   `json:"urgency"`
	NextAction string   `json:"nextAction"`
	Fallback   bool     `json:"fallback"`
}
