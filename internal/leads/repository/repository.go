// Package repository provides the read model and note storage for the leads
// bounded context. Lead state itself is derived from interaction events; the
// only rows owned here are agent notes.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bizzybot_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// LeadNote is the mutable note attached to a derived lead. Exactly one row
// exists per (customer, lead); saves upsert in place.
type LeadNote struct {
	CustomerID uuid.UUID
	LeadID     string
	Notes      string
	UpdatedBy  uuid.UUID
	UpdatedAt  time.Time
}

// UpsertNoteParams holds the fields for saving a note.
type UpsertNoteParams struct {
	CustomerID uuid.UUID
	LeadID     string
	Notes      string
	UpdatedBy  uuid.UUID
}

// LeadsRepository is the storage interface for the leads module.
// The pgx implementation backs production; an in-memory implementation
// backs tests.
type LeadsRepository interface {
	ListEventsByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Event, error)
	UpsertNote(ctx context.Context, params UpsertNoteParams) (LeadNote, error)
	GetNote(ctx context.Context, customerID uuid.UUID, leadID string) (LeadNote, error)
}

// Repository is the pgx-backed implementation of LeadsRepository.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// eventMetadata mirrors the jsonb payload stored by the interactions module.
type eventMetadata struct {
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Name     string  `json:"name,omitempty"`
	Company  string  `json:"company,omitempty"`
	Location string  `json:"location,omitempty"`
	Message  string  `json:"message,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

func (r *Repository) ListEventsByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_type, channel, metadata, created_at
		FROM interaction_events
		WHERE customer_id = $1
		ORDER BY created_at ASC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		var rawMetadata []byte
		if err := rows.Scan(&event.ID, &event.EventType, &event.Channel, &rawMetadata, &event.CreatedAt); err != nil {
			return nil, err
		}
		var metadata eventMetadata
		if err := json.Unmarshal(rawMetadata, &metadata); err != nil {
			return nil, err
		}
		event.Email = metadata.Email
		event.Phone = metadata.Phone
		event.Name = metadata.Name
		event.Company = metadata.Company
		event.Location = metadata.Location
		event.Message = metadata.Message
		event.Value = metadata.Value
		events = append(events, event)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return events, nil
}

func (r *Repository) UpsertNote(ctx context.Context, params UpsertNoteParams) (LeadNote, error) {
	var note LeadNote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lead_notes (customer_id, lead_id, notes, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (customer_id, lead_id)
		DO UPDATE SET notes = EXCLUDED.notes, updated_by = EXCLUDED.updated_by, updated_at = now()
		RETURNING customer_id, lead_id, notes, updated_by, updated_at
	`, params.CustomerID, params.LeadID, params.Notes, params.UpdatedBy).Scan(
		&note.CustomerID,
		&note.LeadID,
		&note.Notes,
		&note.UpdatedBy,
		&note.UpdatedAt,
	)
	return note, err
}

func (r *Repository) GetNote(ctx context.Context, customerID uuid.UUID, leadID string) (LeadNote, error) {
	var note LeadNote
	err := r.pool.QueryRow(ctx, `
		SELECT customer_id, lead_id, notes, updated_by, updated_at
		FROM lead_notes
		WHERE customer_id = $1 AND lead_id = $2
	`, customerID, leadID).Scan(
		&note.CustomerID,
		&note.LeadID,
		&note.Notes,
		&note.UpdatedBy,
		&note.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeadNote{}, ErrNotFound
	}
	return note, err
}

// Compile-time check that Repository implements LeadsRepository
var _ LeadsRepository = (*Repository)(nil)
