// Package repository provides persistence for interaction events.
// Events are append-only: they are never mutated or deleted after creation
// and are the sole source of truth for derived lead state.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Metadata is the semi-structured payload stored alongside an event.
type Metadata struct {
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Name     string  `json:"name,omitempty"`
	Company  string  `json:"company,omitempty"`
	Location string  `json:"location,omitempty"`
	Message  string  `json:"message,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// Event is an immutable interaction fact.
type Event struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	EventType  string
	Channel    string
	Metadata   Metadata
	CreatedAt  time.Time
}

// InsertEventParams holds the fields for appending a new event.
type InsertEventParams struct {
	CustomerID uuid.UUID
	EventType  string
	Channel    string
	Metadata   Metadata
	CreatedAt  *time.Time
}

// EventsRepository is the storage interface for interaction events.
// The pgx implementation backs production; an in-memory implementation
// backs tests.
type EventsRepository interface {
	Insert(ctx context.Context, params InsertEventParams) (Event, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Event, error)
}

// Repository is the pgx-backed implementation of EventsRepository.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new events repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, params InsertEventParams) (Event, error) {
	metadataJSON, err := json.Marshal(params.Metadata)
	if err != nil {
		return Event{}, err
	}

	createdAt := time.Now().UTC()
	if params.CreatedAt != nil {
		createdAt = params.CreatedAt.UTC()
	}

	var event Event
	var rawMetadata []byte
	err = r.pool.QueryRow(ctx, `
		INSERT INTO interaction_events (customer_id, event_type, channel, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, event_type, channel, metadata, created_at
	`, params.CustomerID, params.EventType, params.Channel, metadataJSON, createdAt).Scan(
		&event.ID,
		&event.CustomerID,
		&event.EventType,
		&event.Channel,
		&rawMetadata,
		&event.CreatedAt,
	)
	if err != nil {
		return Event{}, err
	}
	if err := json.Unmarshal(rawMetadata, &event.Metadata); err != nil {
		return Event{}, err
	}
	return event, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, event_type, channel, metadata, created_at
		FROM interaction_events
		WHERE customer_id = $1
		ORDER BY created_at ASC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var event Event
		var rawMetadata []byte
		if err := rows.Scan(
			&event.ID,
			&event.CustomerID,
			&event.EventType,
			&event.Channel,
			&rawMetadata,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawMetadata, &event.Metadata); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return events, nil
}

// Compile-time check that Repository implements EventsRepository
var _ EventsRepository = (*Repository)(nil)
