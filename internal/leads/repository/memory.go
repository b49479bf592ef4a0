package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"bizzybot_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// InMemoryRepository is a LeadsRepository backed by process-local maps.
// Used in tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]domain.Event
	notes  map[uuid.UUID]map[string]LeadNote
}

// NewInMemory creates an empty in-memory leads repository.
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		events: make(map[uuid.UUID][]domain.Event),
		notes:  make(map[uuid.UUID]map[string]LeadNote),
	}
}

// AddEvent seeds an event for a customer.
func (r *InMemoryRepository) AddEvent(customerID uuid.UUID, event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	r.events[customerID] = append(r.events[customerID], event)
}

func (r *InMemoryRepository) ListEventsByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]domain.Event, len(r.events[customerID]))
	copy(events, r.events[customerID])
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (r *InMemoryRepository) UpsertNote(_ context.Context, params UpsertNoteParams) (LeadNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.notes[params.CustomerID] == nil {
		r.notes[params.CustomerID] = make(map[string]LeadNote)
	}

	note := LeadNote{
		CustomerID: params.CustomerID,
		LeadID:     params.LeadID,
		Notes:      params.Notes,
		UpdatedBy:  params.UpdatedBy,
		UpdatedAt:  time.Now().UTC(),
	}
	r.notes[params.CustomerID][params.LeadID] = note
	return note, nil
}

func (r *InMemoryRepository) GetNote(_ context.Context, customerID uuid.UUID, leadID string) (LeadNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[customerID][leadID]
	if !ok {
		return LeadNote{}, ErrNotFound
	}
	return note, nil
}

// NoteCount returns the number of stored notes for a customer.
func (r *InMemoryRepository) NoteCount(customerID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes[customerID])
}

var _ LeadsRepository = (*InMemoryRepository)(nil)
