package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository is an EventsRepository backed by a process-local slice.
// Used in tests and as a lightweight backend for development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemory creates an empty in-memory events repository.
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Insert(_ context.Context, params InsertEventParams) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt := time.Now().UTC()
	if params.CreatedAt != nil {
		createdAt = params.CreatedAt.UTC()
	}

	event := Event{
		ID:         uuid.New(),
		CustomerID: params.CustomerID,
		EventType:  params.EventType,
		Channel:    params.Channel,
		Metadata:   params.Metadata,
		CreatedAt:  createdAt,
	}
	r.events = append(r.events, event)
	return event, nil
}

func (r *InMemoryRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]Event, 0)
	for _, event := range r.events {
		if event.CustomerID == customerID {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

var _ EventsRepository = (*InMemoryRepository)(nil)
