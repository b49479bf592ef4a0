package webhook

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryKeyStore is a KeyStore backed by a map. Used in tests.
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[uuid.UUID]APIKey
}

// NewInMemoryKeyStore creates an empty in-memory key store.
func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{keys: make(map[uuid.UUID]APIKey)}
}

func (s *InMemoryKeyStore) Create(_ context.Context, customerID uuid.UUID, name string, keyHash string, keyPrefix string, allowedDomains []string) (APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := APIKey{
		ID:             uuid.New(),
		CustomerID:     customerID,
		Name:           name,
		KeyHash:        keyHash,
		KeyPrefix:      keyPrefix,
		AllowedDomains: allowedDomains,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.keys[key.ID] = key
	return key, nil
}

func (s *InMemoryKeyStore) GetByHash(_ context.Context, keyHash string) (APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range s.keys {
		if key.KeyHash == keyHash && key.IsActive {
			return key, nil
		}
	}
	return APIKey{}, ErrAPIKeyNotFound
}

func (s *InMemoryKeyStore) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []APIKey
	for _, key := range s.keys {
		if key.CustomerID == customerID {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *InMemoryKeyStore) Revoke(_ context.Context, keyID uuid.UUID, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[keyID]
	if !ok || key.CustomerID != customerID {
		return ErrAPIKeyNotFound
	}
	key.IsActive = false
	key.UpdatedAt = time.Now().UTC()
	s.keys[keyID] = key
	return nil
}

var _ KeyStore = (*InMemoryKeyStore)(nil)
