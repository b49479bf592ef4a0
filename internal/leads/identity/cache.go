package identity

import (
	"context"
	"encoding/json"
	"time"

	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "leads:contacts:"

// Cache stores resolved contact snapshots in Redis so identity resolution
// runs once per event-set change instead of on every query. A nil Redis
// client degrades to always-miss; resolution then simply runs inline.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCache creates a contact cache. client may be nil when Redis is not
// configured.
func NewCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Get returns the cached contact snapshot for a customer, if present.
func (c *Cache) Get(ctx context.Context, customerID uuid.UUID) ([]domain.Contact, bool) {
	if c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, cacheKeyPrefix+customerID.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("contact cache read failed", "error", err, "customerId", customerID)
		}
		return nil, false
	}

	var contacts []domain.Contact
	if err := json.Unmarshal(payload, &contacts); err != nil {
		c.log.Warn("contact cache payload corrupt", "error", err, "customerId", customerID)
		return nil, false
	}
	return contacts, true
}

// Set stores a contact snapshot for a customer. Failures are logged and
// swallowed; the cache is an optimization, never a source of truth.
func (c *Cache) Set(ctx context.Context, customerID uuid.UUID, contacts []domain.Contact) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(contacts)
	if err != nil {
		c.log.Warn("contact cache marshal failed", "error", err, "customerId", customerID)
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+customerID.String(), payload, c.ttl).Err(); err != nil {
		c.log.Warn("contact cache write failed", "error", err, "customerId", customerID)
	}
}

// Invalidate drops the snapshot for a customer. Called whenever a new
// interaction event lands.
func (c *Cache) Invalidate(ctx context.Context, customerID uuid.UUID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKeyPrefix+customerID.String()).Err(); err != nil {
		c.log.Warn("contact cache invalidation failed", "error", err, "customerId", customerID)
	}
}
