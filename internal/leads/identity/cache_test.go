package identity

import (
	"context"
	"testing"
	"time"

	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute, logger.New("test"))
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	customerID := uuid.New()

	contacts := Resolve([]domain.Event{
		testEvent(0, "a@b.com", "", "Jane Doe"),
		testEvent(1, "a@b.com", "+14155550123", ""),
	})

	if _, ok := cache.Get(ctx, customerID); ok {
		t.Fatalf("expected miss on empty cache")
	}

	cache.Set(ctx, customerID, contacts)

	cached, ok := cache.Get(ctx, customerID)
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if len(cached) != len(contacts) {
		t.Fatalf("expected %d contacts, got %d", len(contacts), len(cached))
	}
	if cached[0].LeadID != contacts[0].LeadID {
		t.Fatalf("expected lead id %q, got %q", contacts[0].LeadID, cached[0].LeadID)
	}
	if len(cached[0].Events) != 2 {
		t.Fatalf("expected 2 cached events, got %d", len(cached[0].Events))
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	customerID := uuid.New()

	cache.Set(ctx, customerID, []domain.Contact{{LeadID: "a@b.com"}})
	cache.Invalidate(ctx, customerID)

	if _, ok := cache.Get(ctx, customerID); ok {
		t.Fatalf("expected miss after invalidation")
	}
}

func TestCacheIsScopedPerCustomer(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	cache.Set(ctx, first, []domain.Contact{{LeadID: "a@b.com"}})

	if _, ok := cache.Get(ctx, second); ok {
		t.Fatalf("expected miss for a different customer")
	}
}

func TestCacheNilClientAlwaysMisses(t *testing.T) {
	cache := NewCache(nil, time.Minute, logger.New("test"))
	ctx := context.Background()
	customerID := uuid.New()

	cache.Set(ctx, customerID, []domain.Contact{{LeadID: "a@b.com"}})
	if _, ok := cache.Get(ctx, customerID); ok {
		t.Fatalf("expected nil client cache to always miss")
	}
}
