package webhook

import (
	"context"
	"strings"
	"testing"

	"bizzybot_backend/internal/events"
	interactions "bizzybot_backend/internal/interactions/transport"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
)

type stubRecorder struct {
	recorded []interactions.RecordEventRequest
	analyzed []interactions.AnalyzeBehaviorsRequest
}

func (s *stubRecorder) Record(_ context.Context, _ uuid.UUID, req interactions.RecordEventRequest) (interactions.EventResponse, error) {
	s.recorded = append(s.recorded, req)
	return interactions.EventResponse{ID: uuid.New(), EventType: req.EventType, Channel: req.Channel, Metadata: req.Metadata}, nil
}

func (s *stubRecorder) AnalyzeBehaviors(_ context.Context, _ uuid.UUID, req interactions.AnalyzeBehaviorsRequest) (interactions.AnalyzeBehaviorsResponse, error) {
	s.analyzed = append(s.analyzed, req)
	return interactions.AnalyzeBehaviorsResponse{
		Behaviors: []interactions.BehaviorResponse{{Tag: "urgency_expressed", EventType: "hot_lead", Source: "user_message", Matched: "asap"}},
		Recorded:  1,
	}, nil
}

func TestProcessInboundMessage(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	recorder := &stubRecorder{}
	svc := NewService(recorder, bus, log)

	customerID := uuid.New()
	resp, err := svc.ProcessInboundMessage(context.Background(), customerID, InboundMessage{
		UserMessage: "I need this asap",
		AIResponse:  "Can I get your phone number?",
		Email:       "buyer@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.EventID == uuid.Nil {
		t.Fatalf("expected stored event id")
	}
	if len(recorder.recorded) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(recorder.recorded))
	}
	if recorder.recorded[0].EventType != "message" {
		t.Fatalf("expected message event, got %q", recorder.recorded[0].EventType)
	}
	if recorder.recorded[0].Channel != "chat" {
		t.Fatalf("expected chat channel default, got %q", recorder.recorded[0].Channel)
	}
	if recorder.recorded[0].Metadata.Email != "buyer@example.com" {
		t.Fatalf("expected contact metadata carried through, got %+v", recorder.recorded[0].Metadata)
	}

	if len(recorder.analyzed) != 1 {
		t.Fatalf("expected 1 analysis call, got %d", len(recorder.analyzed))
	}
	if !recorder.analyzed[0].Persist {
		t.Fatalf("expected behavior persistence for webhook ingests")
	}
	if resp.BehaviorsRecorded != 1 || len(resp.Behaviors) != 1 {
		t.Fatalf("expected behavior results surfaced, got %+v", resp)
	}
}

func TestGenerateAPIKeyRoundTrip(t *testing.T) {
	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(plaintext, "whk_") {
		t.Fatalf("expected whk_ prefix, got %q", plaintext)
	}
	if HashKey(plaintext) != hash {
		t.Fatalf("hash does not match plaintext")
	}
	if prefix != plaintext[:12] {
		t.Fatalf("expected 12-char prefix, got %q", prefix)
	}
	if strings.Contains(hash, plaintext[4:]) {
		t.Fatalf("hash must not leak key material")
	}
}

func TestKeyStoreRevoke(t *testing.T) {
	store := NewInMemoryKeyStore()
	customerID := uuid.New()
	ctx := context.Background()

	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key, err := store.Create(ctx, customerID, "widget", hash, prefix, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.GetByHash(ctx, HashKey(plaintext)); err != nil {
		t.Fatalf("expected active key to resolve: %v", err)
	}

	if err := store.Revoke(ctx, key.ID, uuid.New()); err != ErrAPIKeyNotFound {
		t.Fatalf("expected not found for foreign customer, got %v", err)
	}
	if err := store.Revoke(ctx, key.ID, customerID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetByHash(ctx, HashKey(plaintext)); err != ErrAPIKeyNotFound {
		t.Fatalf("expected revoked key to be unresolvable, got %v", err)
	}
}

func TestIsDomainAllowed(t *testing.T) {
	cases := []struct {
		origin  string
		domains []string
		want    bool
	}{
		{"https://example.com", []string{"example.com"}, true},
		{"https://example.com", []string{"other.com"}, false},
		{"https://app.example.com", []string{"*.example.com"}, true},
		{"https://example.com", []string{"*.example.com"}, true},
		{"https://evilexample.com", []string{"*.example.com"}, false},
		{"https://anything.io", []string{"*"}, true},
		{"", []string{"example.com"}, false},
	}

	for _, tc := range cases {
		if got := isDomainAllowed(tc.origin, tc.domains); got != tc.want {
			t.Fatalf("isDomainAllowed(%q, %v) = %v, want %v", tc.origin, tc.domains, got, tc.want)
		}
	}
}
