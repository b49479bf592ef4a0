package service

import (
	"context"
	"testing"
	"time"

	"bizzybot_backend/internal/events"
	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/internal/leads/hotlead"
	"bizzybot_backend/internal/leads/identity"
	"bizzybot_backend/internal/leads/notes"
	"bizzybot_backend/internal/leads/repository"
	"bizzybot_backend/internal/leads/transport"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type disabledReasoningConfig struct{}

func (disabledReasoningConfig) GetReasoningAPIKey() string  { return "" }
func (disabledReasoningConfig) GetReasoningBaseURL() string { return "" }
func (disabledReasoningConfig) GetReasoningModel() string   { return "" }
func (disabledReasoningConfig) IsReasoningEnabled() bool    { return false }

func newTestService(t *testing.T, repo *repository.InMemoryRepository) *Service {
	t.Helper()
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	cache := identity.NewCache(nil, time.Minute, log)
	notesSvc := notes.New(repo, bus)

	classifier, err := hotlead.NewClassifier(disabledReasoningConfig{}, log)
	if err != nil {
		t.Fatalf("unexpected classifier error: %v", err)
	}

	svc := New(repo, cache, notesSvc, classifier, bus, log)
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

func seedEvent(repo *repository.InMemoryRepository, customerID uuid.UUID, eventType, channel, email, phone, name string, value float64, createdAt time.Time) {
	repo.AddEvent(customerID, domain.Event{
		ID:        uuid.New(),
		EventType: eventType,
		Channel:   channel,
		Email:     email,
		Phone:     phone,
		Name:      name,
		Value:     value,
		CreatedAt: createdAt,
	})
}

func seedHotContact(repo *repository.InMemoryRepository, customerID uuid.UUID, email string) {
	repo.AddEvent(customerID, domain.Event{
		ID:        uuid.New(),
		EventType: "hot_lead",
		Channel:   "chat",
		Email:     email,
		Phone:     "+14155550123",
		CreatedAt: testNow.Add(-time.Hour),
	})
	for day := 0; day < 5; day++ {
		repo.AddEvent(customerID, domain.Event{
			ID:        uuid.New(),
			EventType: "message",
			Channel:   "email",
			Email:     email,
			CreatedAt: testNow.AddDate(0, 0, -day).Add(-2 * time.Hour),
		})
	}
}

func TestListLeadsUnknownCustomerIsEmpty(t *testing.T) {
	svc := newTestService(t, repository.NewInMemory())

	resp, err := svc.ListLeads(context.Background(), uuid.New(), transport.ListLeadsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 0 || resp.Total != 0 || resp.HotCount != 0 {
		t.Fatalf("expected empty response, got %+v", resp)
	}
}

func TestListLeadsGroupsAndScores(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()

	seedHotContact(repo, customerID, "hot@example.com")
	seedEvent(repo, customerID, "message", "sms", "cold@example.com", "", "", 0, testNow.AddDate(0, 0, -20))

	svc := newTestService(t, repo)
	resp, err := svc.ListLeads(context.Background(), customerID, transport.ListLeadsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(resp.Items))
	}
	if resp.HotCount != 1 {
		t.Fatalf("expected hot count 1, got %d", resp.HotCount)
	}
	// Default sort is score descending.
	if resp.Items[0].LeadID != "hot@example.com" {
		t.Fatalf("expected hot lead first, got %q", resp.Items[0].LeadID)
	}
	if resp.Items[0].Temperature != domain.TemperatureHot {
		t.Fatalf("expected hot temperature, got %s", resp.Items[0].Temperature)
	}
	if resp.Items[1].Temperature != domain.TemperatureCold {
		t.Fatalf("expected cold temperature, got %s", resp.Items[1].Temperature)
	}
}

func TestListLeadsHotFilterOnlyReturnsHotLeads(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()

	seedHotContact(repo, customerID, "hot@example.com")
	seedEvent(repo, customerID, "message", "sms", "cold@example.com", "", "", 0, testNow.AddDate(0, 0, -20))
	seedEvent(repo, customerID, "phone_request", "chat", "warm@example.com", "+14155550111", "", 0, testNow.Add(-2*time.Hour))

	svc := newTestService(t, repo)
	resp, err := svc.ListLeads(context.Background(), customerID, transport.ListLeadsQuery{Temperature: "hot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, item := range resp.Items {
		if item.Score < 70 {
			t.Fatalf("hot filter returned lead with score %d", item.Score)
		}
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected exactly 1 hot lead, got %d", len(resp.Items))
	}
}

func TestListLeadsChannelAndSearchFilters(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()

	seedEvent(repo, customerID, "message", "sms", "alice@example.com", "", "Alice Smith", 0, testNow.Add(-time.Hour))
	seedEvent(repo, customerID, "message", "email", "bob@example.com", "", "Bob Jones", 0, testNow.Add(-time.Hour))

	svc := newTestService(t, repo)

	byChannel, err := svc.ListLeads(context.Background(), customerID, transport.ListLeadsQuery{Channel: "sms"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byChannel.Items) != 1 || byChannel.Items[0].LeadID != "alice@example.com" {
		t.Fatalf("expected only alice for sms channel, got %+v", byChannel.Items)
	}

	bySearch, err := svc.ListLeads(context.Background(), customerID, transport.ListLeadsQuery{Search: "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bySearch.Items) != 1 || bySearch.Items[0].LeadID != "bob@example.com" {
		t.Fatalf("expected only bob for search, got %+v", bySearch.Items)
	}
}

func TestListLeadsRecentSortAndLimit(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()

	seedHotContact(repo, customerID, "older@example.com")
	seedEvent(repo, customerID, "message", "chat", "newest@example.com", "", "", 0, testNow.Add(-time.Minute))

	svc := newTestService(t, repo)

	resp, err := svc.ListLeads(context.Background(), customerID, transport.ListLeadsQuery{SortBy: "recent", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item with limit, got %d", len(resp.Items))
	}
	if resp.Items[0].LeadID != "newest@example.com" {
		t.Fatalf("expected newest lead first, got %q", resp.Items[0].LeadID)
	}
	if resp.Total != 2 {
		t.Fatalf("expected total 2 before truncation, got %d", resp.Total)
	}
}

func TestGetLeadDetails(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()
	authorID := uuid.New()

	seedHotContact(repo, customerID, "hot@example.com")
	seedEvent(repo, customerID, "message", "sms", "hot@example.com", "", "", 2500, testNow.Add(-30*time.Minute))

	svc := newTestService(t, repo)

	if _, err := svc.Notes().Save(context.Background(), customerID, "hot@example.com", authorID, transport.SaveNoteRequest{Notes: "called twice"}); err != nil {
		t.Fatalf("unexpected note error: %v", err)
	}

	details, err := svc.GetLeadDetails(context.Background(), customerID, "hot@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.LeadID != "hot@example.com" {
		t.Fatalf("expected lead id hot@example.com, got %q", details.LeadID)
	}
	if details.EventCount != 7 {
		t.Fatalf("expected 7 events, got %d", details.EventCount)
	}
	if len(details.RecentEvents) != 5 {
		t.Fatalf("expected 5 recent events, got %d", len(details.RecentEvents))
	}
	if len(details.Events) != 7 {
		t.Fatalf("expected full event list, got %d", len(details.Events))
	}
	// Most recent first.
	if !details.Events[0].CreatedAt.After(details.Events[1].CreatedAt) {
		t.Fatalf("expected events sorted most recent first")
	}
	if details.Note == nil || details.Note.Notes != "called twice" {
		t.Fatalf("expected attached note, got %+v", details.Note)
	}

	tags := make(map[string]bool)
	for _, tag := range details.Tags {
		tags[tag] = true
	}
	for _, want := range []string{"Hot Lead", "Highly Engaged", "Multi-Channel", "High Value", "Has Contact Info"} {
		if !tags[want] {
			t.Fatalf("expected tag %q, got %v", want, details.Tags)
		}
	}
}

func TestGetLeadDetailsUnknownLead(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()
	seedEvent(repo, customerID, "message", "chat", "a@b.com", "", "", 0, testNow)

	svc := newTestService(t, repo)

	if _, err := svc.GetLeadDetails(context.Background(), customerID, "missing@example.com"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestSaveNoteTwiceKeepsOneRow(t *testing.T) {
	repo := repository.NewInMemory()
	customerID := uuid.New()
	authorID := uuid.New()
	svc := newTestService(t, repo)

	if _, err := svc.Notes().Save(context.Background(), customerID, "a@b.com", authorID, transport.SaveNoteRequest{Notes: "first"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Notes().Save(context.Background(), customerID, "a@b.com", authorID, transport.SaveNoteRequest{Notes: "second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count := repo.NoteCount(customerID); count != 1 {
		t.Fatalf("expected exactly 1 note row, got %d", count)
	}

	note, err := svc.Notes().Get(context.Background(), customerID, "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note == nil || note.Notes != "second" {
		t.Fatalf("expected latest note text, got %+v", note)
	}
}

func TestGetNoteAbsenceIsNotAnError(t *testing.T) {
	svc := newTestService(t, repository.NewInMemory())

	note, err := svc.Notes().Get(context.Background(), uuid.New(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note != nil {
		t.Fatalf("expected nil note, got %+v", note)
	}
}

func TestClassifyMessageFailSafe(t *testing.T) {
	svc := newTestService(t, repository.NewInMemory())

	resp, err := svc.ClassifyMessage(context.Background(), uuid.New(), transport.ClassifyMessageRequest{
		Message: "I need this ASAP, my budget is $5000, call me today",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Fallback || resp.IsHotLead || resp.Score != 0 {
		t.Fatalf("expected fail-safe cold classification, got %+v", resp)
	}
}
