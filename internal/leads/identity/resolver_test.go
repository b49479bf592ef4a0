package identity

import (
	"testing"
	"time"

	"bizzybot_backend/internal/leads/domain"

	"github.com/google/uuid"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testEvent(offsetMinutes int, email, phoneNumber, name string) domain.Event {
	return domain.Event{
		ID:        uuid.New(),
		EventType: "message",
		Email:     email,
		Phone:     phoneNumber,
		Name:      name,
		CreatedAt: baseTime.Add(time.Duration(offsetMinutes) * time.Minute),
	}
}

func TestResolveMergesOnSharedEmail(t *testing.T) {
	contacts := Resolve([]domain.Event{
		testEvent(0, "A@B.com", "", ""),
		testEvent(1, "a@b.com ", "", "Jane Doe"),
	})

	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if contacts[0].LeadID != "a@b.com" {
		t.Fatalf("expected lead id a@b.com, got %q", contacts[0].LeadID)
	}
	if len(contacts[0].Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(contacts[0].Events))
	}
	if contacts[0].Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", contacts[0].Name)
	}
}

func TestResolveMergesTransitively(t *testing.T) {
	// Event 1 and 2 share an email; event 2 and 3 share a phone. All three
	// must land in one contact.
	contacts := Resolve([]domain.Event{
		testEvent(0, "a@b.com", "", ""),
		testEvent(1, "a@b.com", "+14155550123", ""),
		testEvent(2, "", "(415) 555-0123", ""),
	})

	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if len(contacts[0].Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(contacts[0].Events))
	}
}

func TestResolveKeepsUnrelatedContactsApart(t *testing.T) {
	contacts := Resolve([]domain.Event{
		testEvent(0, "a@b.com", "", ""),
		testEvent(1, "c@d.com", "", ""),
	})

	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
}

func TestResolveAnonymousEventsNeverMerge(t *testing.T) {
	first := testEvent(0, "", "", "")
	second := testEvent(1, "", "", "")

	contacts := Resolve([]domain.Event{first, second})

	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].LeadID != "anon:"+first.ID.String() {
		t.Fatalf("expected anon lead id from event id, got %q", contacts[0].LeadID)
	}
}

func TestResolveMatchesOnNormalizedName(t *testing.T) {
	contacts := Resolve([]domain.Event{
		testEvent(0, "", "", "Jane  Doe"),
		testEvent(1, "", "", "jane doe"),
	})

	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if contacts[0].LeadID != "jane doe" {
		t.Fatalf("expected lead id jane doe, got %q", contacts[0].LeadID)
	}
}

func TestResolveIsOrderIndependent(t *testing.T) {
	events := []domain.Event{
		testEvent(0, "a@b.com", "", ""),
		testEvent(1, "", "+14155550123", "Jane Doe"),
		testEvent(2, "a@b.com", "+14155550123", ""),
	}
	reversed := []domain.Event{events[2], events[1], events[0]}

	forward := Resolve(events)
	backward := Resolve(reversed)

	if len(forward) != 1 || len(backward) != 1 {
		t.Fatalf("expected 1 contact both ways, got %d and %d", len(forward), len(backward))
	}
	if forward[0].LeadID != backward[0].LeadID {
		t.Fatalf("expected same lead id, got %q and %q", forward[0].LeadID, backward[0].LeadID)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	contacts := Resolve(nil)
	if len(contacts) != 0 {
		t.Fatalf("expected no contacts, got %d", len(contacts))
	}
}

func TestFindByLeadID(t *testing.T) {
	contacts := Resolve([]domain.Event{
		testEvent(0, "a@b.com", "", ""),
		testEvent(1, "c@d.com", "", ""),
	})

	contact, ok := FindByLeadID(contacts, "c@d.com")
	if !ok {
		t.Fatalf("expected to find contact c@d.com")
	}
	if contact.Email != "c@d.com" {
		t.Fatalf("expected email c@d.com, got %q", contact.Email)
	}

	if _, ok := FindByLeadID(contacts, "missing"); ok {
		t.Fatalf("expected missing lead to not be found")
	}
}
