// Package identity resolves interaction events into stable contacts.
//
// Two events belong to the same contact when they share a normalized email,
// a normalized phone number, or a non-empty normalized name. Resolution runs
// union-find over the event set and produces a stable lead identifier per
// contact, so callers never repeat fuzzy joins at query time. An event with
// no identifying fields can never merge with a later one; it forms a
// permanently separate contact keyed by its event ID.
package identity

import (
	"sort"
	"strings"

	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/platform/phone"
)

// Resolve groups events into contacts. Input order does not matter; the
// result is deterministic for a given event set. Contacts are returned with
// their events sorted oldest first.
func Resolve(events []domain.Event) []domain.Contact {
	if len(events) == 0 {
		return []domain.Contact{}
	}

	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	parent := make([]int, len(sorted))
	for i := range parent {
		parent[i] = i
	}

	// Union events sharing any identifying key.
	keyOwner := make(map[string]int)
	for i, event := range sorted {
		for _, key := range identityKeys(event) {
			if owner, ok := keyOwner[key]; ok {
				union(parent, owner, i)
			} else {
				keyOwner[key] = i
			}
		}
	}

	groups := make(map[int][]domain.Event)
	order := make([]int, 0)
	for i, event := range sorted {
		root := find(parent, i)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = append(groups[root], event)
	}

	contacts := make([]domain.Contact, 0, len(order))
	for _, root := range order {
		contacts = append(contacts, buildContact(groups[root]))
	}
	return contacts
}

// FindByLeadID returns the contact with the given lead identifier, if any.
func FindByLeadID(contacts []domain.Contact, leadID string) (domain.Contact, bool) {
	for _, contact := range contacts {
		if contact.LeadID == leadID {
			return contact, true
		}
	}
	return domain.Contact{}, false
}

func identityKeys(event domain.Event) []string {
	keys := make([]string, 0, 3)
	if email := NormalizeEmail(event.Email); email != "" {
		keys = append(keys, "email:"+email)
	}
	if phoneKey := NormalizePhone(event.Phone); phoneKey != "" {
		keys = append(keys, "phone:"+phoneKey)
	}
	if name := NormalizeName(event.Name); name != "" {
		keys = append(keys, "name:"+name)
	}
	return keys
}

// buildContact aggregates a group of events, oldest first. The first
// captured value wins for each contact field, and the lead identifier
// prefers email over phone over name.
func buildContact(events []domain.Event) domain.Contact {
	contact := domain.Contact{Events: events}
	for _, event := range events {
		if contact.Email == "" {
			contact.Email = NormalizeEmail(event.Email)
		}
		if contact.Phone == "" {
			contact.Phone = NormalizePhone(event.Phone)
		}
		if contact.Name == "" {
			contact.Name = strings.TrimSpace(event.Name)
		}
		if contact.Company == "" {
			contact.Company = strings.TrimSpace(event.Company)
		}
		if contact.Location == "" {
			contact.Location = strings.TrimSpace(event.Location)
		}
	}

	switch {
	case contact.Email != "":
		contact.LeadID = contact.Email
	case contact.Phone != "":
		contact.LeadID = contact.Phone
	case contact.Name != "":
		contact.LeadID = NormalizeName(contact.Name)
	default:
		contact.LeadID = "anon:" + events[0].ID.String()
	}
	return contact
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone formats a phone number to E.164 where possible.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return phone.NormalizeE164(trimmed)
}

// NormalizeName lowercases and collapses whitespace in a display name.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func union(parent []int, a, b int) {
	rootA := find(parent, a)
	rootB := find(parent, b)
	if rootA == rootB {
		return
	}
	// Attach the later root to the earlier one so group order is stable.
	if rootA < rootB {
		parent[rootB] = rootA
	} else {
		parent[rootA] = rootB
	}
}
