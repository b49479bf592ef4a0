package scoring

import (
	"testing"
	"time"

	"bizzybot_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func event(eventType, email, phone string, createdAt time.Time) domain.Event {
	return domain.Event{
		ID:        uuid.New(),
		EventType: eventType,
		Email:     email,
		Phone:     phone,
		CreatedAt: createdAt,
	}
}

func TestComputeSingleHotLeadEventToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []domain.Event{event("hot_lead", "a@b.com", "", now)}

	result := Compute(events, now)

	if result.Breakdown.Engagement != 25 {
		t.Fatalf("expected engagement 25, got %d", result.Breakdown.Engagement)
	}
	if result.Breakdown.Recency != 20 {
		t.Fatalf("expected recency 20, got %d", result.Breakdown.Recency)
	}
	if result.Breakdown.Contact != 10 {
		t.Fatalf("expected contact 10, got %d", result.Breakdown.Contact)
	}
	if result.Breakdown.Frequency != 5 {
		t.Fatalf("expected frequency 5, got %d", result.Breakdown.Frequency)
	}
	if result.Score != 60 {
		t.Fatalf("expected score 60, got %d", result.Score)
	}
	if result.Temperature != domain.TemperatureWarm {
		t.Fatalf("expected warm, got %s", result.Temperature)
	}
}

func TestComputeEngagedMultiDayContact(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	events := []domain.Event{event("hot_lead", "a@b.com", "", now.AddDate(0, 0, -6))}
	// Ten message events spread across six distinct days, most recent today.
	for day := 0; day < 6; day++ {
		events = append(events, event("message", "a@b.com", "+14155550123", now.AddDate(0, 0, -day)))
	}
	for i := 0; i < 4; i++ {
		events = append(events, event("message", "", "", now.Add(-time.Duration(i+1)*time.Hour)))
	}

	result := Compute(events, now)

	if result.Breakdown.Engagement != 40 {
		t.Fatalf("expected engagement 40, got %d", result.Breakdown.Engagement)
	}
	if result.Breakdown.Recency != 20 {
		t.Fatalf("expected recency 20, got %d", result.Breakdown.Recency)
	}
	if result.Breakdown.Contact != 20 {
		t.Fatalf("expected contact 20, got %d", result.Breakdown.Contact)
	}
	if result.Breakdown.Frequency != 20 {
		t.Fatalf("expected frequency 20, got %d", result.Breakdown.Frequency)
	}
	if result.Score != 100 {
		t.Fatalf("expected score 100, got %d", result.Score)
	}
	if result.Temperature != domain.TemperatureHot {
		t.Fatalf("expected hot, got %s", result.Temperature)
	}
}

func TestComputeStaleAnonymousContact(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []domain.Event{event("message", "", "", now.AddDate(0, 0, -20))}

	result := Compute(events, now)

	if result.Breakdown.Engagement != 10 {
		t.Fatalf("expected engagement 10, got %d", result.Breakdown.Engagement)
	}
	if result.Breakdown.Recency != 0 {
		t.Fatalf("expected recency 0, got %d", result.Breakdown.Recency)
	}
	if result.Breakdown.Contact != 0 {
		t.Fatalf("expected contact 0, got %d", result.Breakdown.Contact)
	}
	if result.Breakdown.Frequency != 5 {
		t.Fatalf("expected frequency 5, got %d", result.Breakdown.Frequency)
	}
	if result.Score != 15 {
		t.Fatalf("expected score 15, got %d", result.Score)
	}
	if result.Temperature != domain.TemperatureCold {
		t.Fatalf("expected cold, got %s", result.Temperature)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []domain.Event{
		event("phone_request", "", "+14155550123", now.AddDate(0, 0, -2)),
		event("message", "a@b.com", "", now.AddDate(0, 0, -1)),
	}

	first := Compute(events, now)
	second := Compute(events, now)

	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestComputeScoreNeverIncreasesAsTimeAdvances(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []domain.Event{event("appointment_scheduled", "a@b.com", "", base)}

	previous := Compute(events, base).Score
	for _, offset := range []time.Duration{
		12 * time.Hour,
		2 * 24 * time.Hour,
		5 * 24 * time.Hour,
		10 * 24 * time.Hour,
		30 * 24 * time.Hour,
	} {
		score := Compute(events, base.Add(offset)).Score
		if score > previous {
			t.Fatalf("score increased from %d to %d at offset %s", previous, score, offset)
		}
		previous = score
	}
}

func TestFrequencyComponentNonDecreasingWithAddedDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []domain.Event{event("message", "", "", now)}

	previous := Compute(events, now).Breakdown.Frequency
	for day := 1; day <= 6; day++ {
		events = append(events, event("message", "", "", now.AddDate(0, 0, -day)))
		frequency := Compute(events, now).Breakdown.Frequency
		if frequency < previous {
			t.Fatalf("frequency decreased from %d to %d after adding day %d", previous, frequency, day)
		}
		previous = frequency
	}
}

func TestContactComponentValues(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		email string
		phone string
		want  int
	}{
		{"neither", "", "", 0},
		{"email only", "a@b.com", "", 10},
		{"phone only", "", "+14155550123", 10},
		{"both", "a@b.com", "+14155550123", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute([]domain.Event{event("message", tt.email, tt.phone, now)}, now)
			if result.Breakdown.Contact != tt.want {
				t.Fatalf("expected contact %d, got %d", tt.want, result.Breakdown.Contact)
			}
		})
	}
}

func TestTemperatureForIsStepFunction(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Temperature
	}{
		{0, domain.TemperatureCold},
		{39, domain.TemperatureCold},
		{40, domain.TemperatureWarm},
		{69, domain.TemperatureWarm},
		{70, domain.TemperatureHot},
		{100, domain.TemperatureHot},
	}

	for _, tt := range tests {
		if got := TemperatureFor(tt.score); got != tt.want {
			t.Fatalf("score %d: expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestComputeEmptyEventSetIsCold(t *testing.T) {
	result := Compute(nil, time.Now())
	if result.Score != 0 || result.Temperature != domain.TemperatureCold {
		t.Fatalf("expected zero cold result, got %+v", result)
	}
}
