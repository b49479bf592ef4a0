package notification

import (
	"context"
	"testing"

	"bizzybot_backend/internal/email"
	"bizzybot_backend/internal/events"
	"bizzybot_backend/internal/scheduler"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
)

type stubAlertConfig struct {
	enabled   bool
	recipient string
}

func (c stubAlertConfig) GetAlertsEnabled() bool      { return c.enabled }
func (c stubAlertConfig) GetSMTPHost() string         { return "" }
func (c stubAlertConfig) GetSMTPPort() int            { return 0 }
func (c stubAlertConfig) GetSMTPUsername() string     { return "" }
func (c stubAlertConfig) GetSMTPPassword() string     { return "" }
func (c stubAlertConfig) GetAlertFromName() string    { return "BizzyBot" }
func (c stubAlertConfig) GetAlertFromAddress() string { return "alerts@bizzybot.test" }
func (c stubAlertConfig) GetAlertRecipient() string   { return c.recipient }

type stubEnqueuer struct {
	alerts    []scheduler.HotLeadAlertPayload
	refreshes []scheduler.ScoreRefreshPayload
}

func (s *stubEnqueuer) EnqueueHotLeadAlert(_ context.Context, payload scheduler.HotLeadAlertPayload) error {
	s.alerts = append(s.alerts, payload)
	return nil
}

func (s *stubEnqueuer) EnqueueScoreRefresh(_ context.Context, payload scheduler.ScoreRefreshPayload) error {
	s.refreshes = append(s.refreshes, payload)
	return nil
}

type stubSender struct {
	sent []email.HotLeadAlert
	to   []string
}

func (s *stubSender) SendHotLeadAlert(_ context.Context, toEmail string, alert email.HotLeadAlert) error {
	s.to = append(s.to, toEmail)
	s.sent = append(s.sent, alert)
	return nil
}

func TestHotLeadDetectedEnqueuesAlert(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	tasks := &stubEnqueuer{}

	svc := New(tasks, nil, stubAlertConfig{enabled: true, recipient: "sales@bizzybot.test"}, log)
	svc.RegisterHandlers(bus)

	customerID := uuid.New()
	err := bus.PublishSync(context.Background(), events.HotLeadDetected{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customerID,
		LeadID:     "buyer@example.com",
		UserEmail:  "buyer@example.com",
		Score:      9,
		Source:     "classifier",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tasks.alerts) != 1 {
		t.Fatalf("expected 1 enqueued alert, got %d", len(tasks.alerts))
	}
	if tasks.alerts[0].LeadID != "buyer@example.com" || tasks.alerts[0].Score != 9 {
		t.Fatalf("unexpected alert payload %+v", tasks.alerts[0])
	}
	if tasks.alerts[0].CustomerID != customerID.String() {
		t.Fatalf("expected customer id carried through, got %q", tasks.alerts[0].CustomerID)
	}
}

func TestHotLeadDetectedFallsBackToDirectEmail(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	sender := &stubSender{}

	svc := New(nil, sender, stubAlertConfig{enabled: true, recipient: "sales@bizzybot.test"}, log)
	svc.RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.HotLeadDetected{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: uuid.New(),
		LeadID:     "+14155550123",
		UserPhone:  "+14155550123",
		Score:      8,
		Source:     "scoring",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected direct email fallback, got %d sends", len(sender.sent))
	}
	if sender.to[0] != "sales@bizzybot.test" {
		t.Fatalf("expected configured recipient, got %q", sender.to[0])
	}
	if sender.sent[0].Source != "scoring" {
		t.Fatalf("expected source carried through, got %q", sender.sent[0].Source)
	}
}

func TestHotLeadDetectedSuppressedWhenDisabled(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	tasks := &stubEnqueuer{}
	sender := &stubSender{}

	svc := New(tasks, sender, stubAlertConfig{enabled: false, recipient: "sales@bizzybot.test"}, log)
	svc.RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.HotLeadDetected{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: uuid.New(),
		LeadID:     "buyer@example.com",
		Score:      10,
		Source:     "classifier",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tasks.alerts) != 0 || len(sender.sent) != 0 {
		t.Fatalf("expected no dispatch when alerts disabled")
	}
}

func TestScoreRefreshRequestedEnqueuesRefresh(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	tasks := &stubEnqueuer{}

	svc := New(tasks, nil, stubAlertConfig{enabled: true}, log)
	svc.RegisterHandlers(bus)

	customerID := uuid.New()
	err := bus.PublishSync(context.Background(), events.ScoreRefreshRequested{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customerID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tasks.refreshes) != 1 || tasks.refreshes[0].CustomerID != customerID.String() {
		t.Fatalf("expected refresh enqueued for customer, got %+v", tasks.refreshes)
	}
}
