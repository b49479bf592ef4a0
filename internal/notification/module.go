// Package notification subscribes to domain events and dispatches hot lead
// alerts and score refresh work. Domain modules publish events; this module
// is the only place that knows alerts leave the system by email.
package notification

import (
	"context"

	"bizzybot_backend/internal/email"
	"bizzybot_backend/internal/events"
	"bizzybot_backend/internal/scheduler"
	"bizzybot_backend/platform/config"
	"bizzybot_backend/platform/logger"
)

// Service routes domain events to the task queue, falling back to direct
// email delivery when no queue is configured.
type Service struct {
	tasks     scheduler.TaskEnqueuer
	sender    email.Sender
	recipient string
	enabled   bool
	log       *logger.Logger
}

// New creates the notification service. Both tasks and sender may be nil;
// whatever is absent is skipped with a warning at dispatch time.
func New(tasks scheduler.TaskEnqueuer, sender email.Sender, cfg config.AlertConfig, log *logger.Logger) *Service {
	return &Service{
		tasks:     tasks,
		sender:    sender,
		recipient: cfg.GetAlertRecipient(),
		enabled:   cfg.GetAlertsEnabled(),
		log:       log,
	}
}

// RegisterHandlers subscribes the service to the domain events it dispatches.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe("leads.hot_lead.detected", events.HandlerFunc(s.onHotLeadDetected))
	bus.Subscribe("leads.score.refresh_requested", events.HandlerFunc(s.onScoreRefreshRequested))
}

func (s *Service) onHotLeadDetected(ctx context.Context, e events.Event) error {
	detected, ok := e.(events.HotLeadDetected)
	if !ok {
		return nil
	}

	if !s.enabled {
		s.log.Info("hot lead alert suppressed, alerts disabled", "lead_id", detected.LeadID)
		return nil
	}

	if s.tasks != nil {
		return s.tasks.EnqueueHotLeadAlert(ctx, scheduler.HotLeadAlertPayload{
			CustomerID: detected.CustomerID.String(),
			LeadID:     detected.LeadID,
			Name:       detected.UserName,
			Email:      detected.UserEmail,
			Phone:      detected.UserPhone,
			Score:      detected.Score,
			Reasoning:  detected.Reasoning,
			Source:     detected.Source,
		})
	}

	if s.sender == nil || s.recipient == "" {
		s.log.Warn("hot lead alert dropped, no alert delivery configured", "lead_id", detected.LeadID)
		return nil
	}

	return s.sender.SendHotLeadAlert(ctx, s.recipient, email.HotLeadAlert{
		LeadID:    detected.LeadID,
		Name:      detected.UserName,
		Email:     detected.UserEmail,
		Phone:     detected.UserPhone,
		Score:     detected.Score,
		Reasoning: detected.Reasoning,
		Source:    detected.Source,
	})
}

func (s *Service) onScoreRefreshRequested(ctx context.Context, e events.Event) error {
	requested, ok := e.(events.ScoreRefreshRequested)
	if !ok {
		return nil
	}

	if s.tasks == nil {
		return nil
	}
	return s.tasks.EnqueueScoreRefresh(ctx, scheduler.ScoreRefreshPayload{
		CustomerID: requested.CustomerID.String(),
	})
}
