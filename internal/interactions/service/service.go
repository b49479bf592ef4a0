// Package service implements the interactions use cases: recording
// immutable events and analyzing conversation behaviors.
package service

import (
	"context"
	"strings"

	"bizzybot_backend/internal/events"
	"bizzybot_backend/internal/interactions/behavior"
	"bizzybot_backend/internal/interactions/repository"
	"bizzybot_backend/internal/interactions/transport"
	"bizzybot_backend/platform/apperr"
	"bizzybot_backend/platform/logger"
	"bizzybot_backend/platform/phone"
	"bizzybot_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service implements interaction event recording and behavior analysis.
type Service struct {
	repo     repository.EventsRepository
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new interactions service.
func New(repo repository.EventsRepository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		log:      log,
	}
}

// Record appends a single interaction event. Events with missing contact
// fields are still stored; absent fields simply contribute nothing to
// downstream scoring.
func (s *Service) Record(ctx context.Context, customerID uuid.UUID, req transport.RecordEventRequest) (transport.EventResponse, error) {
	eventType := strings.TrimSpace(req.EventType)
	if customerID == uuid.Nil || eventType == "" {
		return transport.EventResponse{}, apperr.BadRequest("customerId and eventType are required")
	}

	stored, err := s.repo.Insert(ctx, repository.InsertEventParams{
		CustomerID: customerID,
		EventType:  eventType,
		Channel:    strings.TrimSpace(req.Channel),
		Metadata:   normalizeMetadata(req.Metadata),
		CreatedAt:  req.CreatedAt,
	})
	if err != nil {
		return transport.EventResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store event", err)
	}

	s.eventBus.Publish(ctx, events.InteractionRecorded{
		BaseEvent:     events.NewBaseEvent(),
		InteractionID: stored.ID,
		CustomerID:    stored.CustomerID,
		Intent:        stored.EventType,
		UserName:      stored.Metadata.Name,
		UserEmail:     stored.Metadata.Email,
		UserPhone:     stored.Metadata.Phone,
		OccurredOn:    stored.CreatedAt,
	})

	return toEventResponse(stored), nil
}

// List returns all events for a customer, oldest first. An unknown customer
// yields an empty list, not an error.
func (s *Service) List(ctx context.Context, customerID uuid.UUID) (transport.EventsResponse, error) {
	stored, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return transport.EventsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load events", err)
	}

	items := make([]transport.EventResponse, len(stored))
	for i, event := range stored {
		items[i] = toEventResponse(event)
	}
	return transport.EventsResponse{Items: items}, nil
}

// AnalyzeBehaviors runs the keyword analyzer over a single exchange and,
// when requested, records each detected behavior as an event.
func (s *Service) AnalyzeBehaviors(ctx context.Context, customerID uuid.UUID, req transport.AnalyzeBehaviorsRequest) (transport.AnalyzeBehaviorsResponse, error) {
	detected := behavior.Analyze(req.AIResponse, req.UserMessage)

	resp := transport.AnalyzeBehaviorsResponse{
		Behaviors: make([]transport.BehaviorResponse, len(detected)),
	}
	for i, b := range detected {
		resp.Behaviors[i] = transport.BehaviorResponse{
			Tag:       b.Tag,
			EventType: b.EventType,
			Source:    b.Source,
			Matched:   b.Matched,
		}
	}

	if !req.Persist || len(detected) == 0 {
		return resp, nil
	}

	metadata := normalizeMetadata(req.Metadata)
	if metadata.Message == "" {
		metadata.Message = sanitize.Text(req.UserMessage)
	}

	for _, b := range detected {
		if _, err := s.repo.Insert(ctx, repository.InsertEventParams{
			CustomerID: customerID,
			EventType:  b.EventType,
			Channel:    strings.TrimSpace(req.Channel),
			Metadata:   metadata,
		}); err != nil {
			s.log.Error("failed to record behavior event", "error", err, "tag", b.Tag)
			continue
		}
		resp.Recorded++

		s.eventBus.Publish(ctx, events.BehaviorDetected{
			BaseEvent:  events.NewBaseEvent(),
			CustomerID: customerID,
			Intent:     b.EventType,
			Matched:    b.Matched,
			UserEmail:  metadata.Email,
			UserPhone:  metadata.Phone,
		})
	}

	return resp, nil
}

func normalizeMetadata(m transport.EventMetadata) repository.Metadata {
	normalized := repository.Metadata{
		Email:    strings.ToLower(strings.TrimSpace(m.Email)),
		Phone:    strings.TrimSpace(m.Phone),
		Name:     strings.TrimSpace(m.Name),
		Company:  strings.TrimSpace(m.Company),
		Location: strings.TrimSpace(m.Location),
		Message:  sanitize.Text(m.Message),
		Value:    m.Value,
	}
	if normalized.Phone != "" {
		normalized.Phone = phone.NormalizeE164(normalized.Phone)
	}
	return normalized
}

func toEventResponse(event repository.Event) transport.EventResponse {
	return transport.EventResponse{
		ID:        event.ID,
		EventType: event.EventType,
		Channel:   event.Channel,
		Metadata: transport.EventMetadata{
			Email:    event.Metadata.Email,
			Phone:    event.Metadata.Phone,
			Name:     event.Metadata.Name,
			Company:  event.Metadata.Company,
			Location: event.Metadata.Location,
			Message:  event.Metadata.Message,
			Value:    event.Metadata.Value,
		},
		CreatedAt: event.CreatedAt,
	}
}
