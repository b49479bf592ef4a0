package webhook

import (
	"context"
	"strings"

	"bizzybot_backend/internal/events"
	interactions "bizzybot_backend/internal/interactions/transport"
	"bizzybot_backend/platform/apperr"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultChannel = "chat"

// InteractionRecorder is the slice of the interactions service the webhook
// module depends on. Declared here so the dependency flows through an
// interface rather than a package import cycle.
type InteractionRecorder interface {
	Record(ctx context.Context, customerID uuid.UUID, req interactions.RecordEventRequest) (interactions.EventResponse, error)
	AnalyzeBehaviors(ctx context.Context, customerID uuid.UUID, req interactions.AnalyzeBehaviorsRequest) (interactions.AnalyzeBehaviorsResponse, error)
}

// InboundMessage is an ingested chat exchange from an external widget.
type InboundMessage struct {
	UserMessage string  `json:"userMessage" validate:"required,max=4000"`
	AIResponse  string  `json:"aiResponse" validate:"max=4000"`
	Channel     string  `json:"channel" validate:"omitempty,oneof=email sms facebook instagram chat voice"`
	Email       string  `json:"email" validate:"omitempty,email,max=254"`
	Phone       string  `json:"phone" validate:"omitempty,max=32"`
	Name        string  `json:"name" validate:"omitempty,max=200"`
	Company     string  `json:"company" validate:"omitempty,max=200"`
	Location    string  `json:"location" validate:"omitempty,max=200"`
	Value       float64 `json:"value" validate:"omitempty,gte=0"`

	// SourceDomain is filled from the request by the handler, not the caller.
	SourceDomain string `json:"-"`
}

// InboundMessageResponse reports what ingestion stored and detected.
type InboundMessageResponse struct {
	EventID           uuid.UUID                       `json:"eventId"`
	Behaviors         []interactions.BehaviorResponse `json:"behaviors"`
	BehaviorsRecorded int                             `json:"behaviorsRecorded"`
}

// Service processes inbound webhook messages.
type Service struct {
	recorder InteractionRecorder
	eventBus events.Bus
	log      *logger.Logger
}

// NewService creates a new webhook service.
func NewService(recorder InteractionRecorder, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		recorder: recorder,
		eventBus: eventBus,
		log:      log,
	}
}

// ProcessInboundMessage records the exchange as a message event, runs
// behavior analysis over it, and requests a score refresh for the customer.
func (s *Service) ProcessInboundMessage(ctx context.Context, customerID uuid.UUID, msg InboundMessage) (InboundMessageResponse, error) {
	channel := strings.TrimSpace(msg.Channel)
	if channel == "" {
		channel = defaultChannel
	}

	metadata := interactions.EventMetadata{
		Email:    msg.Email,
		Phone:    msg.Phone,
		Name:     msg.Name,
		Company:  msg.Company,
		Location: msg.Location,
		Message:  msg.UserMessage,
		Value:    msg.Value,
	}

	stored, err := s.recorder.Record(ctx, customerID, interactions.RecordEventRequest{
		EventType: "message",
		Channel:   channel,
		Metadata:  metadata,
	})
	if err != nil {
		return InboundMessageResponse{}, apperr.Wrap(apperr.KindInternal, "failed to record message", err)
	}

	resp := InboundMessageResponse{EventID: stored.ID}

	analyzed, err := s.recorder.AnalyzeBehaviors(ctx, customerID, interactions.AnalyzeBehaviorsRequest{
		AIResponse:  msg.AIResponse,
		UserMessage: msg.UserMessage,
		Channel:     channel,
		Metadata:    metadata,
		Persist:     true,
	})
	if err != nil {
		// The message itself is stored; a failed analysis pass is not fatal.
		s.log.Error("webhook behavior analysis failed", "error", err, "customer_id", customerID)
	} else {
		resp.Behaviors = analyzed.Behaviors
		resp.BehaviorsRecorded = analyzed.Recorded
	}

	s.eventBus.Publish(ctx, events.WebhookMessageReceived{
		BaseEvent:    events.NewBaseEvent(),
		CustomerID:   customerID,
		SourceDomain: msg.SourceDomain,
		Channel:      channel,
	})
	s.eventBus.Publish(ctx, events.ScoreRefreshRequested{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customerID,
	})

	return resp, nil
}
