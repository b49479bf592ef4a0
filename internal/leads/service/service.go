// Package service implements the leads query layer: listing, detail
// expansion, and per-message classification over the derived contact model.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"bizzybot_backend/internal/events"
	"bizzybot_backend/internal/leads/domain"
	"bizzybot_backend/internal/leads/hotlead"
	"bizzybot_backend/internal/leads/identity"
	"bizzybot_backend/internal/leads/notes"
	"bizzybot_backend/internal/leads/repository"
	"bizzybot_backend/internal/leads/scoring"
	"bizzybot_backend/internal/leads/transport"
	"bizzybot_backend/platform/apperr"
	"bizzybot_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLimit       = 50
	maxLimit           = 200
	recentEventsWindow = 5
	scoringParallelism = 8
)

// Service implements the leads use cases.
type Service struct {
	repo       repository.LeadsRepository
	cache      *identity.Cache
	notes      *notes.Service
	classifier *hotlead.Classifier
	eventBus   events.Bus
	log        *logger.Logger
	now        func() time.Time
}

// New creates a new leads service.
func New(repo repository.LeadsRepository, cache *identity.Cache, notesSvc *notes.Service, classifier *hotlead.Classifier, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		cache:      cache,
		notes:      notesSvc,
		classifier: classifier,
		eventBus:   eventBus,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the evaluation clock. Used in tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Notes exposes the notes sub-service.
func (s *Service) Notes() *notes.Service {
	return s.notes
}

type scoredLead struct {
	contact domain.Contact
	result  scoring.Result
}

// ListLeads materializes a page of scored leads for a customer. An unknown
// customer or a customer with no events yields an empty page, not an error.
func (s *Service) ListLeads(ctx context.Context, customerID uuid.UUID, query transport.ListLeadsQuery) (transport.ListLeadsResponse, error) {
	contacts, err := s.resolveContacts(ctx, customerID)
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	scored, err := s.scoreContacts(ctx, contacts)
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	hotCount := 0
	for _, lead := range scored {
		if lead.result.Temperature == domain.TemperatureHot {
			hotCount++
		}
	}

	filtered := filterLeads(scored, query)
	sortLeads(filtered, query.SortBy)

	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	items := make([]transport.LeadSummary, len(filtered))
	for i, lead := range filtered {
		items[i] = toLeadSummary(lead)
	}

	return transport.ListLeadsResponse{
		Items:    items,
		Total:    total,
		HotCount: hotCount,
	}, nil
}

// GetLeadDetails expands a single lead: full breakdown, recent and complete
// event lists, the attached note, and derived tags.
func (s *Service) GetLeadDetails(ctx context.Context, customerID uuid.UUID, leadID string) (transport.LeadDetailsResponse, error) {
	contacts, err := s.resolveContacts(ctx, customerID)
	if err != nil {
		return transport.LeadDetailsResponse{}, err
	}

	contact, ok := identity.FindByLeadID(contacts, strings.TrimSpace(leadID))
	if !ok {
		return transport.LeadDetailsResponse{}, apperr.NotFound("lead not found")
	}

	result := scoring.Compute(contact.Events, s.now())

	// Most recent first for presentation.
	eventViews := make([]transport.EventView, len(contact.Events))
	for i, event := range contact.Events {
		eventViews[len(contact.Events)-1-i] = toEventView(event)
	}

	recent := eventViews
	if len(recent) > recentEventsWindow {
		recent = recent[:recentEventsWindow]
	}

	note, err := s.notes.Get(ctx, customerID, contact.LeadID)
	if err != nil {
		return transport.LeadDetailsResponse{}, err
	}

	return transport.LeadDetailsResponse{
		LeadSummary:  toLeadSummary(scoredLead{contact: contact, result: result}),
		Tags:         deriveTags(contact, result),
		RecentEvents: recent,
		Events:       eventViews,
		Note:         note,
	}, nil
}

// ClassifyMessage runs the per-message urgency classifier and publishes the
// outcome. A hot classification additionally raises a hot lead alert event.
func (s *Service) ClassifyMessage(ctx context.Context, customerID uuid.UUID, req transport.ClassifyMessageRequest) (transport.ClassificationResponse, error) {
	classification := s.classifier.Classify(ctx, customerID, req.Message, req.History)

	s.eventBus.Publish(ctx, events.MessageClassified{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customerID,
		Score:      classification.Score,
		IsHotLead:  classification.IsHotLead,
		Fallback:   classification.Fallback,
	})

	if classification.IsHotLead {
		s.eventBus.Publish(ctx, events.HotLeadDetected{
			BaseEvent:  events.NewBaseEvent(),
			CustomerID: customerID,
			LeadID:     classificationLeadID(req),
			UserName:   strings.TrimSpace(req.Name),
			UserEmail:  identity.NormalizeEmail(req.Email),
			UserPhone:  identity.NormalizePhone(req.Phone),
			Score:      classification.Score,
			Reasoning:  classification.Reasoning,
			Source:     "classifier",
		})
	}

	return transport.ClassificationResponse(classification), nil
}

// WarmContactCache recomputes and caches the contact snapshot for a
// customer. Invoked by the background score refresh task.
func (s *Service) WarmContactCache(ctx context.Context, customerID uuid.UUID) error {
	events, err := s.repo.ListEventsByCustomer(ctx, customerID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to load events", err)
	}
	s.cache.Set(ctx, customerID, identity.Resolve(events))
	return nil
}

// RegisterHandlers subscribes the service to domain events so cached
// contact snapshots never go stale after new interactions land.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe("interactions.recorded", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if recorded, ok := e.(events.InteractionRecorded); ok {
			s.cache.Invalidate(ctx, recorded.CustomerID)
		}
		return nil
	}))
	bus.Subscribe("interactions.behavior.detected", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if detected, ok := e.(events.BehaviorDetected); ok {
			s.cache.Invalidate(ctx, detected.CustomerID)
		}
		return nil
	}))
}

func (s *Service) resolveContacts(ctx context.Context, customerID uuid.UUID) ([]domain.Contact, error) {
	if cached, ok := s.cache.Get(ctx, customerID); ok {
		return cached, nil
	}

	stored, err := s.repo.ListEventsByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load events", err)
	}
	if len(stored) == 0 {
		return []domain.Contact{}, nil
	}

	contacts := identity.Resolve(stored)
	s.cache.Set(ctx, customerID, contacts)
	return contacts, nil
}

// scoreContacts computes each contact's score with bounded parallelism.
// Scoring is pure, so concurrent evaluation over a fixed instant is safe.
func (s *Service) scoreContacts(ctx context.Context, contacts []domain.Contact) ([]scoredLead, error) {
	now := s.now()
	scored := make([]scoredLead, len(contacts))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoringParallelism)

	for i, contact := range contacts {
		g.Go(func() error {
			scored[i] = scoredLead{contact: contact, result: scoring.Compute(contact.Events, now)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func filterLeads(scored []scoredLead, query transport.ListLeadsQuery) []scoredLead {
	channel := strings.ToLower(strings.TrimSpace(query.Channel))
	temperature := strings.ToLower(strings.TrimSpace(query.Temperature))
	search := strings.ToLower(strings.TrimSpace(query.Search))

	filtered := make([]scoredLead, 0, len(scored))
	for _, lead := range scored {
		if channel != "" && !hasChannel(lead.contact, channel) {
			continue
		}
		if temperature != "" && string(lead.result.Temperature) != temperature {
			continue
		}
		if search != "" && !matchesSearch(lead.contact, search) {
			continue
		}
		filtered = append(filtered, lead)
	}
	return filtered
}

func hasChannel(contact domain.Contact, channel string) bool {
	for _, c := range contact.Channels() {
		if strings.ToLower(c) == channel {
			return true
		}
	}
	return false
}

func matchesSearch(contact domain.Contact, search string) bool {
	for _, field := range []string{contact.Name, contact.Email, contact.Phone, contact.Company, contact.Location} {
		if field != "" && strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// sortLeads orders by score descending (default) or most recent event
// descending, with deterministic tie-breaking on lead id.
func sortLeads(scored []scoredLead, sortBy string) {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "recent":
		sort.SliceStable(scored, func(i, j int) bool {
			a, b := scored[i].contact.LastEventAt(), scored[j].contact.LastEventAt()
			if !a.Equal(b) {
				return a.After(b)
			}
			return scored[i].contact.LeadID < scored[j].contact.LeadID
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].result.Score != scored[j].result.Score {
				return scored[i].result.Score > scored[j].result.Score
			}
			a, b := scored[i].contact.LastEventAt(), scored[j].contact.LastEventAt()
			if !a.Equal(b) {
				return a.After(b)
			}
			return scored[i].contact.LeadID < scored[j].contact.LeadID
		})
	}
}

func classificationLeadID(req transport.ClassifyMessageRequest) string {
	if email := identity.NormalizeEmail(req.Email); email != "" {
		return email
	}
	if phone := identity.NormalizePhone(req.Phone); phone != "" {
		return phone
	}
	return identity.NormalizeName(req.Name)
}

func toLeadSummary(lead scoredLead) transport.LeadSummary {
	return transport.LeadSummary{
		LeadID:      lead.contact.LeadID,
		Name:        lead.contact.Name,
		Email:       lead.contact.Email,
		Phone:       lead.contact.Phone,
		Company:     lead.contact.Company,
		Location:    lead.contact.Location,
		Score:       lead.result.Score,
		Temperature: lead.result.Temperature,
		Breakdown:   lead.result.Breakdown,
		EventCount:  len(lead.contact.Events),
		Channels:    lead.contact.Channels(),
		LastEventAt: lead.contact.LastEventAt(),
		TotalValue:  lead.contact.TotalValue(),
	}
}

func toEventView(event domain.Event) transport.EventView {
	return transport.EventView{
		ID:        event.ID,
		EventType: event.EventType,
		Channel:   event.Channel,
		Message:   event.Message,
		Value:     event.Value,
		CreatedAt: event.CreatedAt,
	}
}
