// Package notes implements the lead note upsert and lookup use cases.
package notes

import (
	"context"
	"errors"
	"strings"

	"bizzybot_backend/internal/events"
	"bizzybot_backend/internal/leads/repository"
	"bizzybot_backend/internal/leads/transport"
	"bizzybot_backend/platform/apperr"
	"bizzybot_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service implements lead note persistence. One note exists per
// (customer, lead); every save replaces the previous text.
type Service struct {
	repo     repository.LeadsRepository
	eventBus events.Bus
}

// New creates a new notes service.
func New(repo repository.LeadsRepository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

// Save upserts the note for a lead. Saving twice results in exactly one
// stored row with the latest text.
func (s *Service) Save(ctx context.Context, customerID uuid.UUID, leadID string, authorID uuid.UUID, req transport.SaveNoteRequest) (transport.NoteResponse, error) {
	leadID = strings.TrimSpace(leadID)
	if leadID == "" {
		return transport.NoteResponse{}, apperr.BadRequest("lead id is required")
	}

	text := sanitize.Text(req.Notes)
	if text == "" {
		return transport.NoteResponse{}, apperr.BadRequest("note text is required")
	}

	note, err := s.repo.UpsertNote(ctx, repository.UpsertNoteParams{
		CustomerID: customerID,
		LeadID:     leadID,
		Notes:      text,
		UpdatedBy:  authorID,
	})
	if err != nil {
		return transport.NoteResponse{}, apperr.Wrap(apperr.KindInternal, "failed to save note", err)
	}

	s.eventBus.Publish(ctx, events.LeadNoteSaved{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customerID,
		LeadID:     leadID,
		UserID:     authorID,
	})

	return toNoteResponse(note), nil
}

// Get returns the note for a lead, or nil when none exists. Absence is a
// valid state, not an error.
func (s *Service) Get(ctx context.Context, customerID uuid.UUID, leadID string) (*transport.NoteResponse, error) {
	note, err := s.repo.GetNote(ctx, customerID, strings.TrimSpace(leadID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load note", err)
	}

	resp := toNoteResponse(note)
	return &resp, nil
}

func toNoteResponse(note repository.LeadNote) transport.NoteResponse {
	return transport.NoteResponse{
		LeadID:    note.LeadID,
		Notes:     note.Notes,
		UpdatedBy: note.UpdatedBy,
		UpdatedAt: note.UpdatedAt,
	}
}
