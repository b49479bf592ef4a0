package handler

import (
	"net/http"

	"bizzybot_backend/internal/leads/notes"
	"bizzybot_backend/internal/leads/transport"
	"bizzybot_backend/platform/httpkit"
	"bizzybot_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotesHandler handles HTTP requests for lead notes.
// This is separate from the main Handler to allow independent wiring.
type NotesHandler struct {
	svc *notes.Service
	val *validator.Validator
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(svc *notes.Service, val *validator.Validator) *NotesHandler {
	return &NotesHandler{svc: svc, val: val}
}

func (h *NotesHandler) SaveNote(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	leadID := c.Param("leadId")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	authorIDValue, ok := c.Get(httpkit.ContextUserIDKey)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	authorID := authorIDValue.(uuid.UUID)

	saved, err := h.svc.Save(c.Request.Context(), customerID, leadID, authorID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, saved)
}

func (h *NotesHandler) GetNote(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	leadID := c.Param("leadId")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	note, err := h.svc.Get(c.Request.Context(), customerID, leadID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, gin.H{"note": note})
}
