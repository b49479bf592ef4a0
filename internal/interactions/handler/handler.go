// Package handler exposes the interactions service over HTTP.
package handler

import (
	"net/http"

	"bizzybot_backend/internal/interactions/service"
	"bizzybot_backend/internal/interactions/transport"
	"bizzybot_backend/platform/httpkit"
	"bizzybot_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"
const msgValidationFailed = "validation failed"

// Handler handles HTTP requests for interaction events.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new interactions handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RecordEvent(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var req transport.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	created, err := h.svc.Record(c.Request.Context(), customerID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, created)
}

func (h *Handler) ListEvents(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), customerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, list)
}

func (h *Handler) AnalyzeBehaviors(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var req transport.AnalyzeBehaviorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AnalyzeBehaviors(c.Request.Context(), customerID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, result)
}

func customerFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(httpkit.ContextCustomerIDKey)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	customerID, ok := value.(uuid.UUID)
	if !ok || customerID == uuid.Nil {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return customerID, true
}
