// Package handler exposes the leads service over HTTP.
package handler

import (
	"net/http"

	"bizzybot_backend/internal/leads/service"
	"bizzybot_backend/internal/leads/transport"
	"bizzybot_backend/platform/httpkit"
	"bizzybot_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"
const msgValidationFailed = "validation failed"

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) ListLeads(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var query transport.ListLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.ListLeads(c.Request.Context(), customerID, query)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) GetLeadDetails(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	leadID := c.Param("leadId")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	resp, err := h.svc.GetLeadDetails(c.Request.Context(), customerID, leadID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) ClassifyMessage(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var req transport.ClassifyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.ClassifyMessage(c.Request.Context(), customerID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, resp)
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
