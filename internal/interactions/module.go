// Package interactions provides the interaction-events bounded context module.
// This file defines the module that encapsulates setup and route registration.
package interactions

import (
	"bizzybot_backend/internal/events"
	apphttp "bizzybot_backend/internal/http"
	"bizzybot_backend/internal/interactions/handler"
	"bizzybot_backend/internal/interactions/repository"
	"bizzybot_backend/internal/interactions/service"
	"bizzybot_backend/platform/logger"
	"bizzybot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the interactions bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    repository.EventsRepository
}

// NewModule creates and initializes the interactions module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "interactions"
}

// Service exposes the interactions service for cross-module wiring
// (e.g., webhook ingest).
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts interaction routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/events")
	group.POST("", m.handler.RecordEvent)
	group.GET("", m.handler.ListEvents)

	ctx.Protected.POST("/behaviors/analyze", m.handler.AnalyzeBehaviors)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
