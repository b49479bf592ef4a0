// Package leads provides the leads bounded context module: scoring,
// identity resolution, notes, and per-message classification.
package leads

import (
	"time"

	"bizzybot_backend/internal/events"
	apphttp "bizzybot_backend/internal/http"
	"bizzybot_backend/internal/leads/handler"
	"bizzybot_backend/internal/leads/hotlead"
	"bizzybot_backend/internal/leads/identity"
	"bizzybot_backend/internal/leads/notes"
	"bizzybot_backend/internal/leads/repository"
	"bizzybot_backend/internal/leads/service"
	"bizzybot_backend/platform/config"
	"bizzybot_backend/platform/logger"
	"bizzybot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ModuleConfig combines the config interfaces the leads module needs.
type ModuleConfig interface {
	config.ReasoningConfig
	config.CacheConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler      *handler.Handler
	notesHandler *handler.NotesHandler
	svc          *service.Service
}

// NewModule creates and initializes the leads module with all its
// dependencies. redisClient may be nil; contact snapshots are then
// recomputed on every query.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, eventBus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)

	ttl := cfg.GetContactCacheTTL()
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cache := identity.NewCache(redisClient, ttl, log)

	classifier, err := hotlead.NewClassifier(cfg, log)
	if err != nil {
		return nil, err
	}

	notesSvc := notes.New(repo, eventBus)
	svc := service.New(repo, cache, notesSvc, classifier, eventBus, log)
	svc.RegisterHandlers(eventBus)

	return &Module{
		handler:      handler.New(svc, val),
		notesHandler: handler.NewNotesHandler(notesSvc, val),
		svc:          svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service exposes the leads service for cross-module wiring (e.g., the
// background score refresh worker).
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leads")
	group.GET("", m.handler.ListLeads)
	group.GET("/:leadId", m.handler.GetLeadDetails)
	group.PUT("/:leadId/notes", m.notesHandler.SaveNote)
	group.GET("/:leadId/notes", m.notesHandler.GetNote)

	ctx.Protected.POST("/messages/classify", m.handler.ClassifyMessage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
