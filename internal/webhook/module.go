package webhook

import (
	"bizzybot_backend/internal/events"
	apphttp "bizzybot_backend/internal/http"
	"bizzybot_backend/platform/logger"
	"bizzybot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	store   KeyStore
}

// NewModule creates and initializes the webhook module with all its dependencies.
func NewModule(pool *pgxpool.Pool, recorder InteractionRecorder, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	store := NewRepository(pool)
	service := NewService(recorder, eventBus, log)
	handler := NewHandler(service, store, val)

	return &Module{
		handler: handler,
		store:   store,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public ingest endpoint (API key auth, no JWT)
	ingest := ctx.V1.Group("/webhook")
	ingest.Use(APIKeyAuthMiddleware(m.store))
	ingest.POST("/messages", m.handler.HandleInboundMessage)

	// API key management (JWT auth)
	keys := ctx.Protected.Group("/webhook/keys")
	keys.POST("", m.handler.HandleCreateAPIKey)
	keys.GET("", m.handler.HandleListAPIKeys)
	keys.DELETE("/:keyId", m.handler.HandleRevokeAPIKey)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
