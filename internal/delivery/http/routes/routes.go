package routes

import (
	"skill-radar/internal/delivery/http/handler"
	"skill-radar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	analysis *handler.AnalysisHandler
	ingest   *handler.IngestHandler
	events   *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, analysis *handler.AnalysisHandler, ingest *handler.IngestHandler, events *ws.Handler) *Registry {
	return &Registry{health: health, analysis: analysis, ingest: ingest, events: events}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	r.analysis.RegisterRoutes(v1)
	r.ingest.RegisterRoutes(v1)

	if r.events != nil {
		app.Get("/ws/ingest", r.events.HandleIngestWS)
	}
}
