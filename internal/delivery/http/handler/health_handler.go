package handler

import (
	"skill-radar/internal/aggregate"
	"skill-radar/internal/domain/taxonomy"
	"skill-radar/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	store *aggregate.Store
	tax   *taxonomy.Index
}

func NewHealthHandler(store *aggregate.Store, tax *taxonomy.Index) *HealthHandler {
	return &HealthHandler{store: store, tax: tax}
}

type healthResponse struct {
	Status  string `json:"status"`
	Skills  int    `json:"skills"`
	Records int    `json:"records"`
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, healthResponse{
		Status:  "healthy",
		Skills:  h.tax.Len(),
		Records: h.store.Len(),
	})
}
