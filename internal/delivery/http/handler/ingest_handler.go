package handler

import (
	"context"
	"errors"
	"time"

	"skill-radar/internal/ingestion"
	"skill-radar/internal/pkg/response"
	"skill-radar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type IngestHandler struct {
	uc     usecase.IngestionUsecase
	runner *ingestion.Runner
}

func NewIngestHandler(uc usecase.IngestionUsecase, runner *ingestion.Runner) *IngestHandler {
	return &IngestHandler{uc: uc, runner: runner}
}

type ingestRequest struct {
	Role     string   `json:"role"`
	Industry string   `json:"industry"`
	Region   string   `json:"region"`
	Period   int      `json:"period"`
	Text     string   `json:"text"`
	Texts    []string `json:"texts"`
}

type ingestResponse struct {
	Matched int `json:"matched"`
}

type ingestRunRequest struct {
	Role     string `json:"role"`
	Industry string `json:"industry"`
	Region   string `json:"region"`
	Period   int    `json:"period"`
	Workers  int    `json:"workers"`
}

type ingestRunSourceResponse struct {
	Source  string `json:"source"`
	Texts   int    `json:"texts"`
	Matched int    `json:"matched"`
	Error   string `json:"error,omitempty"`
}

type ingestRunResponse struct {
	RunID   string                    `json:"run_id"`
	Matched int                       `json:"matched"`
	Sources []ingestRunSourceResponse `json:"sources"`
}

func (h *IngestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/ingest")
	grp.Post("/", h.Ingest)
	grp.Post("/batch", h.IngestBatch)
	grp.Post("/run", h.Run)
}

func (h *IngestHandler) Ingest(c fiber.Ctx) error {
	var req ingestRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	matched, err := h.uc.Ingest(c.Context(), req.Role, req.Industry, req.Region, req.Period, req.Text)
	if err != nil {
		return ingestError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ingestResponse{Matched: matched})
}

func (h *IngestHandler) IngestBatch(c fiber.Ctx) error {
	var req ingestRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	matched, err := h.uc.IngestBatch(c.Context(), req.Role, req.Industry, req.Region, req.Period, req.Texts)
	if err != nil {
		return ingestError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ingestResponse{Matched: matched})
}

// Run executes the built-in sources (mock postings plus GitHub search)
// synchronously; progress is also streamed over the ws hub.
func (h *IngestHandler) Run(c fiber.Ctx) error {
	if h.runner == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "ingestion runner not configured", nil)
	}

	var req ingestRunRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	sources := []ingestion.Source{
		ingestion.NewPostingsSource(0),
		ingestion.NewGitHubSource(0, false, nil),
	}
	report, err := h.runner.Run(ctx, sources, ingestion.RunParams{
		Role:     req.Role,
		Industry: req.Industry,
		Region:   req.Region,
		Period:   req.Period,
		Workers:  req.Workers,
	})
	if err != nil {
		if errors.Is(err, ingestion.ErrRunInProgress) {
			return response.Error(c, fiber.StatusConflict, "an ingestion run for these categories is already in progress", nil)
		}
		return ingestError(c, err)
	}

	res := ingestRunResponse{RunID: report.RunID.String(), Matched: report.Matched}
	for _, sr := range report.Sources {
		item := ingestRunSourceResponse{Source: sr.Source, Texts: sr.Texts, Matched: sr.Matched}
		if sr.Err != nil {
			item.Error = sr.Err.Error()
		}
		res.Sources = append(res.Sources, item)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func ingestError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return response.Error(c, fiber.StatusBadRequest, "role, industry and region are required", nil)
	case errors.Is(err, usecase.ErrInvalidPeriod):
		return response.Error(c, fiber.StatusBadRequest, "period must be a positive integer", nil)
	default:
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}
}
