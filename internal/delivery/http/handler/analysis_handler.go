package handler

import (
	"errors"

	"skill-radar/internal/domain/analysis"
	"skill-radar/internal/pkg/response"
	"skill-radar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalysisHandler struct {
	uc usecase.AnalysisUsecase
}

func NewAnalysisHandler(uc usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

type analyzeRequest struct {
	Role     string `json:"role"`
	Industry string `json:"industry"`
	Region   string `json:"region"`
}

type trendingSkillResponse struct {
	Skill     string  `json:"skill"`
	Trend     string  `json:"trend"`
	Magnitude float64 `json:"magnitude"`
}

type analyzeResponse struct {
	TopSkills         []string                `json:"top_skills"`
	TrendingSkills    []trendingSkillResponse `json:"trending_skills"`
	RecommendedSkills []string                `json:"recommended_skills"`
	RoleRecognized    bool                    `json:"role_recognized"`
	Message           string                  `json:"message,omitempty"`
	Summary           trendSummaryResponse    `json:"trend_summary"`
}

type trendSummaryResponse struct {
	Rising    []trendingSkillResponse `json:"rising"`
	Stable    []trendingSkillResponse `json:"stable"`
	Declining []trendingSkillResponse `json:"declining"`
}

type extractRequest struct {
	Text string `json:"text"`
}

type extractedSkillResponse struct {
	Skill    string `json:"skill"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/analyze", h.Analyze)
	grp := r.Group("/skills")
	grp.Get("/", h.ListSkills)
	grp.Post("/extract", h.Extract)
}

func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	var req analyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	res, err := h.uc.Analyze(c.Context(), req.Role, req.Industry, req.Region)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return response.Error(c, fiber.StatusBadRequest, "role, industry and region are required", nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toAnalyzeResponse(res))
}

func (h *AnalysisHandler) Extract(c fiber.Ctx) error {
	var req extractRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	items, err := h.uc.ExtractSkills(c.Context(), req.Text)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	res := make([]extractedSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, extractedSkillResponse{Skill: it.Skill, Category: it.Category, Count: it.Count})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AnalysisHandler) ListSkills(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.ListSkills(c.Context()))
}

func toAnalyzeResponse(res analysis.Result) analyzeResponse {
	return analyzeResponse{
		TopSkills:         res.TopSkills,
		TrendingSkills:    toTrending(res.TrendingSkills),
		RecommendedSkills: res.RecommendedSkills,
		RoleRecognized:    res.RoleRecognized,
		Message:           res.Advisory,
		Summary: trendSummaryResponse{
			Rising:    toTrending(res.Summary.Rising),
			Stable:    toTrending(res.Summary.Stable),
			Declining: toTrending(res.Summary.Declining),
		},
	}
}

func toTrending(items []analysis.TrendingSkill) []trendingSkillResponse {
	out := make([]trendingSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, trendingSkillResponse{
			Skill:     it.Skill,
			Trend:     string(it.Direction),
			Magnitude: it.Magnitude,
		})
	}
	return out
}
