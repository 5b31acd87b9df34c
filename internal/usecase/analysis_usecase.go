package usecase

import (
	"context"
	"sort"
	"strings"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/domain/analysis"
	"skill-radar/internal/domain/extraction"
	"skill-radar/internal/domain/trend"
)

// ExtractedSkill is one recognized skill in a free-text input.
type ExtractedSkill struct {
	Skill    string
	Category string
	Count    int
}

type AnalysisUsecase interface {
	ExtractSkills(ctx context.Context, text string) ([]ExtractedSkill, error)
	Analyze(ctx context.Context, role, industry, region string) (analysis.Result, error)
	ListSkills(ctx context.Context) []string
}

type Analysis struct {
	extractor *extraction.Extractor
	store     *aggregate.Store
	topN      int
	scorer    trend.Scorer
	maxLen    int
}

func NewAnalysisUsecase(extractor *extraction.Extractor, store *aggregate.Store, topN int, threshold float64, maxLen int) *Analysis {
	if topN <= 0 {
		topN = analysis.DefaultTopN
	}
	if maxLen <= 0 {
		maxLen = extraction.DefaultMaxDescriptionLen
	}
	return &Analysis{
		extractor: extractor,
		store:     store,
		topN:      topN,
		scorer:    trend.NewScorer(threshold),
		maxLen:    maxLen,
	}
}

// ExtractSkills runs the free-text path: normalize, match, report.
// Input text is processed in memory only and never retained. Text with
// no recognizable skills yields an empty slice, not an error.
func (u *Analysis) ExtractSkills(ctx context.Context, text string) ([]ExtractedSkill, error) {
	_ = ctx

	normalized := extraction.Normalize(text, u.maxLen)
	found := u.extractor.Extract(normalized)

	out := make([]ExtractedSkill, 0, len(found))
	tax := u.extractor.Taxonomy()
	for skill, count := range found {
		out = append(out, ExtractedSkill{
			Skill:    skill,
			Category: tax.Category(skill),
			Count:    count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Skill < out[j].Skill })
	return out, nil
}

// Analyze runs the categorical path against the aggregation store.
// Empty category strings are a caller defect; an unknown category
// combination is a normal result with RoleRecognized=false.
func (u *Analysis) Analyze(ctx context.Context, role, industry, region string) (analysis.Result, error) {
	_ = ctx

	if strings.TrimSpace(role) == "" || strings.TrimSpace(industry) == "" || strings.TrimSpace(region) == "" {
		return analysis.Result{}, ErrInvalidInput
	}

	snaps := u.store.Query(role, industry, region)
	records := make([]analysis.PeriodCounts, 0, len(snaps))
	for _, snap := range snaps {
		records = append(records, analysis.PeriodCounts{Period: snap.Key.Period, Counts: snap.SkillCounts})
	}

	q := analysis.Query{Role: role, Industry: industry, Region: region}
	return analysis.Analyze(q, records, analysis.Options{TopN: u.topN, Scorer: u.scorer}), nil
}

func (u *Analysis) ListSkills(ctx context.Context) []string {
	_ = ctx
	return u.extractor.Taxonomy().Canonicals()
}
