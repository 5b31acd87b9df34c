package ingestion

import (
	"context"
	"errors"
	"testing"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/domain/extraction"
	"skill-radar/internal/domain/taxonomy"
	"skill-radar/internal/usecase"
)

type staticSource struct {
	name  string
	texts []string
	err   error
}

func (s staticSource) Name() string { return s.name }
func (s staticSource) Texts(context.Context, string, string) ([]string, error) {
	return s.texts, s.err
}

func runnerFixture() (*Runner, *aggregate.Store) {
	ext := extraction.NewExtractor(taxonomy.NewIndex([]taxonomy.Entry{
		{Canonical: "Go", Category: "Language", Aliases: []string{"golang"}},
		{Canonical: "Python", Category: "Language", Aliases: []string{"py"}},
	}))
	store := aggregate.NewStore()
	ingest := usecase.NewIngestionUsecase(ext, store, nil, 0, 0, nil)
	return NewRunner(ingest, store, nil, nil), store
}

func TestRunner_Run(t *testing.T) {
	r, store := runnerFixture()

	sources := []Source{
		staticSource{name: "alpha", texts: []string{"golang services", "more golang"}},
		staticSource{name: "beta", texts: []string{"python pipelines"}},
	}
	report, err := r.Run(context.Background(), sources, RunParams{
		Role: "Backend Engineer", Industry: "FinTech", Region: "Remote", Period: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Matched != 3 {
		t.Fatalf("expected 3 total matches, got %d", report.Matched)
	}
	if len(report.Sources) != 2 {
		t.Fatalf("expected 2 source reports, got %d", len(report.Sources))
	}
	// Reports are sorted by source name.
	if report.Sources[0].Source != "alpha" || report.Sources[1].Source != "beta" {
		t.Fatalf("expected alphabetical source order, got %+v", report.Sources)
	}
	if report.Sources[0].Matched != 2 || report.Sources[1].Matched != 1 {
		t.Fatalf("unexpected per-source matches: %+v", report.Sources)
	}

	snaps := store.Query("backend engineer", "fintech", "remote")
	if len(snaps) != 1 || snaps[0].SkillCounts["Go"] != 2 || snaps[0].SkillCounts["Python"] != 1 {
		t.Fatalf("unexpected store state: %v", snaps)
	}
}

func TestRunner_SourceFailureIsIsolated(t *testing.T) {
	r, _ := runnerFixture()

	sources := []Source{
		staticSource{name: "bad", err: errors.New("connection refused")},
		staticSource{name: "good", texts: []string{"golang"}},
	}
	report, err := r.Run(context.Background(), sources, RunParams{
		Role: "r", Industry: "i", Region: "g", Period: 1,
	})
	if err != nil {
		t.Fatalf("one failing source must not fail the run, got %v", err)
	}
	if report.Matched != 1 {
		t.Fatalf("expected the healthy source to contribute, got %d", report.Matched)
	}

	var badReport *SourceReport
	for n := range report.Sources {
		if report.Sources[n].Source == "bad" {
			badReport = &report.Sources[n]
		}
	}
	if badReport == nil || badReport.Err == nil {
		t.Fatalf("expected the failing source's error to be reported, got %+v", report.Sources)
	}
}

func TestRunner_Validation(t *testing.T) {
	r, _ := runnerFixture()
	src := []Source{staticSource{name: "s"}}

	if _, err := r.Run(context.Background(), src, RunParams{Industry: "i", Region: "g", Period: 1}); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := r.Run(context.Background(), src, RunParams{Role: "r", Industry: "i", Region: "g", Period: 0}); !errors.Is(err, usecase.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestRunner_NoSources(t *testing.T) {
	r, _ := runnerFixture()
	report, err := r.Run(context.Background(), nil, RunParams{Role: "r", Industry: "i", Region: "g", Period: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Matched != 0 || len(report.Sources) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestPostingsSource_FiltersByRole(t *testing.T) {
	src := NewPostingsSource(2)
	texts, err := src.Texts(context.Background(), "Backend Engineer", "FinTech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("expected limit of 2 texts, got %d", len(texts))
	}
}

func TestPostingsSource_TopsUpWhenFilterIsNarrow(t *testing.T) {
	src := NewPostingsSource(4)
	texts, err := src.Texts(context.Background(), "Astronaut", "Space")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 4 {
		t.Fatalf("expected generic top-up to the limit, got %d", len(texts))
	}
}
