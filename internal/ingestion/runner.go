package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/infrastructure/cache"
	"skill-radar/internal/usecase"
	"skill-radar/internal/ws"
)

var ErrRunInProgress = errors.New("ingestion run already in progress")

// Source feeds raw text into the engine. Implementations do the I/O;
// the runner normalizes, extracts and records through the usecase.
type Source interface {
	Name() string
	Texts(ctx context.Context, role, industry string) ([]string, error)
}

type RunParams struct {
	Role     string
	Industry string
	Region   string
	Period   int
	Workers  int
	// RatePerSec throttles source fetches; 0 means unthrottled.
	RatePerSec int
}

type SourceReport struct {
	Source  string
	Texts   int
	Matched int
	Err     error
}

type Report struct {
	RunID   uuid.UUID
	Sources []SourceReport
	Matched int
	Elapsed time.Duration
}

// Runner fans ingestion sources out over a worker pool, guarded by a
// per-category run lock so overlapping runs don't double-ingest.
type Runner struct {
	ingest usecase.IngestionUsecase
	store  *aggregate.Store
	locks  *cache.Redis
	logger *log.Logger
}

func NewRunner(ingest usecase.IngestionUsecase, store *aggregate.Store, locks *cache.Redis, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{ingest: ingest, store: store, locks: locks, logger: logger}
}

func (r *Runner) Run(ctx context.Context, sources []Source, p RunParams) (Report, error) {
	started := time.Now()
	report := Report{RunID: uuid.New()}

	if strings.TrimSpace(p.Role) == "" || strings.TrimSpace(p.Industry) == "" || strings.TrimSpace(p.Region) == "" {
		return report, usecase.ErrInvalidInput
	}
	if p.Period <= 0 {
		return report, usecase.ErrInvalidPeriod
	}
	if len(sources) == 0 {
		return report, nil
	}
	workers := p.Workers
	if workers <= 0 {
		workers = len(sources)
	}

	lockKey := runLockKey(p)
	if r.locks != nil {
		ok, err := r.locks.SetIfNotExists(ctx, lockKey, report.RunID.String(), 5*time.Minute)
		if err == nil && !ok {
			return report, ErrRunInProgress
		}
		defer func() {
			_ = r.locks.Delete(context.Background(), lockKey)
		}()
	}

	pool := NewWorkerPool(workers, len(sources))
	if p.RatePerSec > 0 {
		pool.SetRateLimit(p.RatePerSec)
	}
	results := pool.Run(ctx)

	var mu sync.Mutex
	bySource := make(map[string]*SourceReport, len(sources))

	for _, src := range sources {
		src := src
		name := src.Name()
		bySource[name] = &SourceReport{Source: name}

		pool.Submit(name, func(ctx context.Context) error {
			texts, err := src.Texts(ctx, p.Role, p.Industry)
			if err != nil {
				r.notify(report.RunID, name, p, 0, err)
				return fmt.Errorf("source %s: %w", name, err)
			}

			matched, err := r.ingest.IngestBatch(ctx, p.Role, p.Industry, p.Region, p.Period, texts)

			mu.Lock()
			sr := bySource[name]
			sr.Texts = len(texts)
			sr.Matched = matched
			mu.Unlock()

			r.notify(report.RunID, name, p, matched, err)
			if err != nil {
				return fmt.Errorf("source %s: %w", name, err)
			}
			r.logger.Printf("ingestion source done | run=%s source=%s texts=%d matched=%d",
				report.RunID, name, len(texts), matched)
			return nil
		})
	}
	pool.Close()

	for res := range results {
		mu.Lock()
		if sr, ok := bySource[res.Label]; ok && res.Err != nil {
			sr.Err = res.Err
		}
		mu.Unlock()
	}

	names := make([]string, 0, len(bySource))
	for name := range bySource {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sr := bySource[name]
		report.Sources = append(report.Sources, *sr)
		report.Matched += sr.Matched
	}
	report.Elapsed = time.Since(started)

	// Mirror the updated store so a cold process can warm-start from
	// cache when no archive database is configured.
	if r.locks != nil && r.store != nil && report.Matched > 0 {
		if err := r.locks.SaveSnapshot(ctx, r.store.Snapshots()); err != nil {
			r.logger.Printf("snapshot mirror failed | run=%s err=%v", report.RunID, err)
		}
	}

	r.logger.Printf("ingestion run finished | run=%s sources=%d matched=%d elapsed=%s",
		report.RunID, len(report.Sources), report.Matched, report.Elapsed)
	return report, ctx.Err()
}

func (r *Runner) notify(runID uuid.UUID, source string, p RunParams, matched int, err error) {
	evt := ws.IngestEvent{
		Type:     "ingest_progress",
		RunID:    runID.String(),
		Source:   source,
		Role:     aggregate.CanonicalCategory(p.Role),
		Industry: aggregate.CanonicalCategory(p.Industry),
		Region:   aggregate.CanonicalCategory(p.Region),
		Period:   p.Period,
		Matched:  matched,
	}
	if err != nil {
		evt.Type = "ingest_error"
		evt.Error = err.Error()
	}
	ws.NotifyIngest(evt)
}

func runLockKey(p RunParams) string {
	return fmt.Sprintf("ingest:lock:%s|%s|%s|%d",
		aggregate.CanonicalCategory(p.Role),
		aggregate.CanonicalCategory(p.Industry),
		aggregate.CanonicalCategory(p.Region),
		p.Period,
	)
}
