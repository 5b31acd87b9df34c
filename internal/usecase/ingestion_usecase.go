package usecase

import (
	"context"
	"log"
	"strings"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/domain/extraction"
)

// Archive is an optional persistence collaborator that mirrors every
// additive merge, in the same lossless record shape the store holds.
type Archive interface {
	Merge(ctx context.Context, key aggregate.Key, counts map[string]int) error
}

type IngestionUsecase interface {
	Ingest(ctx context.Context, role, industry, region string, period int, text string) (int, error)
	IngestBatch(ctx context.Context, role, industry, region string, period int, texts []string) (int, error)
}

type Ingestion struct {
	extractor *extraction.Extractor
	store     *aggregate.Store
	archive   Archive
	maxLen    int
	batchLen  int
	logger    *log.Logger
}

func NewIngestionUsecase(extractor *extraction.Extractor, store *aggregate.Store, archive Archive, maxLen, batchLen int, logger *log.Logger) *Ingestion {
	if maxLen <= 0 {
		maxLen = extraction.DefaultMaxDescriptionLen
	}
	if batchLen <= 0 {
		batchLen = extraction.DefaultMaxBatchLen
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Ingestion{
		extractor: extractor,
		store:     store,
		archive:   archive,
		maxLen:    maxLen,
		batchLen:  batchLen,
		logger:    logger,
	}
}

// Ingest normalizes and extracts one source text, then merges the
// counts into the (role, industry, region, period) record. The merge is
// additive: ingesting the same text twice doubles that period's
// counts. Returns the number of occurrences recorded.
func (u *Ingestion) Ingest(ctx context.Context, role, industry, region string, period int, text string) (int, error) {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(industry) == "" || strings.TrimSpace(region) == "" {
		return 0, ErrInvalidInput
	}
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}

	normalized := extraction.Normalize(text, u.maxLen)
	found := u.extractor.Extract(normalized)
	if len(found) == 0 {
		return 0, nil
	}

	u.store.Record(role, industry, region, period, found)

	if u.archive != nil {
		key := aggregate.NewKey(role, industry, region, period)
		if err := u.archive.Merge(ctx, key, found); err != nil {
			// The in-memory store is authoritative; archiving is best effort.
			u.logger.Printf("ingest archive merge failed | key=%v err=%v", key, err)
		}
	}

	return found.Total(), nil
}

// IngestBatch ingests several texts into the same record, bounding the
// combined input at the batch limit. Texts past the budget are dropped.
func (u *Ingestion) IngestBatch(ctx context.Context, role, industry, region string, period int, texts []string) (int, error) {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(industry) == "" || strings.TrimSpace(region) == "" {
		return 0, ErrInvalidInput
	}
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}

	total := 0
	budget := u.batchLen
	for _, text := range texts {
		if budget <= 0 {
			break
		}
		limit := u.maxLen
		if budget < limit {
			limit = budget
		}
		n, err := u.Ingest(ctx, role, industry, region, period, extraction.Normalize(text, limit))
		if err != nil {
			return total, err
		}
		total += n
		budget -= len([]rune(text))
	}
	return total, nil
}
