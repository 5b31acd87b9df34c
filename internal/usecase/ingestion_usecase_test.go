package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skill-radar/internal/aggregate"
)

type mockArchive struct {
	keys   []aggregate.Key
	counts []map[string]int
	err    error
}

func (m *mockArchive) Merge(_ context.Context, key aggregate.Key, counts map[string]int) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, key)
	m.counts = append(m.counts, counts)
	return nil
}

func TestIngestionUsecase_Ingest(t *testing.T) {
	store := aggregate.NewStore()
	uc := NewIngestionUsecase(testExtractor(), store, nil, 0, 0, nil)

	matched, err := uc.Ingest(context.Background(), "Backend Engineer", "FinTech", "Remote", 1,
		"Looking for Golang and Docker experience. Golang preferred.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 3 {
		t.Fatalf("expected 3 occurrences, got %d", matched)
	}

	snaps := store.Query("backend engineer", "fintech", "remote")
	if len(snaps) != 1 {
		t.Fatalf("expected 1 record, got %d", len(snaps))
	}
	if snaps[0].SkillCounts["Go"] != 2 || snaps[0].SkillCounts["Docker"] != 1 {
		t.Fatalf("unexpected counts: %v", snaps[0].SkillCounts)
	}
}

func TestIngestionUsecase_IngestTwiceDoubles(t *testing.T) {
	store := aggregate.NewStore()
	uc := NewIngestionUsecase(testExtractor(), store, nil, 0, 0, nil)

	ctx := context.Background()
	text := "golang and python"
	for i := 0; i < 2; i++ {
		if _, err := uc.Ingest(ctx, "r", "i", "g", 1, text); err != nil {
			t.Fatalf("ingest %d failed: %v", i, err)
		}
	}

	snaps := store.Query("r", "i", "g")
	if snaps[0].SkillCounts["Go"] != 2 || snaps[0].SkillCounts["Python"] != 2 {
		t.Fatalf("expected doubled counts, got %v", snaps[0].SkillCounts)
	}
}

func TestIngestionUsecase_Validation(t *testing.T) {
	uc := NewIngestionUsecase(testExtractor(), aggregate.NewStore(), nil, 0, 0, nil)
	ctx := context.Background()

	if _, err := uc.Ingest(ctx, "", "i", "g", 1, "golang"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty role, got %v", err)
	}
	if _, err := uc.Ingest(ctx, "r", "i", "g", 0, "golang"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod for period 0, got %v", err)
	}
	if _, err := uc.Ingest(ctx, "r", "i", "g", -3, "golang"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod for negative period, got %v", err)
	}
	if _, err := uc.IngestBatch(ctx, "r", " ", "g", 1, []string{"golang"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank industry, got %v", err)
	}
}

func TestIngestionUsecase_NoMatchesIsNotAnError(t *testing.T) {
	store := aggregate.NewStore()
	uc := NewIngestionUsecase(testExtractor(), store, nil, 0, 0, nil)

	matched, err := uc.Ingest(context.Background(), "r", "i", "g", 1, "team player with great attitude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 0 {
		t.Fatalf("expected 0 matches, got %d", matched)
	}
	if store.Len() != 0 {
		t.Fatal("no-match ingestion must not create a record")
	}
}

func TestIngestionUsecase_ArchiveMirrorsMerges(t *testing.T) {
	arch := &mockArchive{}
	uc := NewIngestionUsecase(testExtractor(), aggregate.NewStore(), arch, 0, 0, nil)

	if _, err := uc.Ingest(context.Background(), "Backend Engineer", "FinTech", "Remote", 2, "golang"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(arch.keys) != 1 {
		t.Fatalf("expected 1 archive merge, got %d", len(arch.keys))
	}
	want := aggregate.NewKey("Backend Engineer", "FinTech", "Remote", 2)
	if arch.keys[0] != want {
		t.Fatalf("expected key %+v, got %+v", want, arch.keys[0])
	}
	if arch.counts[0]["Go"] != 1 {
		t.Fatalf("expected Go count 1 in archive, got %v", arch.counts[0])
	}
}

func TestIngestionUsecase_ArchiveFailureIsBestEffort(t *testing.T) {
	store := aggregate.NewStore()
	arch := &mockArchive{err: errors.New("db down")}
	uc := NewIngestionUsecase(testExtractor(), store, arch, 0, 0, nil)

	matched, err := uc.Ingest(context.Background(), "r", "i", "g", 1, "golang")
	if err != nil {
		t.Fatalf("archive failure must not fail ingestion, got %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 match, got %d", matched)
	}
	if store.Len() != 1 {
		t.Fatal("store must still hold the record")
	}
}

func TestIngestionUsecase_IngestBatch(t *testing.T) {
	store := aggregate.NewStore()
	uc := NewIngestionUsecase(testExtractor(), store, nil, 0, 0, nil)

	matched, err := uc.IngestBatch(context.Background(), "r", "i", "g", 1, []string{
		"golang backend",
		"python and docker",
		"",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 3 {
		t.Fatalf("expected 3 total matches, got %d", matched)
	}

	snaps := store.Query("r", "i", "g")
	if len(snaps) != 1 {
		t.Fatalf("batch must merge into one record, got %d", len(snaps))
	}
}

func TestIngestionUsecase_BatchBudgetDropsOverflow(t *testing.T) {
	store := aggregate.NewStore()
	// Batch budget of 10 runes: the second text never gets processed.
	uc := NewIngestionUsecase(testExtractor(), store, nil, 100, 10, nil)

	matched, err := uc.IngestBatch(context.Background(), "r", "i", "g", 1, []string{
		strings.Repeat("x", 10),
		"golang",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 0 {
		t.Fatalf("expected overflow text to be dropped, got %d matches", matched)
	}
}
