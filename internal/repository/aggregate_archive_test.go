package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/database"
)

type execCall struct {
	query string
	args  []any
}

type fakeTx struct {
	execs      []execCall
	execErr    error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	if t.execErr != nil {
		return 0, t.execErr
	}
	t.execs = append(t.execs, execCall{query: query, args: args})
	return 1, nil
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	for n := range dest {
		switch d := dest[n].(type) {
		case *string:
			*d = row[n].(string)
		case *int:
			*d = row[n].(int)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeDB struct {
	execs     []execCall
	tx        *fakeTx
	txExecErr error
	rows      *fakeRows
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }

func (d *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	d.execs = append(d.execs, execCall{query: query, args: args})
	return 0, nil
}

func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return d.rows, nil
}

func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	d.tx = &fakeTx{execErr: d.txExecErr}
	return d.tx, nil
}

func TestAggregateArchive_EnsureSchema(t *testing.T) {
	db := &fakeDB{}
	arch := NewPostgresAggregateArchive(db)

	if err := arch.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.execs) != 1 || !strings.Contains(db.execs[0].query, "CREATE TABLE IF NOT EXISTS skill_counts") {
		t.Fatalf("unexpected schema statement: %+v", db.execs)
	}
}

func TestAggregateArchive_MergeUpserts(t *testing.T) {
	db := &fakeDB{}
	arch := NewPostgresAggregateArchive(db)

	key := aggregate.NewKey("Backend Engineer", "FinTech", "Remote", 2)
	err := arch.Merge(context.Background(), key, map[string]int{"Go": 3, "Docker": 1, "Stale": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.tx == nil || !db.tx.committed {
		t.Fatal("merge must commit a transaction")
	}
	// Non-positive counts are skipped; skills are upserted in sorted order.
	if len(db.tx.execs) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(db.tx.execs))
	}
	if db.tx.execs[0].args[4] != "Docker" || db.tx.execs[1].args[4] != "Go" {
		t.Fatalf("expected sorted skill order, got %+v", db.tx.execs)
	}
	if !strings.Contains(db.tx.execs[0].query, "ON CONFLICT") {
		t.Fatalf("expected an upsert statement, got %q", db.tx.execs[0].query)
	}
	if db.tx.execs[1].args[0] != "backend engineer" {
		t.Fatalf("expected canonicalized key in args, got %v", db.tx.execs[1].args)
	}
}

func TestAggregateArchive_MergeEmptyIsNoOp(t *testing.T) {
	db := &fakeDB{}
	arch := NewPostgresAggregateArchive(db)

	if err := arch.Merge(context.Background(), aggregate.Key{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.tx != nil {
		t.Fatal("empty merge must not open a transaction")
	}
}

func TestAggregateArchive_MergeRollsBackOnError(t *testing.T) {
	db := &fakeDB{txExecErr: errors.New("disk full")}
	arch := NewPostgresAggregateArchive(db)

	err := arch.Merge(context.Background(), aggregate.NewKey("r", "i", "g", 1), map[string]int{"Go": 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if db.tx.committed {
		t.Fatal("failed merge must not commit")
	}
	if !db.tx.rolledBack {
		t.Fatal("failed merge must roll back")
	}
}

func TestAggregateArchive_LoadAllGroupsRows(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{rows: [][]any{
		{"backend engineer", "fintech", "remote", 1, "Go", 5},
		{"backend engineer", "fintech", "remote", 1, "Python", 2},
		{"backend engineer", "fintech", "remote", 2, "Go", 7},
		{"data scientist", "healthcare", "onsite", 1, "Python", 9},
	}}}
	arch := NewPostgresAggregateArchive(db)

	snaps, err := arch.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []aggregate.Snapshot{
		{Key: aggregate.Key{Role: "backend engineer", Industry: "fintech", Region: "remote", Period: 1},
			SkillCounts: map[string]int{"Go": 5, "Python": 2}},
		{Key: aggregate.Key{Role: "backend engineer", Industry: "fintech", Region: "remote", Period: 2},
			SkillCounts: map[string]int{"Go": 7}},
		{Key: aggregate.Key{Role: "data scientist", Industry: "healthcare", Region: "onsite", Period: 1},
			SkillCounts: map[string]int{"Python": 9}},
	}
	if !reflect.DeepEqual(snaps, want) {
		t.Fatalf("expected %+v, got %+v", want, snaps)
	}
}
