package repository

import (
	"context"
	"fmt"
	"sort"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/database"
)

// AggregateArchive persists aggregation records durably. Rows carry the
// exact (role, industry, region, period, skill, count) shape of the
// in-memory store, so a load followed by Restore is lossless.
type AggregateArchive interface {
	EnsureSchema(ctx context.Context) error
	Merge(ctx context.Context, key aggregate.Key, counts map[string]int) error
	LoadAll(ctx context.Context) ([]aggregate.Snapshot, error)
}

type PostgresAggregateArchive struct {
	db database.DB
}

func NewPostgresAggregateArchive(db database.DB) *PostgresAggregateArchive {
	return &PostgresAggregateArchive{db: db}
}

func (r *PostgresAggregateArchive) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS skill_counts (
			role_category     TEXT    NOT NULL,
			industry_category TEXT    NOT NULL,
			region_category   TEXT    NOT NULL,
			period            INTEGER NOT NULL,
			skill             TEXT    NOT NULL,
			count             INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (role_category, industry_category, region_category, period, skill)
		)`)
	if err != nil {
		return fmt.Errorf("ensure skill_counts schema: %w", err)
	}
	return nil
}

// Merge adds counts into the archived record, matching the store's
// additive semantics. All skills of one merge commit atomically.
func (r *PostgresAggregateArchive) Merge(ctx context.Context, key aggregate.Key, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}

	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, skill := range skills {
		n := counts[skill]
		if n <= 0 {
			continue
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO skill_counts (role_category, industry_category, region_category, period, skill, count)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (role_category, industry_category, region_category, period, skill)
			DO UPDATE SET count = skill_counts.count + EXCLUDED.count`,
			key.Role, key.Industry, key.Region, key.Period, skill, n,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadAll reads every archived record, grouped back into snapshots,
// for warm-starting the in-memory store.
func (r *PostgresAggregateArchive) LoadAll(ctx context.Context) ([]aggregate.Snapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT role_category, industry_category, region_category, period, skill, count
		FROM skill_counts
		ORDER BY role_category, industry_category, region_category, period, skill`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]aggregate.Snapshot, 0)
	var cur *aggregate.Snapshot
	for rows.Next() {
		var key aggregate.Key
		var skill string
		var count int
		if err := rows.Scan(&key.Role, &key.Industry, &key.Region, &key.Period, &skill, &count); err != nil {
			return nil, err
		}
		if cur == nil || cur.Key != key {
			out = append(out, aggregate.Snapshot{Key: key, SkillCounts: make(map[string]int)})
			cur = &out[len(out)-1]
		}
		cur.SkillCounts[skill] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
