package aggregate

import (
	"sort"
	"strings"
	"sync"
)

// Key identifies one aggregation record. Category fields are stored in
// canonical form (trimmed, lowercased) so "FinTech" and "fintech "
// collide correctly; this is canonicalization, not fuzzy matching.
type Key struct {
	Role     string `json:"role_category"`
	Industry string `json:"industry_category"`
	Region   string `json:"region_category"`
	Period   int    `json:"period"`
}

// CanonicalCategory applies the store's category canonicalization rule.
func CanonicalCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func NewKey(role, industry, region string, period int) Key {
	return Key{
		Role:     CanonicalCategory(role),
		Industry: CanonicalCategory(industry),
		Region:   CanonicalCategory(region),
		Period:   period,
	}
}

// Snapshot is a detached copy of one record, safe to read while
// ingestion keeps writing.
type Snapshot struct {
	Key         Key            `json:"key"`
	SkillCounts map[string]int `json:"skill_counts"`
}

type record struct {
	mu     sync.Mutex
	counts map[string]int
}

// Store holds per-(role, industry, region, period) skill tallies.
// Layout is arena+index: the index map is guarded by a RWMutex for
// lookup/insert only, and each record carries its own mutex so
// concurrent ingestion into different keys never serializes and
// ingestion into the same key serializes only the increment.
type Store struct {
	mu      sync.RWMutex
	records map[Key]*record
}

func NewStore() *Store {
	return &Store{records: make(map[Key]*record)}
}

// Record merges extracted counts into the record for the given key,
// creating it if absent. Merging is additive: recording the same
// counts twice doubles the tally. Empty counts are a no-op.
func (s *Store) Record(role, industry, region string, period int, counts map[string]int) {
	if s == nil || len(counts) == 0 {
		return
	}
	key := NewKey(role, industry, region, period)
	rec := s.getOrCreate(key)

	rec.mu.Lock()
	for skill, n := range counts {
		if n <= 0 {
			continue
		}
		rec.counts[skill] += n
	}
	rec.mu.Unlock()
}

func (s *Store) getOrCreate(key Key) *record {
	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	if ok {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[key]; ok {
		return rec
	}
	rec = &record{counts: make(map[string]int)}
	s.records[key] = rec
	return rec
}

// Query returns copies of every period's record for an exact
// categorical match, ordered by period ascending. There is no partial
// matching: a query for "backend engineer" does not see "backend
// developer" data. No match yields an empty slice, not an error.
func (s *Store) Query(role, industry, region string) []Snapshot {
	if s == nil {
		return nil
	}
	r := CanonicalCategory(role)
	i := CanonicalCategory(industry)
	g := CanonicalCategory(region)

	s.mu.RLock()
	matched := make([]*record, 0)
	keys := make([]Key, 0)
	for key, rec := range s.records {
		if key.Role == r && key.Industry == i && key.Region == g {
			matched = append(matched, rec)
			keys = append(keys, key)
		}
	}
	s.mu.RUnlock()

	out := make([]Snapshot, 0, len(matched))
	for n, rec := range matched {
		out = append(out, Snapshot{Key: keys[n], SkillCounts: copyCounts(rec)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key.Period < out[b].Key.Period })
	return out
}

// Snapshots returns a detached copy of the whole store in a stable
// order, for persistence collaborators. The shape round-trips
// losslessly: Restore(Snapshots()) rebuilds an identical store.
func (s *Store) Snapshots() []Snapshot {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	keys := make([]Key, 0, len(s.records))
	recs := make([]*record, 0, len(s.records))
	for key, rec := range s.records {
		keys = append(keys, key)
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	out := make([]Snapshot, 0, len(keys))
	for n := range keys {
		out = append(out, Snapshot{Key: keys[n], SkillCounts: copyCounts(recs[n])})
	}
	sort.Slice(out, func(a, b int) bool { return keyLess(out[a].Key, out[b].Key) })
	return out
}

// Restore merges snapshots back into the store (additive, like Record).
func (s *Store) Restore(snaps []Snapshot) {
	for _, snap := range snaps {
		s.Record(snap.Key.Role, snap.Key.Industry, snap.Key.Region, snap.Key.Period, snap.SkillCounts)
	}
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func copyCounts(rec *record) map[string]int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make(map[string]int, len(rec.counts))
	for skill, n := range rec.counts {
		out[skill] = n
	}
	return out
}

func keyLess(a, b Key) bool {
	if a.Role != b.Role {
		return a.Role < b.Role
	}
	if a.Industry != b.Industry {
		return a.Industry < b.Industry
	}
	if a.Region != b.Region {
		return a.Region < b.Region
	}
	return a.Period < b.Period
}
