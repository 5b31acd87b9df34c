package analysis

import (
	"fmt"
	"sort"

	"skill-radar/internal/domain/trend"
)

// Query is the categorical filter for one analysis request. Values are
// free-form category strings, never personal data, and are not retained
// beyond the request.
type Query struct {
	Role     string
	Industry string
	Region   string
}

// PeriodCounts is one period's skill tally for the queried categories,
// as read from the aggregation store.
type PeriodCounts struct {
	Period int
	Counts map[string]int
}

// TrendingSkill is a skill with its movement classification.
type TrendingSkill struct {
	Skill     string
	Direction trend.Direction
	Magnitude float64
}

// Summary groups every observed skill by movement class, each class
// ordered by magnitude descending.
type Summary struct {
	Rising    []TrendingSkill
	Stable    []TrendingSkill
	Declining []TrendingSkill
}

// Result is the ranked outcome of one analysis request. It is owned by
// the caller for the duration of the request and never cached.
type Result struct {
	TopSkills         []string
	TrendingSkills    []TrendingSkill
	RecommendedSkills []string
	RoleRecognized    bool
	Advisory          string
	Summary           Summary
}

const DefaultTopN = 5

type Options struct {
	TopN   int
	Scorer trend.Scorer
}

// Analyze merges the queried per-period records and derives the ranked
// Top / Trending / Recommended lists. No matching records is an
// expected outcome, reported via RoleRecognized=false plus an advisory
// message, not an error.
func Analyze(q Query, records []PeriodCounts, opts Options) Result {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	res := Result{
		TopSkills:         []string{},
		TrendingSkills:    []TrendingSkill{},
		RecommendedSkills: []string{},
	}

	if len(records) == 0 {
		res.Advisory = fmt.Sprintf(
			"No aggregated data for role %q in industry %q (region %q). "+
				"Categories match exactly; try roles like \"Backend Engineer\", "+
				"\"Frontend Developer\" or \"Full Stack Developer\".",
			q.Role, q.Industry, q.Region,
		)
		return res
	}
	res.RoleRecognized = true

	sorted := append([]PeriodCounts(nil), records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	merged := make(map[string]int)
	for _, rec := range sorted {
		for skill, n := range rec.Counts {
			merged[skill] += n
		}
	}

	res.TopSkills = topSkills(merged, topN)

	movements := classify(sorted, merged, opts.Scorer)
	res.TrendingSkills = trendingSkills(movements, merged, topN)
	res.RecommendedSkills = recommendedSkills(movements, merged, res.TopSkills, topN)
	res.Summary = summarize(movements)

	return res
}

// topSkills ranks by merged count descending, ties broken by name
// ascending so repeated queries return identical orderings.
func topSkills(merged map[string]int, n int) []string {
	names := sortedByCount(merged)
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func sortedByCount(merged map[string]int) []string {
	names := make([]string, 0, len(merged))
	for skill := range merged {
		names = append(names, skill)
	}
	sort.Slice(names, func(i, j int) bool {
		if merged[names[i]] != merged[names[j]] {
			return merged[names[i]] > merged[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

type movement struct {
	skill string
	trend.Movement
}

// classify builds each skill's per-period series across the distinct
// periods present, zero-filled where a skill is absent, and scores it.
// The per-period breakdown is used here, never the merged total.
func classify(sorted []PeriodCounts, merged map[string]int, scorer trend.Scorer) []movement {
	out := make([]movement, 0, len(merged))
	for skill := range merged {
		series := make([]trend.Point, 0, len(sorted))
		for _, rec := range sorted {
			series = append(series, trend.Point{Period: rec.Period, Count: rec.Counts[skill]})
		}
		out = append(out, movement{skill: skill, Movement: scorer.Classify(series)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].skill < out[j].skill })
	return out
}

// trendingSkills orders rising before stable before declining, by
// magnitude descending within each class, merged count then name as
// deterministic tie-breaks.
func trendingSkills(movements []movement, merged map[string]int, n int) []TrendingSkill {
	ranked := append([]movement(nil), movements...)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Direction != b.Direction {
			return trend.Less(a.Direction, b.Direction)
		}
		if a.Magnitude != b.Magnitude {
			return a.Magnitude > b.Magnitude
		}
		if merged[a.skill] != merged[b.skill] {
			return merged[a.skill] > merged[b.skill]
		}
		return a.skill < b.skill
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]TrendingSkill, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, TrendingSkill{Skill: m.skill, Direction: m.Direction, Magnitude: m.Magnitude})
	}
	return out
}

// recommendedSkills selects rising skills outside the top set ("grow
// into", not "already required"), padding with the next-highest stable
// skills when fewer than n exist. The result is disjoint from TopSkills
// by construction.
func recommendedSkills(movements []movement, merged map[string]int, top []string, n int) []string {
	inTop := make(map[string]bool, len(top))
	for _, skill := range top {
		inTop[skill] = true
	}

	rising := make([]movement, 0)
	for _, m := range movements {
		if m.Direction == trend.Rising && !inTop[m.skill] {
			rising = append(rising, m)
		}
	}
	sort.Slice(rising, func(i, j int) bool {
		a, b := rising[i], rising[j]
		if a.Magnitude != b.Magnitude {
			return a.Magnitude > b.Magnitude
		}
		if merged[a.skill] != merged[b.skill] {
			return merged[a.skill] > merged[b.skill]
		}
		return a.skill < b.skill
	})

	out := make([]string, 0, n)
	picked := make(map[string]bool, n)
	for _, m := range rising {
		if len(out) >= n {
			break
		}
		out = append(out, m.skill)
		picked[m.skill] = true
	}

	if len(out) < n {
		stable := make([]string, 0)
		for _, m := range movements {
			if m.Direction == trend.Stable && !inTop[m.skill] && !picked[m.skill] {
				stable = append(stable, m.skill)
			}
		}
		// Pad in descending count order.
		sort.Slice(stable, func(i, j int) bool {
			if merged[stable[i]] != merged[stable[j]] {
				return merged[stable[i]] > merged[stable[j]]
			}
			return stable[i] < stable[j]
		})
		for _, skill := range stable {
			if len(out) >= n {
				break
			}
			out = append(out, skill)
		}
	}
	return out
}

func summarize(movements []movement) Summary {
	s := Summary{
		Rising:    []TrendingSkill{},
		Stable:    []TrendingSkill{},
		Declining: []TrendingSkill{},
	}
	ranked := append([]movement(nil), movements...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Magnitude != ranked[j].Magnitude {
			return ranked[i].Magnitude > ranked[j].Magnitude
		}
		return ranked[i].skill < ranked[j].skill
	})
	for _, m := range ranked {
		ts := TrendingSkill{Skill: m.skill, Direction: m.Direction, Magnitude: m.Magnitude}
		switch m.Direction {
		case trend.Rising:
			s.Rising = append(s.Rising, ts)
		case trend.Declining:
			s.Declining = append(s.Declining, ts)
		default:
			s.Stable = append(s.Stable, ts)
		}
	}
	return s
}
