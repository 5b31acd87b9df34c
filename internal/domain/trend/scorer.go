package trend

import "math"

type Direction string

const (
	Rising    Direction = "rising"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

// rank orders directions for presentation: rising before stable before declining.
func (d Direction) rank() int {
	switch d {
	case Rising:
		return 0
	case Stable:
		return 1
	default:
		return 2
	}
}

func Less(a, b Direction) bool { return a.rank() < b.rank() }

// Point is one (period, count) observation for a single skill.
type Point struct {
	Period int
	Count  int
}

// Movement is the classification of a skill's change between the two
// most recent periods. Magnitude is |percent change| and is used only
// for ranking within a direction class, never as a forecast.
type Movement struct {
	Direction Direction
	Magnitude float64
	Latest    int
	Previous  int
}

// DefaultThreshold is the percent-change cutoff for rising/declining.
const DefaultThreshold = 0.10

// Scorer classifies per-period count series. The threshold is inclusive
// on both sides: a change of exactly +threshold is rising, exactly
// -threshold is declining.
type Scorer struct {
	Threshold float64
}

func NewScorer(threshold float64) Scorer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Scorer{Threshold: threshold}
}

// Classify compares the most recent period against the previous one.
// Fewer than two periods is insufficient history, not an error: the
// movement is stable with zero magnitude.
func (s Scorer) Classify(series []Point) Movement {
	if len(series) < 2 {
		latest := 0
		if len(series) == 1 {
			latest = series[0].Count
		}
		return Movement{Direction: Stable, Magnitude: 0, Latest: latest, Previous: 0}
	}

	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	latest := series[len(series)-1].Count
	previous := series[len(series)-2].Count

	denom := previous
	if denom < 1 {
		denom = 1
	}
	change := float64(latest-previous) / float64(denom)

	dir := Stable
	switch {
	case change >= threshold:
		dir = Rising
	case change <= -threshold:
		dir = Declining
	}

	return Movement{
		Direction: dir,
		Magnitude: math.Abs(change),
		Latest:    latest,
		Previous:  previous,
	}
}
