// Package conditions implements the evaluation core: deriving candidate
// fishing windows from tide and daylight data, scoring them against species
// condition rules, and selecting the best window per quality band.
package conditions

import (
	"time"

	"github.com/tphakala/fishcast-go/internal/forecast"
)

// Band is a discrete quality tier derived from a composite score.
type Band string

const (
	BandGreen    Band = "GREEN"
	BandAmber    Band = "AMBER"
	BandAmberLow Band = "AMBER-"
	BandRed      Band = "RED"
)

// BandFromScore maps a composite score to its display band.
func BandFromScore(x int) Band {
	switch {
	case x >= 10:
		return BandGreen
	case x >= 7:
		return BandAmber
	case x >= 4:
		return BandAmberLow
	default:
		return BandRed
	}
}

// TwilightLabel identifies which twilight period a window overlaps.
type TwilightLabel string

const (
	LabelDawn TwilightLabel = "dawn"
	LabelDusk TwilightLabel = "dusk"
)

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching ends
// do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return maxTime(iv.Start, other.Start).Before(minTime(iv.End, other.End))
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Midpoint returns the instant halfway through the interval.
func (iv Interval) Midpoint() time.Time {
	return iv.Start.Add(iv.Duration() / 2)
}

// floodPhase is the stretch of rising tide before a high water assumed most
// productive.
const floodPhase = 2 * time.Hour

// twilightHalfWidth is the half-width of the window around a sun event.
const twilightHalfWidth = 30 * time.Minute

// FloodWindow returns the flood-phase interval [high-2h, high) for a high
// water instant.
func FloodWindow(high time.Time) Interval {
	return Interval{Start: high.Add(-floodPhase), End: high}
}

// TwilightWindow returns the interval [event-30m, event+30m) around a sunrise
// or sunset instant.
func TwilightWindow(event time.Time) Interval {
	return Interval{Start: event.Add(-twilightHalfWidth), End: event.Add(twilightHalfWidth)}
}

// DaylightDay carries the sun events for one calendar day in scope.
type DaylightDay struct {
	Date    time.Time // the calendar day, UTC
	Sunrise time.Time // sunrise instant, UTC
	Sunset  time.Time // sunset instant, UTC
}

// Dawn returns the day's dawn twilight window.
func (d DaylightDay) Dawn() Interval {
	return TwilightWindow(d.Sunrise)
}

// Dusk returns the day's dusk twilight window.
func (d DaylightDay) Dusk() Interval {
	return TwilightWindow(d.Sunset)
}

// CandidateWindow is a flood window that overlaps a twilight period and is
// still actionable at evaluation time.
type CandidateWindow struct {
	Interval
	Label TwilightLabel
}

// ScoredWindow is a candidate window with its representative environmental
// values and per-species composite scores.
type ScoredWindow struct {
	CandidateWindow
	Sample    forecast.Sample // midpoint sample after fallback substitution
	WindKnots float64         // wind speed converted to knots
	Bass      int             // warm-water predator composite score, 0-12
	Cod       int             // cool-water predator composite score, 0-12
}

// Best returns the higher of the two species scores, the value band selection
// operates on.
func (w *ScoredWindow) Best() int {
	return max(w.Bass, w.Cod)
}

// BassBand returns the display band for the bass score.
func (w *ScoredWindow) BassBand() Band {
	return BandFromScore(w.Bass)
}

// CodBand returns the display band for the cod score.
func (w *ScoredWindow) CodBand() Band {
	return BandFromScore(w.Cod)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
