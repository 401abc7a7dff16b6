package conditions

import (
	"math"
	"time"

	"github.com/tphakala/fishcast-go/internal/forecast"
)

// KnotsPerMeterPerSecond converts wind speed from m/s to knots.
const KnotsPerMeterPerSecond = 1.94384

// Fixed contributions shared by both species: every candidate window sits on
// a flood tide and inside a twilight period by construction.
const (
	tidePhaseBonus = 2
	daylightBonus  = 1
)

// Fallback is the named substitution policy for missing environmental data.
// Values are neutral mid-range conditions for the mark.
type Fallback struct {
	SST           float64 // °C
	WindSpeed     float64 // m/s
	WindDirection float64 // degrees
	WaveHeight    float64 // m
	WavePeriod    float64 // s
}

// DefaultFallback returns the standard substitution values.
func DefaultFallback() Fallback {
	return Fallback{
		SST:           12.0,
		WindSpeed:     6.0,
		WindDirection: 225.0,
		WaveHeight:    1.2,
		WavePeriod:    9.0,
	}
}

// Apply returns a copy of the sample with NaN fields replaced by the fallback
// values.
func (f Fallback) Apply(s forecast.Sample) forecast.Sample {
	if math.IsNaN(s.SeaSurfaceTemperature) {
		s.SeaSurfaceTemperature = f.SST
	}
	if math.IsNaN(s.WindSpeed) {
		s.WindSpeed = f.WindSpeed
	}
	if math.IsNaN(s.WindDirection) {
		s.WindDirection = f.WindDirection
	}
	if math.IsNaN(s.WaveHeight) {
		s.WaveHeight = f.WaveHeight
	}
	if math.IsNaN(s.WavePeriod) {
		s.WavePeriod = f.WavePeriod
	}
	return s
}

// Sample returns a sample built entirely from fallback values, used when the
// forecast series is empty.
func (f Fallback) Sample() forecast.Sample {
	return forecast.Sample{
		SeaSurfaceTemperature: f.SST,
		WindSpeed:             f.WindSpeed,
		WindDirection:         f.WindDirection,
		WaveHeight:            f.WaveHeight,
		WavePeriod:            f.WavePeriod,
		PressureMSL:           math.NaN(),
	}
}

// BassSSTScore scores sea-surface temperature for the warm-water predator.
func BassSSTScore(c float64) int {
	switch {
	case c >= 13.0:
		return 2
	case c >= 12.0:
		return 1
	default:
		return 0
	}
}

// CodSSTScore scores sea-surface temperature for the cool-water predator.
func CodSSTScore(c float64) int {
	switch {
	case c >= 8.0 && c <= 10.5:
		return 2
	case c >= 11.0 && c <= 12.5:
		return 1
	default:
		return 0
	}
}

// WindSwellScore scores the shared wind and swell conditions.
func WindSwellScore(windKt, swellM float64) int {
	switch {
	case swellM <= 1.6 && windKt <= 18:
		return 2
	case swellM <= 2.2 && windKt <= 24:
		return 1
	default:
		return 0
	}
}

// PressureTrendScore scores the barometric trend; falling pressure is best.
func PressureTrendScore(trendHPa float64) int {
	switch {
	case trendHPa < -1.0:
		return 2
	case math.Abs(trendHPa) <= 1.0:
		return 1
	default:
		return 0
	}
}

// CodWaveScore scores wave height for the cool-water predator, which feeds
// best in a moderate surf.
func CodWaveScore(waveM float64) int {
	switch {
	case waveM >= 0.8 && waveM <= 1.8:
		return 2
	case waveM > 1.8:
		return 1
	default:
		return 0
	}
}

// PressureTrend computes the run-wide barometric trend: the most recent
// pressure reading minus the reading at the series midpoint. Returns 0.0 when
// either reading is unavailable.
func PressureTrend(samples []forecast.Sample) float64 {
	if len(samples) == 0 {
		return 0.0
	}
	pNow := samples[len(samples)-1].PressureMSL
	pPrev := samples[len(samples)/2].PressureMSL
	if math.IsNaN(pNow) || math.IsNaN(pPrev) {
		return 0.0
	}
	return pNow - pPrev
}

// Scorer maps candidate windows to scored windows against one run's forecast
// series. The pressure trend is computed once at construction.
type Scorer struct {
	samples  []forecast.Sample
	trend    float64
	fallback Fallback
}

// NewScorer creates a scorer over the run's forecast series.
func NewScorer(samples []forecast.Sample, fallback Fallback) *Scorer {
	return &Scorer{
		samples:  samples,
		trend:    PressureTrend(samples),
		fallback: fallback,
	}
}

// Trend returns the run-wide pressure trend in hPa.
func (sc *Scorer) Trend() float64 {
	return sc.trend
}

// Score computes both species composite scores for a candidate window using
// the sample nearest the window midpoint.
func (sc *Scorer) Score(w CandidateWindow) ScoredWindow {
	sample := sc.sampleAt(w.Midpoint())
	windKt := sample.WindSpeed * KnotsPerMeterPerSecond
	pressure := PressureTrendScore(sc.trend)

	bass := BassSSTScore(sample.SeaSurfaceTemperature) +
		tidePhaseBonus +
		WindSwellScore(windKt, sample.WaveHeight) +
		pressure +
		daylightBonus

	cod := CodSSTScore(sample.SeaSurfaceTemperature) +
		CodWaveScore(sample.WaveHeight) +
		tidePhaseBonus +
		pressure +
		daylightBonus

	return ScoredWindow{
		CandidateWindow: w,
		Sample:          sample,
		WindKnots:       windKt,
		Bass:            bass,
		Cod:             cod,
	}
}

// ScoreAll scores every candidate window in order.
func (sc *Scorer) ScoreAll(windows []CandidateWindow) []ScoredWindow {
	scored := make([]ScoredWindow, 0, len(windows))
	for _, w := range windows {
		scored = append(scored, sc.Score(w))
	}
	return scored
}

// sampleAt selects the sample whose timestamp is nearest the given instant,
// ties broken by the lowest index, with fallback substitution applied. An
// empty series yields the full fallback sample.
func (sc *Scorer) sampleAt(instant time.Time) forecast.Sample {
	if len(sc.samples) == 0 {
		return sc.fallback.Sample()
	}

	bestIdx := 0
	bestDiff := absDuration(sc.samples[0].Time.Sub(instant))
	for i := 1; i < len(sc.samples); i++ {
		diff := absDuration(sc.samples[i].Time.Sub(instant))
		if diff < bestDiff {
			bestIdx = i
			bestDiff = diff
		}
	}

	return sc.fallback.Apply(sc.samples[bestIdx])
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
