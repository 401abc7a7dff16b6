package conditions

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/fishcast-go/internal/forecast"
)

func TestBassSSTScore(t *testing.T) {
	assert.Equal(t, 2, BassSSTScore(13.5))
	assert.Equal(t, 2, BassSSTScore(13.0))
	assert.Equal(t, 1, BassSSTScore(12.5))
	assert.Equal(t, 1, BassSSTScore(12.0))
	assert.Equal(t, 0, BassSSTScore(11.0))
}

func TestCodSSTScore(t *testing.T) {
	assert.Equal(t, 2, CodSSTScore(8.0))
	assert.Equal(t, 2, CodSSTScore(10.5))
	assert.Equal(t, 0, CodSSTScore(10.7)) // gap between the bands
	assert.Equal(t, 1, CodSSTScore(11.0))
	assert.Equal(t, 1, CodSSTScore(12.5))
	assert.Equal(t, 0, CodSSTScore(13.0))
	assert.Equal(t, 0, CodSSTScore(7.9))
}

func TestWindSwellScore(t *testing.T) {
	assert.Equal(t, 2, WindSwellScore(10, 1.0))
	assert.Equal(t, 1, WindSwellScore(20, 2.0))
	assert.Equal(t, 0, WindSwellScore(30, 3.0))
	// Calm wind but heavy swell still degrades
	assert.Equal(t, 1, WindSwellScore(5, 2.0))
	assert.Equal(t, 0, WindSwellScore(5, 2.5))
}

func TestPressureTrendScore(t *testing.T) {
	assert.Equal(t, 2, PressureTrendScore(-2.0))
	assert.Equal(t, 1, PressureTrendScore(-1.0))
	assert.Equal(t, 1, PressureTrendScore(0.5))
	assert.Equal(t, 1, PressureTrendScore(1.0))
	assert.Equal(t, 0, PressureTrendScore(3.0))
}

func TestCodWaveScore(t *testing.T) {
	assert.Equal(t, 2, CodWaveScore(0.8))
	assert.Equal(t, 2, CodWaveScore(1.8))
	assert.Equal(t, 1, CodWaveScore(2.0))
	assert.Equal(t, 0, CodWaveScore(0.5))
}

func TestBandFromScore(t *testing.T) {
	assert.Equal(t, BandGreen, BandFromScore(12))
	assert.Equal(t, BandGreen, BandFromScore(10))
	assert.Equal(t, BandAmber, BandFromScore(9))
	assert.Equal(t, BandAmber, BandFromScore(7))
	assert.Equal(t, BandAmberLow, BandFromScore(6))
	assert.Equal(t, BandAmberLow, BandFromScore(4))
	assert.Equal(t, BandRed, BandFromScore(3))
	assert.Equal(t, BandRed, BandFromScore(0))
}

func samplesWithPressure(pressures ...float64) []forecast.Sample {
	samples := make([]forecast.Sample, len(pressures))
	base := utc(21, 0, 0)
	for i, p := range pressures {
		samples[i] = forecast.Sample{
			Time:                  base.Add(time.Duration(i) * time.Hour),
			SeaSurfaceTemperature: 13.5,
			WindSpeed:             5.0,
			WindDirection:         225.0,
			WaveHeight:            1.0,
			WavePeriod:            9.0,
			PressureMSL:           p,
		}
	}
	return samples
}

func TestPressureTrend(t *testing.T) {
	// most recent minus the midpoint-index reading
	samples := samplesWithPressure(1013.0, 1012.5, 1011.0)
	assert.InDelta(t, -1.5, PressureTrend(samples), 1e-9)

	assert.InDelta(t, 0.0, PressureTrend(nil), 1e-9)

	// NaN at either end of the comparison defaults to 0.0
	ragged := samplesWithPressure(1013.0, math.NaN(), 1011.0)
	assert.InDelta(t, 0.0, PressureTrend(ragged), 1e-9)
}

func TestScorerEndToEndAmber(t *testing.T) {
	// sst=13.5, wind=5 m/s (~9.7 kt), wave=1.0 m, trend=-1.5
	// bass = 2 + 2 + 2 + 2 + 1 = 9 -> AMBER, not GREEN
	samples := samplesWithPressure(1013.0, 1012.5, 1011.0)
	scorer := NewScorer(samples, DefaultFallback())
	assert.InDelta(t, -1.5, scorer.Trend(), 1e-9)

	w := CandidateWindow{
		Interval: Interval{Start: utc(21, 0, 0), End: utc(21, 2, 0)},
		Label:    LabelDawn,
	}
	scored := scorer.Score(w)

	assert.Equal(t, 9, scored.Bass)
	assert.Equal(t, BandAmber, scored.BassBand())
	assert.InDelta(t, 5.0*KnotsPerMeterPerSecond, scored.WindKnots, 1e-9)

	// cod: sst 13.5 -> 0, wave 1.0 -> 2, +2 tide, +2 pressure, +1 daylight = 7
	assert.Equal(t, 7, scored.Cod)
	assert.Equal(t, BandAmber, scored.CodBand())
}

func TestScorerMidpointNearestSample(t *testing.T) {
	samples := samplesWithPressure(1013.0, 1012.0, 1011.0)
	samples[1].SeaSurfaceTemperature = 9.0 // distinguishable midpoint sample

	scorer := NewScorer(samples, DefaultFallback())
	// Window [00:30, 02:30) has midpoint 01:30, nearest samples are 01:00 and
	// 02:00 at equal distance; the tie goes to the lower index.
	w := CandidateWindow{Interval: Interval{Start: utc(21, 0, 30), End: utc(21, 2, 30)}}
	scored := scorer.Score(w)

	assert.InDelta(t, 9.0, scored.Sample.SeaSurfaceTemperature, 1e-9)
}

func TestScorerEmptySeriesUsesFallback(t *testing.T) {
	scorer := NewScorer(nil, DefaultFallback())
	w := CandidateWindow{Interval: Interval{Start: utc(21, 4, 0), End: utc(21, 6, 0)}}
	scored := scorer.Score(w)

	// Fallback: sst 12.0, wind 6 m/s (~11.7 kt), wave 1.2 m, trend 0.0
	assert.InDelta(t, 12.0, scored.Sample.SeaSurfaceTemperature, 1e-9)
	assert.InDelta(t, 225.0, scored.Sample.WindDirection, 1e-9)

	// bass = 1 + 2 + 2 + 1 + 1 = 7; cod = 1 + 2 + 2 + 1 + 1 = 7
	assert.Equal(t, 7, scored.Bass)
	assert.Equal(t, 7, scored.Cod)
}

func TestFallbackApply(t *testing.T) {
	fb := DefaultFallback()
	s := forecast.Sample{
		Time:                  utc(21, 0, 0),
		SeaSurfaceTemperature: 14.0,
		WindSpeed:             math.NaN(),
		WindDirection:         math.NaN(),
		WaveHeight:            0.9,
		WavePeriod:            math.NaN(),
		PressureMSL:           1011.0,
	}

	out := fb.Apply(s)
	assert.InDelta(t, 14.0, out.SeaSurfaceTemperature, 1e-9)
	assert.InDelta(t, 6.0, out.WindSpeed, 1e-9)
	assert.InDelta(t, 225.0, out.WindDirection, 1e-9)
	assert.InDelta(t, 0.9, out.WaveHeight, 1e-9)
	assert.InDelta(t, 9.0, out.WavePeriod, 1e-9)
}

func TestScoreRange(t *testing.T) {
	// Composite scores stay within [0, 12] across extreme inputs.
	extremes := [][]forecast.Sample{
		samplesWithPressure(980.0, 1040.0, 980.0),
		samplesWithPressure(1040.0, 980.0, 1040.0),
		nil,
	}
	w := CandidateWindow{Interval: Interval{Start: utc(21, 0, 0), End: utc(21, 2, 0)}}

	for _, samples := range extremes {
		scorer := NewScorer(samples, DefaultFallback())
		scored := scorer.Score(w)
		require.GreaterOrEqual(t, scored.Bass, 0)
		require.LessOrEqual(t, scored.Bass, 12)
		require.GreaterOrEqual(t, scored.Cod, 0)
		require.LessOrEqual(t, scored.Cod, 12)
	}
}
