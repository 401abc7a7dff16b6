package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/fishcast-go/internal/conditions"
	"github.com/tphakala/fishcast-go/internal/forecast"
)

func TestCompassPoint(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{337.5, "NNW"},
		{359, "N"},
		{360, "N"},
		{405, "NE"},
		{-45, "NW"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CompassPoint(tc.deg), "degrees %v", tc.deg)
	}
}

func sampleWindow() *conditions.ScoredWindow {
	return &conditions.ScoredWindow{
		CandidateWindow: conditions.CandidateWindow{
			Interval: conditions.Interval{
				Start: time.Date(2024, 6, 21, 4, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC),
			},
			Label: conditions.LabelDawn,
		},
		Sample: forecast.Sample{
			SeaSurfaceTemperature: 13.5,
			WindDirection:         225.0,
			WaveHeight:            1.0,
			WavePeriod:            9.0,
		},
		WindKnots: 9.7,
		Bass:      9,
		Cod:       7,
	}
}

func TestFormatWindowMessage(t *testing.T) {
	evaluatedAt := time.Date(2024, 6, 21, 3, 15, 0, 0, time.UTC)
	title, body := FormatWindowMessage("Aberystwyth", evaluatedAt, sampleWindow(), conditions.BandAmber, time.UTC)

	assert.Equal(t, "⚓ Aberystwyth Session Alert", title)
	assert.Contains(t, body, "Date/Time: 2024-06-21 03:15 UTC")
	assert.Contains(t, body, "SST: 13.5 °C")
	assert.Contains(t, body, "Next Window (AMBER):")
	assert.Contains(t, body, "Flood overlap: 04:00–06:00 (dawn)")
	assert.Contains(t, body, "SW 10 kt, 1.0 m @ ~9 s")
	assert.Contains(t, body, "Scores: Bass 9/12 (AMBER), Cod 7/12 (AMBER)")
	assert.Contains(t, body, "Tip: Bass: lug+squid")
}

func TestFormatWindowMessageDisplayTimezone(t *testing.T) {
	evaluatedAt := time.Date(2024, 6, 21, 3, 15, 0, 0, time.UTC)
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	_, body := FormatWindowMessage("Aberystwyth", evaluatedAt, sampleWindow(), conditions.BandAmber, london)

	// BST is UTC+1 in June
	assert.Contains(t, body, "Flood overlap: 05:00–07:00 (dawn)")
	// Evaluation timestamp stays in UTC regardless of display zone
	assert.Contains(t, body, "Date/Time: 2024-06-21 03:15 UTC")
}

func TestWindowPayload(t *testing.T) {
	evaluatedAt := time.Date(2024, 6, 21, 3, 15, 0, 0, time.UTC)
	payload, err := WindowPayload(evaluatedAt, sampleWindow(), conditions.BandAmber)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))

	assert.Equal(t, "AMBER", decoded["band"])
	assert.Equal(t, "dawn", decoded["label"])
	assert.Equal(t, "SW", decoded["wind_compass"])
	assert.InDelta(t, 9.0, decoded["bass"].(float64), 1e-9)
	assert.InDelta(t, 7.0, decoded["cod"].(float64), 1e-9)
}

func TestNewNotification(t *testing.T) {
	n := NewNotification(TypeAlert, PriorityHigh, "title", "message")
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, TypeAlert, n.Type)
	assert.False(t, n.Timestamp.IsZero())

	n.WithMetadata("band", "GREEN")
	assert.Equal(t, "GREEN", n.Metadata["band"])
}
