package tides

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extremesBody = `{
	"status": 200,
	"extremes": [
		{"dt": 1718949600, "date": "2024-06-21T06:00+0000", "height": 2.1, "type": "High"},
		{"dt": 1718971200, "date": "2024-06-21T12:00+0000", "height": 0.4, "type": "Low"},
		{"dt": 1718992800, "date": "2024-06-21T18:00+0000", "height": 2.3, "type": "High"}
	]
}`

func newTestClient(t *testing.T, apiKey string) *Client {
	t.Helper()
	c := NewClient(Config{BaseURL: "https://tides.test/api", APIKey: apiKey})
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestGetExtremes(t *testing.T) {
	c := newTestClient(t, "test-key")
	httpmock.RegisterResponder("GET", `=~^https://tides\.test/api`,
		httpmock.NewStringResponder(200, extremesBody))

	extremes, err := c.GetExtremes(context.Background(), 52.414, -4.082, 2)
	require.NoError(t, err)
	require.Len(t, extremes, 3)

	assert.Equal(t, TideTypeHigh, extremes[0].Type)
	assert.Equal(t, TideTypeLow, extremes[1].Type)
	assert.True(t, extremes[0].Time.Before(extremes[1].Time))
	assert.Equal(t, time.UTC, extremes[0].Time.Location())
}

func TestGetExtremesWithoutKey(t *testing.T) {
	c := newTestClient(t, "")
	assert.False(t, c.Configured())

	_, err := c.GetExtremes(context.Background(), 52.414, -4.082, 2)
	assert.Error(t, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestGetExtremesUpstreamError(t *testing.T) {
	c := newTestClient(t, "test-key")
	httpmock.RegisterResponder("GET", `=~^https://tides\.test/api`,
		httpmock.NewStringResponder(500, `{"status": 500, "error": "server error"}`))

	_, err := c.GetExtremes(context.Background(), 52.414, -4.082, 2)
	assert.Error(t, err)
}

func TestHighs(t *testing.T) {
	extremes := []Extreme{
		{Time: time.Date(2024, 6, 21, 18, 0, 0, 0, time.UTC), Type: TideTypeHigh},
		{Time: time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), Type: TideTypeLow},
		{Time: time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC), Type: TideTypeHigh},
	}

	highs := Highs(extremes)
	require.Len(t, highs, 2)
	assert.Equal(t, 6, highs[0].Hour())
	assert.Equal(t, 18, highs[1].Hour())
}

func TestSyntheticHighs(t *testing.T) {
	now := time.Date(2024, 6, 21, 14, 30, 0, 0, time.UTC)

	highs := SyntheticHighs(now, 2)
	require.Len(t, highs, 4)

	assert.Equal(t, time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC), highs[0])
	assert.Equal(t, time.Date(2024, 6, 21, 18, 0, 0, 0, time.UTC), highs[1])
	assert.Equal(t, time.Date(2024, 6, 22, 6, 0, 0, 0, time.UTC), highs[2])
	assert.Equal(t, time.Date(2024, 6, 22, 18, 0, 0, 0, time.UTC), highs[3])
}
