// Package tides provides a client for the WorldTides extremes API and a
// synthetic fallback schedule for when no provider is configured.
package tides

import "time"

// TideType identifies a tide extreme as a high or low water.
type TideType string

const (
	TideTypeHigh TideType = "High"
	TideTypeLow  TideType = "Low"
)

// Extreme represents a single predicted tide extreme.
type Extreme struct {
	Time   time.Time `json:"time"`   // UTC instant of the extreme
	Type   TideType  `json:"type"`   // high or low water
	Height float64   `json:"height"` // height in meters relative to datum
}

// worldTidesResponse mirrors the WorldTides extremes payload.
type worldTidesResponse struct {
	Status   int    `json:"status"`
	Error    string `json:"error"`
	Extremes []struct {
		Dt     int64   `json:"dt"`
		Date   string  `json:"date"`
		Height float64 `json:"height"`
		Type   string  `json:"type"`
	} `json:"extremes"`
}

// Config holds configuration for the tide client
type Config struct {
	BaseURL  string        `json:"base_url"`
	APIKey   string        `json:"api_key"`
	Timeout  time.Duration `json:"timeout"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultConfig returns the default tide client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://www.worldtides.info/api",
		Timeout:  30 * time.Second,
		CacheTTL: 30 * time.Minute,
	}
}
