// Package forecast provides a client for the Open-Meteo marine weather API
package forecast

import (
	"math"
	"time"
)

// Sample is one hourly environmental reading for the mark. Fields the
// upstream response did not carry are NaN; the scoring fallback policy
// substitutes named defaults for them.
type Sample struct {
	Time                  time.Time `json:"time"`                    // UTC instant
	SeaSurfaceTemperature float64   `json:"sea_surface_temperature"` // °C
	WindSpeed             float64   `json:"wind_speed"`              // m/s
	WindDirection         float64   `json:"wind_direction"`          // degrees, 0-360
	WaveHeight            float64   `json:"wave_height"`             // m
	WavePeriod            float64   `json:"wave_period"`             // s
	PressureMSL           float64   `json:"pressure_msl"`            // hPa
}

// HasPressure reports whether the sample carries a real pressure reading.
func (s *Sample) HasPressure() bool {
	return !math.IsNaN(s.PressureMSL)
}

// marineResponse mirrors the Open-Meteo marine API hourly block. The arrays
// are parallel and indexed by time; upstream may return them ragged.
type marineResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    struct {
		Time                  []string  `json:"time"`
		SeaSurfaceTemperature []float64 `json:"sea_surface_temperature"`
		WindSpeed10M          []float64 `json:"wind_speed_10m"`
		WindDirection10M      []float64 `json:"wind_direction_10m"`
		WaveHeight            []float64 `json:"wave_height"`
		WavePeriod            []float64 `json:"wave_period"`
		PressureMSL           []float64 `json:"pressure_msl"`
	} `json:"hourly"`
}

// Config holds configuration for the forecast client
type Config struct {
	BaseURL  string        `json:"base_url"`
	Timeout  time.Duration `json:"timeout"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultConfig returns the default forecast client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://marine-api.open-meteo.com/v1/marine",
		Timeout:  30 * time.Second,
		CacheTTL: 30 * time.Minute,
	}
}

// hourlyTimeLayout is the zone-less ISO layout Open-Meteo uses with timezone=UTC.
const hourlyTimeLayout = "2006-01-02T15:04"
