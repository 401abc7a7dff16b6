package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tphakala/fishcast-go/internal/errors"
	"github.com/tphakala/fishcast-go/internal/logging"
)

// Package-level logger specific to the forecast service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "forecast.log")
	serviceLevelVar.Set(slog.LevelDebug)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "forecast", serviceLevelVar)
	if err != nil {
		log.Printf("FATAL: Failed to initialize forecast file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "forecast")
		closeLogger = func() error { return nil }
	}
}

// Client fetches hourly marine forecasts from Open-Meteo
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
}

// NewClient creates a new forecast client. Open-Meteo needs no API key.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultConfig().CacheTTL
	}

	client := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache: cache.New(config.CacheTTL, config.CacheTTL*2),
	}

	logger.Info("forecast client initialized",
		"base_url", config.BaseURL,
		"cache_ttl", config.CacheTTL)

	return client
}

// Close cleans up client resources
func (c *Client) Close() {
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing forecast logger: %v", err)
		}
	}
}

// GetMarineForecast returns hourly samples covering [start, end] (inclusive
// calendar dates, UTC) for the given coordinates. Responses are cached so
// watch mode does not hammer the upstream.
func (c *Client) GetMarineForecast(ctx context.Context, lat, lon float64, start, end time.Time) ([]Sample, error) {
	cacheKey := fmt.Sprintf("marine:%.4f:%.4f:%s:%s", lat, lon, start.Format("2006-01-02"), end.Format("2006-01-02"))

	if cached, found := c.cache.Get(cacheKey); found {
		logger.Debug("cache hit for marine forecast", "key", cacheKey)
		return cached.([]Sample), nil
	}

	reqURL := fmt.Sprintf("%s?latitude=%s&longitude=%s&hourly=%s&start_date=%s&end_date=%s&timezone=UTC",
		c.config.BaseURL,
		url.QueryEscape(fmt.Sprintf("%.4f", lat)),
		url.QueryEscape(fmt.Sprintf("%.4f", lon)),
		"sea_surface_temperature,wind_speed_10m,wind_direction_10m,wave_height,wave_period,pressure_msl",
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component("forecast").
			Category(errors.CategoryNetwork).
			Build()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("marine forecast request failed", "error", err)
		return nil, errors.New(err).
			Component("forecast").
			Category(errors.CategoryNetwork).
			NetworkContext(c.config.BaseURL, c.config.Timeout).
			Build()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		logger.Error("marine forecast returned non-200", "status", resp.StatusCode)
		return nil, errors.Newf("open-meteo returned status %d", resp.StatusCode).
			Component("forecast").
			Category(errors.CategoryHTTP).
			Context("status_code", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(err).
			Component("forecast").
			Category(errors.CategoryHTTP).
			Build()
	}

	var mr marineResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, errors.New(err).
			Component("forecast").
			Category(errors.CategoryFileParsing).
			Build()
	}

	samples, err := mr.samples()
	if err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, samples, cache.DefaultExpiration)
	logger.Info("fetched marine forecast", "samples", len(samples), "lat", lat, "lon", lon)

	return samples, nil
}

// samples converts the parallel hourly arrays into a time-ordered sample
// sequence. Indices past the end of a ragged array become NaN so the scoring
// fallback policy can substitute its named defaults per field.
func (mr *marineResponse) samples() ([]Sample, error) {
	h := &mr.Hourly
	out := make([]Sample, 0, len(h.Time))
	for i, ts := range h.Time {
		instant, err := time.Parse(hourlyTimeLayout, ts)
		if err != nil {
			return nil, errors.Newf("unparseable hourly timestamp %q: %w", ts, err).
				Component("forecast").
				Category(errors.CategoryFileParsing).
				Build()
		}
		out = append(out, Sample{
			Time:                  instant.UTC(),
			SeaSurfaceTemperature: at(h.SeaSurfaceTemperature, i),
			WindSpeed:             at(h.WindSpeed10M, i),
			WindDirection:         at(h.WindDirection10M, i),
			WaveHeight:            at(h.WaveHeight, i),
			WavePeriod:            at(h.WavePeriod, i),
			PressureMSL:           at(h.PressureMSL, i),
		})
	}
	return out, nil
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return math.NaN()
}
