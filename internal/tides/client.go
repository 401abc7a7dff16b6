package tides

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tphakala/fishcast-go/internal/errors"
	"github.com/tphakala/fishcast-go/internal/logging"
)

// Package-level logger specific to the tides service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "tides.log")
	serviceLevelVar.Set(slog.LevelDebug)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "tides", serviceLevelVar)
	if err != nil {
		log.Printf("FATAL: Failed to initialize tides file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "tides")
		closeLogger = func() error { return nil }
	}
}

// Client fetches tide extremes from the WorldTides API
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
}

// NewClient creates a new tide client. An empty API key is allowed; callers
// are expected to fall back to SyntheticHighs when Configured() is false.
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

	logger.Info("tide client initialized",
		"base_url", config.BaseURL,
		"api_key_configured", config.APIKey != "")

	return client
}

// Configured reports whether the client has an API key to call WorldTides with.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Close cleans up client resources
func (c *Client) Close() {
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing tides logger: %v", err)
		}
	}
}

// GetExtremes returns tide extremes for the given coordinates covering the
// next `days` days, sorted ascending by time.
func (c *Client) GetExtremes(ctx context.Context, lat, lon float64, days int) ([]Extreme, error) {
	if !c.Configured() {
		return nil, errors.Newf("worldtides API key not configured").
			Component("tides").
			Category(errors.CategoryConfiguration).
			Build()
	}

	cacheKey := fmt.Sprintf("extremes:%.4f:%.4f:%d:%s", lat, lon, days, time.Now().UTC().Format("2006-01-02"))
	if cached, found := c.cache.Get(cacheKey); found {
		logger.Debug("cache hit for tide extremes", "key", cacheKey)
		return cached.([]Extreme), nil
	}

	reqURL := fmt.Sprintf("%s?extremes&lat=%s&lon=%s&days=%d&key=%s",
		c.config.BaseURL,
		url.QueryEscape(fmt.Sprintf("%.4f", lat)),
		url.QueryEscape(fmt.Sprintf("%.4f", lon)),
		days,
		url.QueryEscape(c.config.APIKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component("tides").
			Category(errors.CategoryNetwork).
			Build()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("tide extremes request failed", "error", err)
		return nil, errors.New(err).
			Component("tides").
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
		logger.Error("tide extremes returned non-200", "status", resp.StatusCode)
		return nil, errors.Newf("worldtides returned status %d", resp.StatusCode).
			Component("tides").
			Category(errors.CategoryHTTP).
			Context("status_code", resp.StatusCode).
			Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(err).
			Component("tides").
			Category(errors.CategoryHTTP).
			Build()
	}

	var wr worldTidesResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, errors.New(err).
			Component("tides").
			Category(errors.CategoryFileParsing).
			Build()
	}
	if wr.Error != "" {
		return nil, errors.Newf("worldtides error: %s", wr.Error).
			Component("tides").
			Category(errors.CategoryHTTP).
			Build()
	}

	extremes := make([]Extreme, 0, len(wr.Extremes))
	for _, ex := range wr.Extremes {
		extremes = append(extremes, Extreme{
			Time:   time.Unix(ex.Dt, 0).UTC(),
			Type:   normalizeType(ex.Type),
			Height: ex.Height,
		})
	}
	sort.Slice(extremes, func(i, j int) bool { return extremes[i].Time.Before(extremes[j].Time) })

	c.cache.Set(cacheKey, extremes, cache.DefaultExpiration)
	logger.Info("fetched tide extremes", "count", len(extremes), "lat", lat, "lon", lon)

	return extremes, nil
}

func normalizeType(t string) TideType {
	if strings.EqualFold(t, "high") {
		return TideTypeHigh
	}
	return TideTypeLow
}

// Highs filters extremes down to high waters and returns their instants,
// sorted ascending.
func Highs(extremes []Extreme) []time.Time {
	highs := make([]time.Time, 0, len(extremes))
	for _, ex := range extremes {
		if ex.Type == TideTypeHigh {
			highs = append(highs, ex.Time)
		}
	}
	sort.Slice(highs, func(i, j int) bool { return highs[i].Before(highs[j]) })
	return highs
}

// SyntheticHighs approximates high waters at 06:00 and 18:00 UTC for each of
// the `days` calendar days starting at now's UTC date. Used when no tide
// provider is configured or the provider is unreachable.
func SyntheticHighs(now time.Time, days int) []time.Time {
	now = now.UTC()
	highs := make([]time.Time, 0, days*2)
	for d := range days {
		day := now.AddDate(0, 0, d)
		highs = append(highs,
			time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.UTC),
			time.Date(day.Year(), day.Month(), day.Day(), 18, 0, 0, 0, time.UTC),
		)
	}
	return highs
}
