// Package evaluation orchestrates one evaluation run: fetch upstream data,
// derive and score candidate windows, select per-band representatives, and
// push them through the notification gate.
package evaluation

import (
	"context"
	"log/slog"
	"time"

	"github.com/tphakala/fishcast-go/internal/conditions"
	"github.com/tphakala/fishcast-go/internal/conf"
	"github.com/tphakala/fishcast-go/internal/forecast"
	"github.com/tphakala/fishcast-go/internal/gate"
	"github.com/tphakala/fishcast-go/internal/logging"
	"github.com/tphakala/fishcast-go/internal/notify"
	"github.com/tphakala/fishcast-go/internal/suncalc"
	"github.com/tphakala/fishcast-go/internal/tides"
)

// forecastDays is the upstream window: today and tomorrow.
const forecastDays = 2

// pushSender is the slice of the notification dispatcher the runner needs.
type pushSender interface {
	Enabled() bool
	Send(ctx context.Context, n *notify.Notification) error
	Mirror(ctx context.Context, evaluatedAt time.Time, w *conditions.ScoredWindow, band conditions.Band)
	Close()
}

// Runner executes evaluation runs against one configured location.
type Runner struct {
	settings   *conf.Settings
	forecast   *forecast.Client
	tides      *tides.Client
	sun        *suncalc.SunCalc
	dispatcher pushSender
	gate       *gate.Gate
	logger     *slog.Logger
	now        func() time.Time
}

// NewRunner wires the evaluation pipeline from settings.
func NewRunner(settings *conf.Settings) (*Runner, error) {
	logger := logging.ForService("evaluation")
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher, err := notify.NewDispatcher(settings, logger)
	if err != nil {
		return nil, err
	}

	store := gate.NewStore(settings.Evaluation.StatePath,
		time.Duration(settings.Evaluation.LockTimeout)*time.Second)

	return &Runner{
		settings: settings,
		forecast: forecast.NewClient(forecast.Config{
			BaseURL:  settings.Forecast.Endpoint,
			Timeout:  time.Duration(settings.Forecast.Timeout) * time.Second,
			CacheTTL: time.Duration(settings.Forecast.CacheTTL) * time.Minute,
		}),
		tides: tides.NewClient(tides.Config{
			BaseURL:  settings.Tides.Endpoint,
			APIKey:   settings.Tides.APIKey,
			Timeout:  time.Duration(settings.Tides.Timeout) * time.Second,
			CacheTTL: time.Duration(settings.Tides.CacheTTL) * time.Minute,
		}),
		sun:        suncalc.NewSunCalc(settings.Location.Latitude, settings.Location.Longitude),
		dispatcher: dispatcher,
		gate:       gate.New(store, logger),
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Close releases runner resources.
func (r *Runner) Close() {
	r.forecast.Close()
	r.tides.Close()
	r.dispatcher.Close()
}

// Run executes one evaluation. Upstream failures degrade to defaults and
// fallbacks; only a state lock or persistence failure returns an error.
func (r *Runner) Run(ctx context.Context) error {
	now := r.now().UTC()
	lat, lon := r.settings.Location.Latitude, r.settings.Location.Longitude

	samples := r.fetchSamples(ctx, now, lat, lon)
	highs := r.resolveHighs(ctx, now, lat, lon)
	days := r.daylightDays(now)

	windows := conditions.GenerateWindows(now, highs, days)
	if len(windows) == 0 {
		r.logger.Info("no qualifying windows")
		return nil
	}

	scorer := conditions.NewScorer(samples, conditions.DefaultFallback())
	scored := scorer.ScoreAll(windows)
	selection := conditions.SelectWindows(scored)

	r.logger.Info("evaluation complete",
		"candidates", len(scored),
		"pressure_trend", scorer.Trend(),
		"green", selection.Green != nil,
		"amber", selection.Amber != nil)

	for _, pick := range []struct {
		band   conditions.Band
		window *conditions.ScoredWindow
	}{
		{conditions.BandGreen, selection.Green},
		{conditions.BandAmber, selection.Amber},
	} {
		if pick.window == nil {
			continue
		}
		if err := r.notifyBand(ctx, now, pick.band, pick.window); err != nil {
			return err
		}
	}

	return nil
}

// notifyBand runs the gate for one selected window. Dispatch problems are
// logged and left for the next scheduled run; gate state errors propagate.
func (r *Runner) notifyBand(ctx context.Context, now time.Time, band conditions.Band, w *conditions.ScoredWindow) error {
	if !r.dispatcher.Enabled() {
		r.logger.Error("dispatch disabled, skipping notification",
			"band", string(band))
		return nil
	}

	title, body := notify.FormatWindowMessage(r.settings.Main.Name, now, w, band, r.settings.DisplayLocation())
	n := notify.NewNotification(notify.TypeAlert, bandPriority(band), title, body).
		WithMetadata("band", string(band)).
		WithMetadata("label", string(w.Label))

	sent, err := r.gate.Attempt(ctx, now, band, func(ctx context.Context) error {
		return r.dispatcher.Send(ctx, n)
	})
	if err != nil {
		return err
	}
	if sent {
		r.logger.Info("alert sent",
			"band", string(band),
			"window_start", w.Start,
			"window_end", w.End,
			"label", string(w.Label))
		r.dispatcher.Mirror(ctx, now, w, band)
	}
	return nil
}

func bandPriority(band conditions.Band) notify.Priority {
	if band == conditions.BandGreen {
		return notify.PriorityHigh
	}
	return notify.PriorityMedium
}

// fetchSamples retrieves the marine forecast, degrading to an empty series on
// any upstream failure.
func (r *Runner) fetchSamples(ctx context.Context, now time.Time, lat, lon float64) []forecast.Sample {
	samples, err := r.forecast.GetMarineForecast(ctx, lat, lon, now, now.AddDate(0, 0, forecastDays))
	if err != nil {
		r.logger.Warn("marine forecast unavailable, scoring with fallback values", "error", err)
		return nil
	}
	return samples
}

// resolveHighs returns upstream high waters, or the synthetic 06:00/18:00 UTC
// schedule when no provider is configured or the provider fails.
func (r *Runner) resolveHighs(ctx context.Context, now time.Time, lat, lon float64) []time.Time {
	if r.tides.Configured() {
		extremes, err := r.tides.GetExtremes(ctx, lat, lon, forecastDays)
		if err != nil {
			r.logger.Warn("tide extremes unavailable, using approximate tides", "error", err)
		} else if highs := tides.Highs(extremes); len(highs) > 0 {
			return highs
		}
	} else {
		r.logger.Warn("tide provider not configured, using approximate tides")
	}
	return tides.SyntheticHighs(now, forecastDays)
}

// daylightDays computes sun events for today and tomorrow. A day whose
// calculation fails is skipped entirely; windows for other days proceed.
func (r *Runner) daylightDays(now time.Time) []conditions.DaylightDay {
	days := make([]conditions.DaylightDay, 0, forecastDays)
	for d := range forecastDays {
		date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
		events, err := r.sun.GetSunEventTimes(date)
		if err != nil {
			r.logger.Warn("sun event calculation failed, skipping day",
				"date", date.Format("2006-01-02"), "error", err)
			continue
		}
		days = append(days, conditions.DaylightDay{
			Date:    date,
			Sunrise: events.Sunrise,
			Sunset:  events.Sunset,
		})
	}
	return days
}

// Watch runs evaluations on the configured interval until the context is
// cancelled. The first run happens immediately.
func (r *Runner) Watch(ctx context.Context) {
	interval := time.Duration(r.settings.Evaluation.Interval) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("starting evaluation loop", "interval", interval)

	for {
		if err := r.Run(ctx); err != nil {
			r.logger.Error("evaluation run failed", "error", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			r.logger.Info("evaluation loop stopped")
			return
		}
	}
}
