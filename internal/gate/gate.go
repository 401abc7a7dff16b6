package gate

import (
	"context"
	"log/slog"
	"time"

	"github.com/tphakala/fishcast-go/internal/conditions"
	"github.com/tphakala/fishcast-go/internal/errors"
)

// DispatchFunc delivers one notification. It returns nil only when the
// downstream provider acknowledged the send.
type DispatchFunc func(ctx context.Context) error

// Gate guarantees at most one notification per quality band per UTC calendar
// day, regardless of how many times the evaluation runs.
type Gate struct {
	store  *Store
	logger *slog.Logger
}

// New creates a gate over the given state store.
func New(store *Store, logger *slog.Logger) *Gate {
	return &Gate{store: store, logger: logger}
}

// DayKey returns the state key for an evaluation instant.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Attempt dispatches for the band unless a notification of that band has
// already gone out today. The file lock is held across the entire
// check -> dispatch -> commit sequence; splitting it would let two
// overlapping runs both observe not-sent and both dispatch.
//
// A dispatch failure leaves the state unchanged and is reported to the
// caller as (false, nil) so a later scheduled run can retry. Only lock
// acquisition and state persistence failures return an error.
func (g *Gate) Attempt(ctx context.Context, day time.Time, band conditions.Band, dispatch DispatchFunc) (bool, error) {
	unlock, err := g.store.Lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	state := g.store.Load()
	key := DayKey(day)
	rec := state[key]

	if sent(rec, band) {
		g.logger.Info("notification already sent today, skipping",
			"day", key, "band", string(band))
		return false, nil
	}

	if err := dispatch(ctx); err != nil {
		g.logger.Warn("dispatch failed, leaving gate open for retry",
			"day", key, "band", string(band), "error", err)
		return false, nil
	}

	if err := mark(&rec, band); err != nil {
		return false, err
	}
	state[key] = rec

	if err := g.store.Save(state); err != nil {
		return false, err
	}

	g.logger.Info("notification sent and recorded", "day", key, "band", string(band))
	return true, nil
}

func sent(rec DayRecord, band conditions.Band) bool {
	switch band {
	case conditions.BandGreen:
		return rec.Green
	case conditions.BandAmber:
		return rec.Amber
	default:
		// Only GREEN and AMBER are notifiable; anything else is treated as
		// already handled so it can never dispatch.
		return true
	}
}

func mark(rec *DayRecord, band conditions.Band) error {
	switch band {
	case conditions.BandGreen:
		rec.Green = true
	case conditions.BandAmber:
		rec.Amber = true
	default:
		return errors.Newf("band %q is not notifiable", band).
			Component("gate").
			Category(errors.CategoryState).
			Build()
	}
	return nil
}
