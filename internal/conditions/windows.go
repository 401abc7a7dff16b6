package conditions

import (
	"time"
)

// lookahead is how far into the future a candidate window may start.
const lookahead = 24 * time.Hour

// GenerateWindows intersects flood-tide windows with twilight windows and
// returns the candidates still actionable at `now`, ordered by day then by
// flood window start.
//
// A flood window is matched to a daylight day by the UTC date of its start.
// Dawn is checked before dusk; when a flood window overlaps both twilight
// periods it is labeled dawn. Windows that have fully elapsed or start more
// than 24 hours out are dropped. Absent inputs degrade to fewer or no
// candidates, never an error.
func GenerateWindows(now time.Time, highs []time.Time, days []DaylightDay) []CandidateWindow {
	now = now.UTC()

	floods := make([]Interval, 0, len(highs))
	for _, high := range highs {
		floods = append(floods, FloodWindow(high.UTC()))
	}

	var candidates []CandidateWindow
	for _, day := range days {
		dawn, dusk := day.Dawn(), day.Dusk()
		dayKey := day.Date.UTC().Format("2006-01-02")

		for _, flood := range floods {
			if flood.Start.Format("2006-01-02") != dayKey {
				continue
			}

			var label TwilightLabel
			switch {
			case flood.Overlaps(dawn):
				label = LabelDawn
			case flood.Overlaps(dusk):
				label = LabelDusk
			default:
				continue
			}

			if flood.End.Before(now) || flood.Start.After(now.Add(lookahead)) {
				continue
			}

			candidates = append(candidates, CandidateWindow{Interval: flood, Label: label})
		}
	}

	return candidates
}
