package notify

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/tphakala/fishcast-go/internal/conditions"
)

// tacticsNote is the short advice line appended to every session alert.
const tacticsNote = "Bass: lug+squid in coloured surf. Cod: lug/squid wraps."

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint converts a wind direction in degrees to its 16-point compass
// label.
func CompassPoint(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return compassPoints[int(deg/22.5+0.5)%16]
}

// FormatWindowMessage renders the push notification for a selected window.
// Window times are displayed in loc; the evaluation timestamp is always UTC.
func FormatWindowMessage(name string, evaluatedAt time.Time, w *conditions.ScoredWindow, band conditions.Band, loc *time.Location) (title, body string) {
	if loc == nil {
		loc = time.UTC
	}

	title = fmt.Sprintf("⚓ %s Session Alert", name)
	body = fmt.Sprintf(
		"Date/Time: %s\n"+
			"SST: %.1f °C\n\n"+
			"Next Window (%s):\n"+
			"• Flood overlap: %s–%s (%s)\n"+
			"• Best mark: Surf beach\n\n"+
			"Wind/Swell/Pressure: %s %.0f kt, %.1f m @ ~%.0f s, pressure trend factored\n"+
			"Scores: Bass %d/12 (%s), Cod %d/12 (%s)\n"+
			"Tip: %s",
		evaluatedAt.UTC().Format("2006-01-02 15:04 UTC"),
		w.Sample.SeaSurfaceTemperature,
		band,
		w.Start.In(loc).Format("15:04"),
		w.End.In(loc).Format("15:04"),
		w.Label,
		CompassPoint(w.Sample.WindDirection),
		w.WindKnots,
		w.Sample.WaveHeight,
		w.Sample.WavePeriod,
		w.Bass,
		w.BassBand(),
		w.Cod,
		w.CodBand(),
		tacticsNote,
	)
	return title, body
}

// windowPayload is the JSON shape mirrored to MQTT.
type windowPayload struct {
	EvaluatedAt time.Time               `json:"evaluated_at"`
	Band        conditions.Band         `json:"band"`
	Start       time.Time               `json:"start"`
	End         time.Time               `json:"end"`
	Label       conditions.TwilightLabel `json:"label"`
	SST         float64                 `json:"sst"`
	WindKnots   float64                 `json:"wind_knots"`
	WindCompass string                  `json:"wind_compass"`
	WaveHeight  float64                 `json:"wave_height"`
	WavePeriod  float64                 `json:"wave_period"`
	Bass        int                     `json:"bass"`
	Cod         int                     `json:"cod"`
}

// WindowPayload renders the selected window as a JSON document for the MQTT
// mirror.
func WindowPayload(evaluatedAt time.Time, w *conditions.ScoredWindow, band conditions.Band) (string, error) {
	payload := windowPayload{
		EvaluatedAt: evaluatedAt.UTC(),
		Band:        band,
		Start:       w.Start.UTC(),
		End:         w.End.UTC(),
		Label:       w.Label,
		SST:         w.Sample.SeaSurfaceTemperature,
		WindKnots:   w.WindKnots,
		WindCompass: CompassPoint(w.Sample.WindDirection),
		WaveHeight:  w.Sample.WaveHeight,
		WavePeriod:  w.Sample.WavePeriod,
		Bass:        w.Bass,
		Cod:         w.Cod,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
