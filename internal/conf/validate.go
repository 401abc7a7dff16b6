package conf

import (
	"github.com/tphakala/fishcast-go/internal/errors"
)

// ValidateSettings checks the loaded configuration for values the evaluation
// cannot proceed without. Missing push credentials are deliberately not an
// error here; dispatch is skipped and logged at run time instead.
func ValidateSettings(settings *Settings) error {
	if settings.Location.Latitude < -90 || settings.Location.Latitude > 90 {
		return errors.Newf("latitude %f out of range [-90, 90]", settings.Location.Latitude).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	if settings.Location.Longitude < -180 || settings.Location.Longitude > 180 {
		return errors.Newf("longitude %f out of range [-180, 180]", settings.Location.Longitude).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	if settings.Evaluation.Interval <= 0 {
		return errors.Newf("evaluation interval must be positive, got %d", settings.Evaluation.Interval).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	if settings.Evaluation.StatePath == "" {
		return errors.Newf("evaluation state path must not be empty").
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	if settings.Notify.MQTT.Enabled && settings.Notify.MQTT.Broker == "" {
		return errors.Newf("mqtt enabled but no broker configured").
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}
