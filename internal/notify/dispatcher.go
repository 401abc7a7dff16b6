package notify

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tphakala/fishcast-go/internal/conditions"
	"github.com/tphakala/fishcast-go/internal/conf"
	"github.com/tphakala/fishcast-go/internal/errors"
)

// Dispatcher routes notifications to the configured push provider and
// mirrors session alerts to MQTT when enabled. Only the push provider's
// acknowledgment counts as a successful dispatch.
type Dispatcher struct {
	push   Provider
	mqtt   *MQTTPublisher
	logger *slog.Logger
}

// NewDispatcher builds a dispatcher from settings. Missing push credentials
// disable dispatch; that is logged as an error but is not fatal, the
// evaluation still runs.
func NewDispatcher(settings *conf.Settings, logger *slog.Logger) (*Dispatcher, error) {
	d := &Dispatcher{logger: logger}

	urls := slices.Clone(settings.Notify.Push.URLs)
	if po := settings.Notify.Push.Pushover; po.Token != "" && po.User != "" {
		urls = append(urls, PushoverURL(po.Token, po.User))
	}

	if settings.Notify.Push.Enabled && len(urls) > 0 {
		provider := NewShoutrrrProvider("push", true, urls, nil,
			time.Duration(settings.Notify.Push.Timeout)*time.Second)
		if err := provider.ValidateConfig(); err != nil {
			return nil, errors.New(err).
				Component("notify").
				Category(errors.CategoryConfiguration).
				Build()
		}
		d.push = provider
	} else {
		logger.Error("push not configured: missing service URLs or Pushover credentials, dispatch disabled")
	}

	if settings.Notify.MQTT.Enabled {
		d.mqtt = NewMQTTPublisher(MQTTConfig{
			Broker:   settings.Notify.MQTT.Broker,
			ClientID: settings.Main.Name,
			Username: settings.Notify.MQTT.Username,
			Password: settings.Notify.MQTT.Password,
			Topic:    settings.Notify.MQTT.Topic,
		})
	}

	return d, nil
}

// Enabled reports whether push dispatch is possible.
func (d *Dispatcher) Enabled() bool {
	return d.push != nil && d.push.IsEnabled()
}

// Send delivers the notification through the push provider. The returned
// error is nil only when the provider acknowledged the send.
func (d *Dispatcher) Send(ctx context.Context, n *Notification) error {
	if d.push == nil {
		return errors.Newf("push dispatch is disabled").
			Component("notify").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if !d.push.SupportsType(n.Type) {
		return errors.Newf("provider %s does not support type %s", d.push.GetName(), n.Type).
			Component("notify").
			Category(errors.CategoryDispatch).
			Build()
	}
	if err := d.push.Send(ctx, n); err != nil {
		return errors.New(err).
			Component("notify").
			Category(errors.CategoryDispatch).
			Build()
	}
	return nil
}

// Mirror publishes the selected window to the MQTT topic for the band. A
// mirror failure is logged and swallowed; it never affects the gate.
func (d *Dispatcher) Mirror(ctx context.Context, evaluatedAt time.Time, w *conditions.ScoredWindow, band conditions.Band) {
	if d.mqtt == nil {
		return
	}

	payload, err := WindowPayload(evaluatedAt, w, band)
	if err != nil {
		d.logger.Warn("failed to encode MQTT payload", "error", err)
		return
	}

	if !d.mqtt.IsConnected() {
		if err := d.mqtt.Connect(ctx); err != nil {
			d.logger.Warn("MQTT connect failed, skipping mirror", "error", err)
			return
		}
	}

	subtopic := strings.ToLower(strings.TrimSuffix(string(band), "-"))
	if err := d.mqtt.Publish(ctx, subtopic, payload); err != nil {
		d.logger.Warn("MQTT publish failed", "topic", subtopic, "error", err)
	}
}

// Close releases dispatcher resources.
func (d *Dispatcher) Close() {
	if d.mqtt != nil {
		d.mqtt.Disconnect()
	}
}
