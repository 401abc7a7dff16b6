// config.go: This file contains the configuration for fishcast-go. It defines the settings struct and functions to load the settings.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// LogConfig contains settings for application logging.
type LogConfig struct {
	Enabled bool   // true to enable file logging
	Path    string // path to log file
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string    // name of this node, used in MQTT client id and notification titles
	Log  LogConfig // log settings
}

// LocationSettings identifies the single coastal mark being evaluated.
type LocationSettings struct {
	Latitude  float64 // latitude of the fishing mark
	Longitude float64 // longitude of the fishing mark
	Timezone  string  // IANA timezone label used for display only, evaluation runs in UTC
}

// ForecastSettings contains settings for the marine forecast provider.
type ForecastSettings struct {
	Endpoint string // Open-Meteo marine API endpoint
	Timeout  int    // request timeout in seconds
	CacheTTL int    // response cache TTL in minutes
}

// TideSettings contains settings for the tide extremes provider.
type TideSettings struct {
	Endpoint string // WorldTides API endpoint
	APIKey   string // WorldTides API key, empty disables the provider and enables synthetic tides
	Timeout  int    // request timeout in seconds
	CacheTTL int    // response cache TTL in minutes
}

// PushoverSettings holds Pushover credentials.
type PushoverSettings struct {
	Token string // application token
	User  string // user key
}

// PushSettings contains settings for push notification delivery.
type PushSettings struct {
	Enabled  bool             // true to enable push dispatch
	URLs     []string         // shoutrrr service URLs
	Pushover PushoverSettings // convenience credentials, converted to a shoutrrr URL
	Timeout  int              // send timeout in seconds
}

// MQTTSettings contains settings for the optional MQTT mirror.
type MQTTSettings struct {
	Enabled  bool   // true to enable MQTT publishing
	Broker   string // MQTT broker URL
	Topic    string // topic prefix, band is appended
	Username string // MQTT username
	Password string // MQTT password
}

// NotifySettings groups the notification output channels.
type NotifySettings struct {
	Push PushSettings
	MQTT MQTTSettings
}

// EvaluationSettings contains settings for the evaluation run itself.
type EvaluationSettings struct {
	Interval    int    // watch mode evaluation interval in minutes
	StatePath   string // path to the dedup state document
	LockTimeout int    // state lock acquisition timeout in seconds
}

// Settings is the top level configuration container. One immutable instance is
// constructed at process start and passed into every component.
type Settings struct {
	Debug bool // true to enable debug behavior

	Main       MainSettings
	Location   LocationSettings
	Forecast   ForecastSettings
	Tides      TideSettings
	Notify     NotifySettings
	Evaluation EvaluationSettings
}

// PushConfigured reports whether any push delivery credentials are present.
func (s *Settings) PushConfigured() bool {
	if len(s.Notify.Push.URLs) > 0 {
		return true
	}
	return s.Notify.Push.Pushover.Token != "" && s.Notify.Push.Pushover.User != ""
}

// DisplayLocation returns the timezone to render window times in, falling back
// to UTC when the configured label does not resolve.
func (s *Settings) DisplayLocation() *time.Location {
	if s.Location.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Location.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

var (
	settingsInstance *Settings
	settingsOnce     sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration from file and environment into a new Settings
// instance and publishes it as the process-wide instance.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()

	return settings, nil
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/fishcast-go")
	viper.AddConfigPath("/etc/fishcast-go")

	// Credentials come from the environment, e.g. FISHCAST_NOTIFY_PUSH_PUSHOVER_TOKEN
	viper.SetEnvPrefix("FISHCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults plus environment carry the run.
	}

	return nil
}

// Setting returns the process-wide settings instance, loading it on first use.
func Setting() *Settings {
	settingsOnce.Do(func() {
		settingsMutex.RLock()
		loaded := settingsInstance != nil
		settingsMutex.RUnlock()
		if !loaded {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("error loading settings: %v", err))
			}
		}
	})

	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
