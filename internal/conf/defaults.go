// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "FishCast-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/fishcast.log")

	// Aberystwyth
	viper.SetDefault("location.latitude", 52.414)
	viper.SetDefault("location.longitude", -4.082)
	viper.SetDefault("location.timezone", "Europe/London")

	viper.SetDefault("forecast.endpoint", "https://marine-api.open-meteo.com/v1/marine")
	viper.SetDefault("forecast.timeout", 30)
	viper.SetDefault("forecast.cachettl", 30)

	viper.SetDefault("tides.endpoint", "https://www.worldtides.info/api")
	viper.SetDefault("tides.apikey", "")
	viper.SetDefault("tides.timeout", 30)
	viper.SetDefault("tides.cachettl", 30)

	viper.SetDefault("notify.push.enabled", true)
	viper.SetDefault("notify.push.urls", []string{})
	viper.SetDefault("notify.push.pushover.token", "")
	viper.SetDefault("notify.push.pushover.user", "")
	viper.SetDefault("notify.push.timeout", 15)

	viper.SetDefault("notify.mqtt.enabled", false)
	viper.SetDefault("notify.mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("notify.mqtt.topic", "fishcast")
	viper.SetDefault("notify.mqtt.username", "")
	viper.SetDefault("notify.mqtt.password", "")

	viper.SetDefault("evaluation.interval", 60)
	viper.SetDefault("evaluation.statepath", "state.json")
	viper.SetDefault("evaluation.locktimeout", 30)
}
