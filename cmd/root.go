package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/fishcast-go/cmd/evaluate"
	"github.com/tphakala/fishcast-go/cmd/notify"
	"github.com/tphakala/fishcast-go/cmd/watch"
	"github.com/tphakala/fishcast-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fishcast",
		Short: "Coastal fishing conditions evaluator",
		Long: `FishCast evaluates near-future fishing conditions at one coastal mark by
combining marine forecasts, tide extremes and daylight windows, and sends at
most one alert per quality band per day.`,
		SilenceUsage: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		evaluate.Command(settings),
		watch.Command(settings),
		notify.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines global flags overriding config file values.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().Float64Var(&settings.Location.Latitude, "latitude", settings.Location.Latitude, "Latitude of the fishing mark")
	rootCmd.PersistentFlags().Float64Var(&settings.Location.Longitude, "longitude", settings.Location.Longitude, "Longitude of the fishing mark")
	rootCmd.PersistentFlags().StringVar(&settings.Evaluation.StatePath, "state", settings.Evaluation.StatePath, "Path to the notification state document")
}
