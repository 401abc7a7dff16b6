package evaluate

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/fishcast-go/internal/conf"
	"github.com/tphakala/fishcast-go/internal/evaluation"
)

// Command returns a cobra command that runs one evaluation and exits. This is
// the mode to wire into cron or a systemd timer.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run one evaluation and exit",
		Long: `Run a single evaluation of the configured mark: fetch forecast, tide and
daylight data, score the candidate windows and send any due alerts. Exits
non-zero only when the notification state cannot be locked or persisted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := evaluation.NewRunner(settings)
			if err != nil {
				return err
			}
			defer runner.Close()

			return runner.Run(cmd.Context())
		},
	}

	return cmd
}
