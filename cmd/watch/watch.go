package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tphakala/fishcast-go/internal/conf"
	"github.com/tphakala/fishcast-go/internal/evaluation"
)

// Command returns a cobra command that runs evaluations continuously on the
// configured interval until interrupted.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Evaluate continuously on the configured interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := evaluation.NewRunner(settings)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner.Watch(ctx)
			return nil
		},
	}

	cmd.Flags().IntVar(&settings.Evaluation.Interval, "interval", settings.Evaluation.Interval, "Evaluation interval in minutes")

	return cmd
}
