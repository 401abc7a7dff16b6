package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/fishcast-go/internal/conf"
	"github.com/tphakala/fishcast-go/internal/logging"
	"github.com/tphakala/fishcast-go/internal/notify"
)

// Command returns a cobra command that sends a test notification through the
// configured push channel.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		typ     string
		prio    string
		title   string
		message string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a test notification",
		Long: `Send a test notification through the configured push channel to verify
credentials and delivery.

Examples:
  fishcast notify --title="Test" --message="Hello from FishCast"
  fishcast notify --type=error --priority=high --message="Alarm test"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ntype notify.Type
			switch typ {
			case "alert":
				ntype = notify.TypeAlert
			case "info":
				ntype = notify.TypeInfo
			case "error":
				ntype = notify.TypeError
			default:
				return fmt.Errorf("invalid type: %s", typ)
			}

			var nprio notify.Priority
			switch prio {
			case "high":
				nprio = notify.PriorityHigh
			case "medium":
				nprio = notify.PriorityMedium
			case "low":
				nprio = notify.PriorityLow
			default:
				return fmt.Errorf("invalid priority: %s", prio)
			}

			dispatcher, err := notify.NewDispatcher(settings, logging.ForService("notify"))
			if err != nil {
				return err
			}
			defer dispatcher.Close()

			if !dispatcher.Enabled() {
				return fmt.Errorf("push dispatch is not configured, set notify.push credentials first")
			}

			n := notify.NewNotification(ntype, nprio, title, message).
				WithMetadata("test", true)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := dispatcher.Send(ctx, n); err != nil {
				return err
			}

			fmt.Printf("Test notification sent (id: %s)\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "info", "Notification type: alert|info|error")
	cmd.Flags().StringVar(&prio, "priority", "low", "Notification priority: high|medium|low")
	cmd.Flags().StringVar(&title, "title", "FishCast test", "Notification title")
	cmd.Flags().StringVar(&message, "message", "Test notification from FishCast", "Notification message")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Send timeout")

	return cmd
}
