package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/homeworkbot/notify"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll for review status changes until interrupted",
	Long: `Poll the homework statuses API every poll.interval and relay status changes and
distinct failures to the configured Telegram chat. Stops on SIGINT or SIGTERM.`,
	RunE: runPoll,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender, err := newSender()
	if err != nil {
		return err
	}

	notifier := notify.New(sender,
		logger.With().Str("component", "notify").Logger(),
		notify.WithRateLimit(cfg.Telegram.RatePerSecond, cfg.Telegram.Burst),
	)

	p, err := newPoller(notifier)
	if err != nil {
		return err
	}

	return p.Run(ctx)
}
