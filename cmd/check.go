package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/homeworkbot/notify"
	"github.com/s0up4200/homeworkbot/poller"
)

var sendCheck bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single polling cycle and print the result",
	Long: `Fetch the homework statuses once and print the message the bot would send.
Nothing is sent to Telegram unless --send is given.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&sendCheck, "send", false, "also deliver the message to Telegram")
}

// printNotifier writes messages instead of delivering them.
type printNotifier struct {
	w io.Writer
}

func (p printNotifier) Notify(_ context.Context, text string) notify.Result {
	fmt.Fprintln(p.w, text)
	return notify.Result{Text: text, Delivered: true}
}

func runCheck(cmd *cobra.Command, args []string) error {
	var notifier poller.Notifier = printNotifier{w: cmd.OutOrStdout()}
	if sendCheck {
		sender, err := newSender()
		if err != nil {
			return err
		}
		notifier = notify.New(sender, logger.With().Str("component", "notify").Logger())
	}

	p, err := newPoller(notifier)
	if err != nil {
		return err
	}

	return reportCycle(cmd.OutOrStdout(), p.RunCycle(cmd.Context()))
}

func reportCycle(w io.Writer, res poller.CycleResult) error {
	switch res.Outcome {
	case poller.OutcomeNoUpdate:
		fmt.Fprintln(w, "No homeworks in the query window.")
	case poller.OutcomeFiltered:
		fmt.Fprintf(w, "Filtered out: %s\n", res.Message)
	case poller.OutcomeFailed:
		return fmt.Errorf("check failed (%s): %w", res.Failure, res.Err)
	case poller.OutcomeCancelled:
		return res.Err
	}
	return nil
}
