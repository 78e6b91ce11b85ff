package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the API token and the Telegram bot",
	Long:  `Check that the homework API accepts the token and that the bot token is valid.`,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}
	sender, err := newSender()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Practicum.Timeout+10*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	var apiErr, botErr error

	// Both checks always run to completion so each gets its own verdict.
	var g errgroup.Group
	g.Go(func() error {
		apiErr = client.TestConnection(ctx)
		return apiErr
	})
	g.Go(func() error {
		botErr = sender.Ping(ctx)
		return botErr
	})
	if err := g.Wait(); err != nil {
		logger.Debug().Err(err).Msg("Connectivity check failed")
	}

	fmt.Fprintf(out, "Homework API at %s: %s\n", cfg.Practicum.Endpoint, checkMark(apiErr))
	fmt.Fprintf(out, "Telegram bot (chat %s): %s\n", cfg.Telegram.ChatID, checkMark(botErr))

	if apiErr != nil || botErr != nil {
		return fmt.Errorf("connectivity test failed")
	}
	return nil
}

func checkMark(err error) string {
	if err != nil {
		return "✗ " + err.Error()
	}
	return "✓ ok"
}
