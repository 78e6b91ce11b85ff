package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/homeworkbot/config"
	"github.com/s0up4200/homeworkbot/filter"
	"github.com/s0up4200/homeworkbot/poller"
	"github.com/s0up4200/homeworkbot/practicum"
	"github.com/s0up4200/homeworkbot/telegram"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
	logger  zerolog.Logger

	appVersion = "dev"
	appBuilt   = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "homeworkbot",
	Short: "Relay homework review status changes to Telegram",
	Long: `homeworkbot polls the Practicum homework statuses API at a fixed interval
and sends a Telegram message whenever the review status of your latest homework
changes. Failures are reported to the same chat, once per distinct error.

Running without a subcommand is the same as "homeworkbot run".`,
	PersistentPreRunE: initializeApp,
	RunE:              runPoll,
	SilenceUsage:      true,
}

// SetVersion records build information for the version and update commands.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuilt = buildTime
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml, optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with credentials (skipped when absent)")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads configuration and sets up logging. A missing credential is
// the only fatal condition of the bot and is logged at the highest level.
func initializeApp(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "debug", Format: "console", Color: true})

	var err error
	cfg, err = config.Load(cfgFile, envFile)
	if err != nil {
		var missing *config.MissingVariableError
		if errors.As(err, &missing) {
			logger.WithLevel(zerolog.FatalLevel).
				Str("variable", missing.Name).
				Msg("Missing required environment variable. The program is stopped.")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func newAPIClient() (*practicum.Client, error) {
	client, err := practicum.NewClient(
		cfg.Practicum.Endpoint,
		cfg.Practicum.Token,
		logger.With().Str("component", "practicum").Logger(),
		practicum.WithTimeout(cfg.Practicum.Timeout),
		practicum.WithUserAgent("homeworkbot/"+appVersion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

func newSender() (*telegram.Sender, error) {
	sender, err := telegram.NewSender(
		cfg.Telegram.Token,
		cfg.Telegram.ChatID,
		logger.With().Str("component", "telegram").Logger(),
		telegram.WithAPIURL(cfg.Telegram.APIURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram sender: %w", err)
	}
	return sender, nil
}

func newPoller(notifier poller.Notifier) (*poller.Poller, error) {
	client, err := newAPIClient()
	if err != nil {
		return nil, err
	}

	opts := []poller.Option{
		poller.WithInterval(cfg.Poll.Interval),
		poller.WithLookback(cfg.Poll.Lookback),
	}

	f, err := filter.Compile(cfg.Notify.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid notify.filter: %w", err)
	}
	if f != nil {
		logger.Info().Str("filter", f.Expression()).Msg("Notification filter enabled")
		opts = append(opts, poller.WithMatcher(f))
	}

	return poller.New(client, notifier, logger.With().Str("component", "poller").Logger(), opts...), nil
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "homeworkbot %s (built %s)\n", appVersion, appBuilt)
	},
}
