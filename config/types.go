package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Practicum PracticumConfig `mapstructure:"practicum"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Poll      PollConfig      `mapstructure:"poll"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PracticumConfig holds the homework status API connection details
type PracticumConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TelegramConfig holds the bot credentials and the destination chat
type TelegramConfig struct {
	Token         string  `mapstructure:"token"`
	ChatID        string  `mapstructure:"chat_id"`
	APIURL        string  `mapstructure:"api_url"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

// PollConfig controls the polling cadence and the query window
type PollConfig struct {
	// Interval is the fixed pause between two cycles.
	Interval time.Duration `mapstructure:"interval"`
	// Lookback is subtracted from the process start time to build from_date.
	Lookback time.Duration `mapstructure:"lookback"`
}

// NotifyConfig contains notification gating settings
type NotifyConfig struct {
	// Filter is an optional expression; status changes it rejects are not relayed.
	Filter string `mapstructure:"filter"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
