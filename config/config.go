package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultInterval = 10 * time.Minute
	DefaultLookback = 5000000 * time.Second
	DefaultTimeout  = 30 * time.Second
)

// MissingVariableError reports a required credential that was not provided
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Name)
}

// envBindings maps config keys to the environment variables that may carry them.
// The short names are kept for compatibility with existing .env files.
var envBindings = map[string][]string{
	"practicum.token":  {"PRACTICUM_TOKEN", "TOKEN"},
	"telegram.token":   {"TELEGRAM_TOKEN", "TOKEN_BOT"},
	"telegram.chat_id": {"TELEGRAM_CHAT_ID", "CHAT_ID"},
}

// Load loads the configuration from the environment, optional dotenv files and an
// optional config file. An explicit configPath must exist; otherwise the standard
// locations are searched and a missing file is not an error.
func Load(configPath string, envFiles ...string) (*Config, error) {
	if err := loadDotenv(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	v.SetEnvPrefix("HOMEWORKBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".homeworkbot"))
		}
		v.AddConfigPath("/etc/homeworkbot/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotenv exports variables from the given files without overriding the
// process environment. Missing files are skipped.
func loadDotenv(files ...string) error {
	for _, file := range files {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := gotenv.Load(file); err != nil {
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("practicum.endpoint", DefaultEndpoint)
	v.SetDefault("practicum.timeout", DefaultTimeout)

	v.SetDefault("telegram.rate_per_second", 1.0)
	v.SetDefault("telegram.burst", 1)

	v.SetDefault("poll.interval", DefaultInterval)
	v.SetDefault("poll.lookback", DefaultLookback)

	v.SetDefault("notify.filter", "")

	v.SetDefault("logging.level", "debug")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid. Credentials are checked first and
// in a fixed order so the reported variable is deterministic.
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Practicum.Token) == "" {
		return &MissingVariableError{Name: "PRACTICUM_TOKEN"}
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return &MissingVariableError{Name: "TELEGRAM_TOKEN"}
	}
	if strings.TrimSpace(cfg.Telegram.ChatID) == "" {
		return &MissingVariableError{Name: "TELEGRAM_CHAT_ID"}
	}

	if cfg.Practicum.Endpoint == "" {
		return fmt.Errorf("practicum.endpoint is required")
	}
	if cfg.Practicum.Timeout <= 0 {
		return fmt.Errorf("practicum.timeout must be positive")
	}
	if cfg.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive")
	}
	if cfg.Poll.Lookback < 0 {
		return fmt.Errorf("poll.lookback must not be negative")
	}
	if cfg.Telegram.RatePerSecond <= 0 {
		return fmt.Errorf("telegram.rate_per_second must be positive")
	}
	if cfg.Telegram.Burst < 1 {
		return fmt.Errorf("telegram.burst must be at least 1")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
