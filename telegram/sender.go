// Package telegram delivers plain-text messages to a single Telegram chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v4"
)

const defaultTimeout = 10 * time.Second

// Option configures a Sender.
type Option func(*tele.Settings)

// WithAPIURL points the bot at a different Bot API server.
func WithAPIURL(url string) Option {
	return func(s *tele.Settings) {
		if url = strings.TrimSpace(url); url != "" {
			s.URL = strings.TrimRight(url, "/")
		}
	}
}

// WithTimeout sets the HTTP timeout for Bot API calls.
func WithTimeout(timeout time.Duration) Option {
	return func(s *tele.Settings) {
		if timeout > 0 {
			s.Client = &http.Client{Timeout: timeout}
		}
	}
}

// Sender sends messages to the configured chat.
type Sender struct {
	bot    *tele.Bot
	chat   tele.Recipient
	logger zerolog.Logger
}

// username addresses a public channel or group by its @name.
type username string

func (u username) Recipient() string { return string(u) }

// NewSender builds a Sender without contacting Telegram. A chat id that is neither
// numeric nor an @username is accepted here and rejected by Telegram at send time.
func NewSender(token, chatID string, logger zerolog.Logger, opts ...Option) (*Sender, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil, errors.New("telegram chat id is empty")
	}

	settings := tele.Settings{
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&settings)
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Sender{bot: b, chat: recipient(chatID), logger: logger}, nil
}

// Send delivers text as a plain message.
func (s *Sender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := s.bot.Send(s.chat, text)
	if err != nil {
		return fmt.Errorf("send to chat %s: %w", s.chat.Recipient(), err)
	}
	s.logger.Debug().Int("message_id", msg.ID).Msg("Telegram accepted message")
	return nil
}

// Ping verifies the bot token with getMe.
func (s *Sender) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.bot.Raw("getMe", nil); err != nil {
		return fmt.Errorf("telegram getMe: %w", err)
	}
	return nil
}

func recipient(chatID string) tele.Recipient {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return tele.ChatID(id)
	}
	return username(chatID)
}
