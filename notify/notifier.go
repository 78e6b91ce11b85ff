// Package notify relays messages to the chat on a best-effort basis.
//
// Notify never returns an error: delivery problems are logged and reported in the
// Result so callers can observe them, but the polling loop is never interrupted by
// a message that could not be delivered.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Sender delivers a text message to the chat.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Result describes one delivery attempt.
type Result struct {
	Text      string
	Delivered bool
	Err       error
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithRateLimit caps deliveries to perSecond messages with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(n *Notifier) {
		if perSecond <= 0 {
			n.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		n.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Notifier is a best-effort, rate-limited front for a Sender.
type Notifier struct {
	sender  Sender
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// New creates a Notifier. Without options it allows one message per second.
func New(sender Sender, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify attempts to deliver text once.
func (n *Notifier) Notify(ctx context.Context, text string) (res Result) {
	res.Text = text

	defer func() {
		if r := recover(); r != nil {
			res.Delivered = false
			res.Err = fmt.Errorf("sender panicked: %v", r)
			n.logger.Error().Err(res.Err).Msg("Failed to send message")
		}
	}()

	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			res.Err = fmt.Errorf("rate limiter: %w", err)
			n.logger.Error().Err(res.Err).Msg("Failed to send message")
			return res
		}
	}

	if err := n.sender.Send(ctx, text); err != nil {
		res.Err = err
		n.logger.Error().Err(err).Str("text", text).Msg("Failed to send message")
		return res
	}

	res.Delivered = true
	n.logger.Debug().Str("text", text).Msg("Bot sent message")
	return res
}
