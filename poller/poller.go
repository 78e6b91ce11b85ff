package poller

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/homeworkbot/homework"
	"github.com/s0up4200/homeworkbot/notify"
	"github.com/s0up4200/homeworkbot/practicum"
)

const (
	DefaultInterval = 10 * time.Minute
	DefaultLookback = 5000000 * time.Second

	// FailurePrefix starts every error notification.
	FailurePrefix = "Program failure: "

	noUpdateMessage = "no new updates"
)

// Notifier relays a message. Implementations must not block the loop on failures.
type Notifier interface {
	Notify(ctx context.Context, text string) notify.Result
}

// Matcher decides whether a rendered status change is relayed.
type Matcher interface {
	Match(hw homework.Homework) (bool, error)
}

// SleepFunc pauses for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the fixed pause between cycles.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLookback sets how far before the start time the query window begins.
func WithLookback(d time.Duration) Option {
	return func(p *Poller) {
		if d >= 0 {
			p.lookback = d
		}
	}
}

// WithMatcher installs a notification filter.
func WithMatcher(m Matcher) Option {
	return func(p *Poller) {
		p.matcher = m
	}
}

// WithClock replaces time.Now, which is read once to anchor the query window.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSleep replaces the pause between cycles.
func WithSleep(sleep SleepFunc) Option {
	return func(p *Poller) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// Poller runs the fetch, validate, format, notify loop. It is not safe for
// concurrent use; Run and RunCycle must be called from one goroutine.
type Poller struct {
	fetcher  practicum.StatusFetcher
	notifier Notifier
	matcher  Matcher
	logger   zerolog.Logger

	interval time.Duration
	lookback time.Duration
	now      func() time.Time
	sleep    SleepFunc

	// cursor is fixed at construction; every cycle queries the same window.
	cursor time.Time

	lastStatusMessage string
	lastErrorMessage  string
}

// New creates a Poller anchored at the current time.
func New(fetcher practicum.StatusFetcher, notifier Notifier, logger zerolog.Logger, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		interval: DefaultInterval,
		lookback: DefaultLookback,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cursor = p.now()
	return p
}

// WindowStart is the from_date sent with every request.
func (p *Poller) WindowStart() time.Time {
	return p.cursor.Add(-p.lookback)
}

// Run polls until ctx is cancelled. Every cycle is followed by the full interval,
// whether it succeeded or not.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info().
		Dur("interval", p.interval).
		Time("window_start", p.WindowStart()).
		Msg("Polling started")

	for {
		if ctx.Err() != nil {
			break
		}
		p.RunCycle(ctx)
		if err := p.sleep(ctx, p.interval); err != nil {
			break
		}
	}

	p.logger.Info().Msg("Polling stopped")
	return nil
}

// RunCycle performs a single fetch and notification pass.
func (p *Poller) RunCycle(ctx context.Context) CycleResult {
	update, err := p.evaluate(ctx)
	switch {
	case err == nil:
		return p.relayStatus(ctx, update)
	case errors.Is(err, homework.ErrNoUpdate):
		p.logger.Debug().Msg(noUpdateMessage)
		return CycleResult{Outcome: OutcomeNoUpdate, Message: noUpdateMessage}
	case errors.Is(err, errFiltered):
		p.logger.Debug().
			Str("homework", update.Homework.Name()).
			Str("status", string(update.Homework.Status())).
			Msg("Status change filtered out")
		return CycleResult{Outcome: OutcomeFiltered, Message: update.Message}
	case ctx.Err() != nil:
		return CycleResult{Outcome: OutcomeCancelled, Err: err}
	default:
		return p.relayFailure(ctx, err)
	}
}

var errFiltered = errors.New("filtered")

func (p *Poller) evaluate(ctx context.Context) (homework.Update, error) {
	payload, err := p.fetcher.FetchStatus(ctx, p.WindowStart())
	if err != nil {
		return homework.Update{}, err
	}

	report, err := homework.ParseReport(payload)
	if err != nil {
		return homework.Update{}, err
	}

	update, err := homework.Format(report.Homeworks)
	if err != nil {
		return homework.Update{}, err
	}

	if p.matcher != nil {
		ok, err := p.matcher.Match(update.Homework)
		if err != nil {
			return homework.Update{}, err
		}
		if !ok {
			return update, errFiltered
		}
	}

	return update, nil
}

func (p *Poller) relayStatus(ctx context.Context, update homework.Update) CycleResult {
	if update.Message == p.lastStatusMessage {
		p.logger.Debug().Msg(noUpdateMessage)
		return CycleResult{Outcome: OutcomeUnchanged, Message: update.Message}
	}

	p.logger.Info().
		Str("homework", update.Homework.Name()).
		Str("status", string(update.Homework.Status())).
		Msg("Review status changed")

	_ = p.notifier.Notify(ctx, update.Message)
	p.lastStatusMessage = update.Message

	return CycleResult{Outcome: OutcomeChanged, Message: update.Message, Notified: true}
}

func (p *Poller) relayFailure(ctx context.Context, err error) CycleResult {
	kind := classify(err)
	message := FailurePrefix + err.Error()

	p.logger.Error().
		Err(err).
		Str("kind", kind.String()).
		Msg(message)

	result := CycleResult{Outcome: OutcomeFailed, Failure: kind, Message: message, Err: err}
	if message == p.lastErrorMessage {
		return result
	}

	_ = p.notifier.Notify(ctx, message)
	p.lastErrorMessage = message
	result.Notified = true
	return result
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
