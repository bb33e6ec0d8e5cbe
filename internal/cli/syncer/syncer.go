package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yndnr/tablesync-go/internal/cli/connection"
	"github.com/yndnr/tablesync-go/internal/core/domain"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
)

// Default intervals.
const (
	DefaultPollInterval  = 1 * time.Second
	DefaultRetryInterval = 5 * time.Second
)

// Source fetches table state from the server.
type Source interface {
	State(ctx context.Context) (domain.State, error)
	Changes(ctx context.Context, since int64) (domain.State, error)
}

// Renderer presents rows and failure notices to the user.
type Renderer interface {
	RenderState(state domain.State) error
	RenderChanges(since int64, state domain.State) error
	Notice(msg string)
}

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Config holds the loop intervals.
type Config struct {
	// PollInterval is the wait after an empty delta or a bad response.
	PollInterval time.Duration
	// RetryInterval is the wait after the server could not be reached.
	RetryInterval time.Duration
}

// DefaultConfig returns the default intervals.
func DefaultConfig() Config {
	return Config{
		PollInterval:  DefaultPollInterval,
		RetryInterval: DefaultRetryInterval,
	}
}

// Failure classifies a failed fetch.
type Failure int

const (
	// FailureNone means the fetch succeeded.
	FailureNone Failure = iota
	// FailureTransport means no response was received.
	FailureTransport
	// FailureDecode means the response body was not a table state.
	FailureDecode
	// FailureStatus means the server answered with an unexpected status.
	FailureStatus
)

// String returns the failure name.
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureDecode:
		return "decode"
	case FailureStatus:
		return "status"
	default:
		return fmt.Sprintf("Failure(%d)", int(f))
	}
}

// Classify maps a fetch error to its Failure kind. Errors that are not
// recognised are treated as transport failures.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case connection.IsDecode(err):
		return FailureDecode
	case connection.IsStatus(err):
		return FailureStatus
	default:
		return FailureTransport
	}
}

// Syncer runs the polling loop.
type Syncer struct {
	source   Source
	renderer Renderer
	cfg      Config
	sleep    SleepFunc
	logger   logger.Logger

	watermark int64
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithSleep replaces the wait function.
func WithSleep(fn SleepFunc) Option {
	return func(s *Syncer) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Syncer. Zero intervals in cfg fall back to the defaults.
func New(source Source, renderer Renderer, cfg Config, opts ...Option) *Syncer {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}

	s := &Syncer{
		source:   source,
		renderer: renderer,
		cfg:      cfg,
		sleep:    Sleep,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Watermark returns the last revision the loop has rendered.
func (s *Syncer) Watermark() int64 {
	return s.watermark
}

// Run fetches the full state, then polls for changes until ctx is
// cancelled. It returns nil on cancellation and a non-nil error only if
// rendering fails.
func (s *Syncer) Run(ctx context.Context) error {
	if err := s.initial(ctx); err != nil {
		return ignoreCancel(err)
	}

	for {
		if err := s.Step(ctx); err != nil {
			return ignoreCancel(err)
		}
	}
}

func (s *Syncer) initial(ctx context.Context) error {
	for {
		state, err := s.source.State(ctx)
		if err == nil {
			if err := s.renderer.RenderState(state); err != nil {
				return fmt.Errorf("render state: %w", err)
			}
			s.watermark = state.Revision
			s.logger.Debug("initial state fetched", "revision", state.Revision, "rows", len(state.Rows))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.sleep(ctx, s.backoff(err)); err != nil {
			return err
		}
	}
}

// Step performs one iteration: fetch the delta since the watermark, render
// it or report the failure, then wait as needed. It returns ctx.Err() once
// ctx is done and a render error if rendering fails.
func (s *Syncer) Step(ctx context.Context) error {
	since := s.watermark
	state, err := s.source.Changes(ctx, since)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return s.sleep(ctx, s.backoff(err))
	}

	if state.IsEmpty() {
		return s.sleep(ctx, s.cfg.PollInterval)
	}

	if err := s.renderer.RenderChanges(since, state); err != nil {
		return fmt.Errorf("render changes: %w", err)
	}
	s.watermark = state.Revision
	s.logger.Debug("changes applied", "since", since, "revision", state.Revision, "rows", len(state.Rows))
	return nil
}

// backoff reports err and returns how long to wait before the next attempt.
func (s *Syncer) backoff(err error) time.Duration {
	switch Classify(err) {
	case FailureDecode:
		s.logger.Warn("malformed response", "error", err, "watermark", s.watermark)
		s.renderer.Notice(fmt.Sprintf("malformed response from server: %v", err))
		return s.cfg.PollInterval
	case FailureStatus:
		s.logger.Warn("unexpected response status", "error", err, "watermark", s.watermark)
		s.renderer.Notice(fmt.Sprintf("server error: %v", err))
		return s.cfg.PollInterval
	default:
		s.logger.Warn("connection lost", "error", err, "watermark", s.watermark, "retry_in", s.cfg.RetryInterval)
		s.renderer.Notice(fmt.Sprintf("connection lost, retrying in %s", s.cfg.RetryInterval))
		return s.cfg.RetryInterval
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
