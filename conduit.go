package conduit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/observability"
	"github.com/aretw0/conduit/pkg/pipeline"
	"github.com/aretw0/conduit/pkg/ports"
	"github.com/aretw0/conduit/pkg/submit"
	"github.com/aretw0/conduit/pkg/wire"
)

// Version is the release version, overridden at build time with -ldflags.
var Version = "0.1.0-dev"

// Status is the submission state of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Session owns one pipeline being edited and submits it for validation.
// Mutations go through Pipeline() from a single goroutine; Submit and the
// status accessors may be called from any goroutine.
type Session struct {
	pipeline  *pipeline.Pipeline
	submitter *submit.Submitter
	logger    *slog.Logger

	mu       sync.Mutex
	inflight int
	status   Status
	last     *submit.Outcome
	lastErr  error
}

type sessionOptions struct {
	logger     *slog.Logger
	metrics    *observability.Metrics
	cache      ports.VerdictCache
	timeout    time.Duration
	pipeOpts   []pipeline.Option
	submitOpts []submit.Option
}

// Option configures a Session.
type Option func(*sessionOptions)

// WithLogger sets the logger shared by the pipeline and the submitter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithMetrics records submissions and pruned edges on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *sessionOptions) {
		o.metrics = m
	}
}

// WithCache serves repeated verdicts from cache.
func WithCache(cache ports.VerdictCache) Option {
	return func(o *sessionOptions) {
		o.cache = cache
	}
}

// WithTimeout bounds each submission (default submit.DefaultTimeout).
func WithTimeout(d time.Duration) Option {
	return func(o *sessionOptions) {
		o.timeout = d
	}
}

// New starts a session with an empty pipeline validated through checker.
func New(checker ports.AcyclicityChecker, opts ...Option) *Session {
	o := collect(opts)
	return newSession(pipeline.New(o.pipeOpts...), checker, o)
}

// Open starts a session on the pipeline described by payload.
func Open(checker ports.AcyclicityChecker, payload wire.Payload, opts ...Option) (*Session, error) {
	o := collect(opts)
	p, err := wire.Decode(payload, o.pipeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open pipeline: %w", err)
	}
	return newSession(p, checker, o), nil
}

func collect(opts []Option) *sessionOptions {
	o := &sessionOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	metrics := o.metrics
	o.pipeOpts = []pipeline.Option{
		pipeline.WithLogger(o.logger),
		pipeline.WithPruneHook(func(domain.Edge) { metrics.ObservePrunedEdge() }),
	}
	o.submitOpts = []submit.Option{
		submit.WithLogger(o.logger),
		submit.WithMetrics(o.metrics),
		submit.WithTimeout(o.timeout),
	}
	if o.cache != nil {
		o.submitOpts = append(o.submitOpts, submit.WithCache(o.cache))
	}
	return o
}

func newSession(p *pipeline.Pipeline, checker ports.AcyclicityChecker, o *sessionOptions) *Session {
	return &Session{
		pipeline:  p,
		submitter: submit.New(checker, o.submitOpts...),
		logger:    o.logger,
	}
}

// Pipeline returns the pipeline under edit.
func (s *Session) Pipeline() *pipeline.Pipeline { return s.pipeline }

// Submit validates a snapshot taken at call time. Later edits do not affect
// the running submission. The session leaves StatusSubmitting once every
// running submission has returned.
func (s *Session) Submit(ctx context.Context) (*submit.Outcome, error) {
	snap := s.pipeline.Snapshot()

	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	out, err := s.submitter.Submit(ctx, snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.last, s.lastErr = out, err
	if err != nil {
		s.status = StatusFailed
	} else {
		s.status = StatusSucceeded
	}
	return out, err
}

// Status returns StatusSubmitting while any submission runs, otherwise the
// result of the most recent one.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		return StatusSubmitting
	}
	return s.status
}

// Last returns the most recent submission result.
func (s *Session) Last() (*submit.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastErr
}

// Timeout returns the effective submission timeout.
func (s *Session) Timeout() time.Duration { return s.submitter.Timeout() }
