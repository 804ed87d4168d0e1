// Package submit runs the two-stage validity protocol for one snapshot: the
// delegated acyclicity check and the local connectivity check, combined by
// the validity evaluator.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/connectivity"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/observability"
	"github.com/aretw0/conduit/pkg/ports"
	"github.com/aretw0/conduit/pkg/validity"
	"github.com/aretw0/conduit/pkg/wire"
)

// DefaultTimeout bounds a single submission.
const DefaultTimeout = 15 * time.Second

// Outcome is the result of a submission that reached a verdict.
type Outcome struct {
	// Response is the verdict service answer (counts are for display only).
	Response wire.Response
	// Validity combines the remote verdict with local connectivity.
	Validity validity.Result
	// Unreached lists nodes cut off from the first node, if any.
	Unreached []string
	// Fingerprint identifies the submitted structure.
	Fingerprint string
	// Cached is true when the verdict came from the verdict cache.
	Cached bool
}

// Submitter sends snapshots to an AcyclicityChecker.
// It is safe for concurrent use; concurrent submissions are independent.
type Submitter struct {
	checker ports.AcyclicityChecker
	cache   ports.VerdictCache
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Submitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCache consults cache before calling the checker and fills it after.
func WithCache(cache ports.VerdictCache) Option {
	return func(s *Submitter) {
		s.cache = cache
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// WithMetrics records submissions on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Submitter) {
		s.metrics = m
	}
}

// New creates a Submitter delegating to checker.
func New(checker ports.AcyclicityChecker, opts ...Option) *Submitter {
	s := &Submitter{
		checker: checker,
		timeout: DefaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeout returns the effective per-submission timeout.
func (s *Submitter) Timeout() time.Duration { return s.timeout }

// Submit serializes g, obtains the acyclicity verdict and evaluates validity
// against the same snapshot. It returns within the configured timeout;
// transport failures come back as errors wrapping domain.ErrTimeout,
// domain.ErrNetworkUnreachable or domain.ErrRemote.
func (s *Submitter) Submit(ctx context.Context, g domain.Graph) (*Outcome, error) {
	start := time.Now()
	payload := wire.Serialize(g)
	fp := wire.Fingerprint(payload)
	log := s.logger.With("fingerprint", fp[:12], "nodes", len(payload.Nodes), "edges", len(payload.Edges))

	resp, cached, err := s.verdict(ctx, payload, fp)
	if err != nil {
		s.metrics.ObserveSubmission(outcomeOf(err), time.Since(start))
		log.Warn("submission failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	out := &Outcome{
		Response:    resp,
		Validity:    validity.Evaluate(connectivity.IsConnected(g), resp.IsDAG),
		Unreached:   connectivity.Unreached(g),
		Fingerprint: fp,
		Cached:      cached,
	}
	s.metrics.ObserveSubmission(string(out.Validity.Reason), time.Since(start))
	log.Info("submission evaluated",
		"is_dag", resp.IsDAG,
		"valid", out.Validity.PipelineValid,
		"reason", out.Validity.Reason,
		"cached", cached,
	)
	return out, nil
}

func (s *Submitter) verdict(ctx context.Context, payload wire.Payload, fp string) (wire.Response, bool, error) {
	if s.cache != nil {
		resp, ok, err := s.cache.Get(ctx, fp)
		switch {
		case err != nil:
			s.logger.Warn("verdict cache lookup failed", "error", err)
		case ok:
			s.metrics.ObserveCache(true)
			return resp, true, nil
		default:
			s.metrics.ObserveCache(false)
		}
	}

	resp, err := s.call(ctx, payload)
	if err != nil {
		return wire.Response{}, false, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, fp, resp); err != nil {
			s.logger.Warn("verdict cache store failed", "error", err)
		}
	}
	return resp, false, nil
}

type result struct {
	resp wire.Response
	err  error
}

// call runs the checker under the submission deadline. The wait is released
// when the deadline passes even if the checker ignores its context.
func (s *Submitter) call(ctx context.Context, payload wire.Payload) (wire.Response, error) {
	if s.checker == nil {
		return wire.Response{}, fmt.Errorf("%w: no checker configured", domain.ErrNetworkUnreachable)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		resp, err := s.checker.CheckAcyclic(callCtx, payload)
		done <- result{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return wire.Response{}, s.classify(ctx, r.err)
		}
		return r.resp, nil
	case <-callCtx.Done():
		return wire.Response{}, s.classify(ctx, callCtx.Err())
	}
}

// classify maps context errors onto the transport taxonomy. Errors the
// checker already classified pass through unchanged.
func (s *Submitter) classify(parent context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTimeout),
		errors.Is(err, domain.ErrNetworkUnreachable),
		errors.Is(err, domain.ErrRemote):
		return err
	case parent.Err() != nil && errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", domain.ErrTimeout, s.timeout)
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrTimeout):
		return observability.OutcomeTimeout
	case errors.Is(err, domain.ErrNetworkUnreachable):
		return observability.OutcomeUnreachable
	case errors.Is(err, domain.ErrRemote):
		return observability.OutcomeRemoteError
	}
	return observability.OutcomeFailed
}
