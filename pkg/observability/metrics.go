package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for submissions.
const (
	OutcomeValid        = "valid"
	OutcomeCycle        = "cycle_detected"
	OutcomeDisconnected = "disconnected_nodes"
	OutcomeTimeout      = "timeout"
	OutcomeUnreachable  = "network_unreachable"
	OutcomeRemoteError  = "remote_error"
	OutcomeFailed       = "failed"
)

// Metrics groups every collector the module publishes.
type Metrics struct {
	Submissions       *prometheus.CounterVec
	SubmissionLatency prometheus.Histogram
	CacheLookups      *prometheus.CounterVec
	Verdicts          *prometheus.CounterVec
	DanglingEdges     prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_submissions_total",
				Help: "Pipeline submissions by outcome",
			},
			[]string{"outcome"},
		),
		SubmissionLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "conduit_submission_duration_seconds",
				Help:    "Time from submit to verdict or failure",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 15},
			},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_verdict_cache_lookups_total",
				Help: "Verdict cache lookups by result",
			},
			[]string{"result"},
		),
		Verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_verdicts_total",
				Help: "Verdicts computed by the verdict service",
			},
			[]string{"is_dag"},
		),
		DanglingEdges: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "conduit_dangling_edges_pruned_total",
				Help: "Edges dropped because a port disappeared",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Submissions, m.SubmissionLatency, m.CacheLookups, m.Verdicts, m.DanglingEdges)
	}
	return m
}

// ObserveSubmission records one finished submission.
func (m *Metrics) ObserveSubmission(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
	m.SubmissionLatency.Observe(elapsed.Seconds())
}

// ObserveCache records a verdict cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// ObserveVerdict records a verdict produced by the service.
func (m *Metrics) ObserveVerdict(isDAG bool) {
	if m == nil {
		return
	}
	if isDAG {
		m.Verdicts.WithLabelValues("true").Inc()
		return
	}
	m.Verdicts.WithLabelValues("false").Inc()
}

// ObservePrunedEdge counts one dangling edge removal.
func (m *Metrics) ObservePrunedEdge() {
	if m == nil {
		return
	}
	m.DanglingEdges.Inc()
}
