package observability_test

import (
	"testing"
	"time"

	"github.com/aretw0/conduit/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveSubmission(observability.OutcomeValid, 20*time.Millisecond)
	m.ObserveSubmission(observability.OutcomeTimeout, 15*time.Second)
	m.ObserveSubmission(observability.OutcomeValid, time.Millisecond)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveVerdict(false)
	m.ObservePrunedEdge()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(observability.OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(observability.OutcomeTimeout)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DanglingEdges))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	m.ObserveSubmission(observability.OutcomeValid, time.Second)
	m.ObserveCache(true)
	m.ObserveVerdict(true)
	m.ObservePrunedEdge()
}
