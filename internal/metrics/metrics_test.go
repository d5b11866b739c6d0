package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorsCount(t *testing.T) {
	before := testutil.ToFloat64(OptimizeRequests.WithLabelValues(OutcomeInvalid))
	OptimizeRequests.WithLabelValues(OutcomeInvalid).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(OptimizeRequests.WithLabelValues(OutcomeInvalid)))

	before = testutil.ToFloat64(CacheLookups.WithLabelValues("miss"))
	CacheLookups.WithLabelValues("miss").Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(CacheLookups.WithLabelValues("miss")))

	before = testutil.ToFloat64(HTTPRequests.WithLabelValues("/health", "200"))
	HTTPRequests.WithLabelValues("/health", "200").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("/health", "200")))
}

func TestDurationHistogramRegistered(t *testing.T) {
	OptimizeDuration.WithLabelValues(OutcomeSuccess).Observe(0.001)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(OptimizeDuration), 1)
}
