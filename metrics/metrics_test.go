package metrics_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/dstoolbox/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCase(t *testing.T) {
	before := testutil.ToFloat64(metrics.CasesBuilt.WithLabelValues("true"))
	metrics.ObserveCase(true)
	metrics.ObserveCase(true)
	metrics.ObserveCase(false)
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.CasesBuilt.WithLabelValues("true")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("unmatched", "404"))
	metrics.ObserveRequest("", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("unmatched", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestSeconds, "designspace_http_request_seconds"))
}

func TestObserveEnumeration(t *testing.T) {
	metrics.ObserveEnumeration(20 * time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.EnumerationSeconds))
}
