// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors shared by design-space
// enumeration and the HTTP server. Collectors register with the default
// registry on import; promhttp.Handler() exposes them.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "designspace"

var (
	// CasesBuilt counts cases whose validity was decided during enumeration.
	// Labels: valid (true, false)
	CasesBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cases_built_total",
		Help:      "Cases built and checked for validity",
	}, []string{"valid"})

	// EnumerationSeconds measures one full pass over a design space.
	EnumerationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "enumeration_seconds",
		Help:      "Duration of case enumeration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})

	// HTTPRequests counts API requests.
	// Labels: route (gin full path), code (status code)
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "code"})

	// HTTPRequestSeconds measures request latency.
	// Labels: route
	HTTPRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveCase records one validity decision.
func ObserveCase(valid bool) {
	CasesBuilt.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// ObserveEnumeration records the duration of one enumeration.
func ObserveEnumeration(d time.Duration) {
	EnumerationSeconds.Observe(d.Seconds())
}

// ObserveRequest records one served request.
func ObserveRequest(route string, code int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPRequestSeconds.WithLabelValues(route).Observe(d.Seconds())
}
