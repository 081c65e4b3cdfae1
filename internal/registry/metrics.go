// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// invocationsTotal counts invocations by function and outcome. Names
	// outside the registry share the "unknown" label.
	invocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "research_analytics_invocations_total",
		Help: "Function invocations by function and outcome",
	}, []string{"function", "outcome"})

	invocationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "research_analytics_invocation_duration_seconds",
		Help:    "Function invocation latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	}, []string{"function"})

	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "research_analytics_batch_size",
		Help:    "Number of calls per batch invocation",
		Buckets: prometheus.LinearBuckets(1, 10, 10),
	})
)
