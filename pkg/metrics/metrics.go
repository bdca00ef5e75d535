// Package metrics provides performance tracking for dictstream using
// Prometheus metrics. It exposes counters and histograms for block
// production and key materialization.
//
// # Basic Usage
//
//	// Record a produced block
//	metrics.BlocksProduced.WithLabelValues("cities").Inc()
//	metrics.RowsProjected.WithLabelValues("cities").Add(float64(block.Rows()))
//
//	// Track block fill latency
//	timer := metrics.NewTimer()
//	block, err := stream.ProduceBlock(start, length)
//	metrics.BlockFillLatency.WithLabelValues("cities").Observe(float64(timer.Stop().Nanoseconds()))
//
// Metrics are designed to have minimal overhead: atomic prometheus
// primitives only, no locks on the hot path.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksProduced tracks the total number of blocks produced.
	// Labels: stream (stream name)
	BlocksProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictstream_blocks_produced_total",
			Help: "Total number of columnar blocks produced",
		},
		[]string{"stream"},
	)

	// RowsProjected tracks the total number of rows projected into blocks.
	// Labels: stream (stream name)
	RowsProjected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictstream_rows_projected_total",
			Help: "Total number of rows projected into blocks",
		},
		[]string{"stream"},
	)

	// BlockFillLatency tracks the distribution of block fill latencies in
	// nanoseconds. Buckets are tuned for in-memory, CPU-bound work.
	// Labels: stream (stream name)
	BlockFillLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dictstream_block_fill_latency_nanoseconds",
			Help: "Block fill latency in nanoseconds",
			Buckets: []float64{
				1000,  // 1μs - trivial projections
				10000, // 10μs - small blocks
				1e5,   // 100μs - typical blocks
				1e6,   // 1ms - large blocks
				1e7,   // 10ms - very large blocks
				1e8,   // 100ms - pathological
			},
		},
		[]string{"stream"},
	)

	// KeysMaterialized tracks the total number of composite keys decoded
	// into typed columns. Labels: stream (stream name)
	KeysMaterialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictstream_keys_materialized_total",
			Help: "Total number of composite keys materialized",
		},
		[]string{"stream"},
	)

	// MaterializeLatency tracks key materialization latency in nanoseconds.
	// Labels: stream (stream name)
	MaterializeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dictstream_materialize_latency_nanoseconds",
			Help: "Composite key materialization latency in nanoseconds",
			Buckets: []float64{
				10000, // 10μs
				1e5,   // 100μs
				1e6,   // 1ms
				1e7,   // 10ms
				1e8,   // 100ms
				1e9,   // 1s
			},
		},
		[]string{"stream"},
	)
)

// Timer measures elapsed time for latency observations.
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed time since the timer started.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
