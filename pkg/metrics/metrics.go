// Package metrics exposes Prometheus collectors for the cleaning pipeline.
// The normalizer's pruning counts, tagged missing cells, split columns and
// conversion outcomes are reported here as an observability side channel;
// none of it changes the table a stage returns.
//
// # Basic Usage
//
//	metrics.SetEnabled(true)
//	metrics.Add(metrics.RowsDropped, stats.RowsDropped)
//
//	timer := metrics.NewTimer(stages.NameNormalize)
//	out, err := stage.Apply(ctx, in)
//	elapsed := timer.Observe()
//
// Collectors register with the default Prometheus registry through promauto.
// Recording helpers are no-ops while metrics are disabled.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var enabled atomic.Bool

// SetEnabled turns recording on or off
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether recording is on
func Enabled() bool { return enabled.Load() }

var (
	// RowsDropped counts rows removed because every cell was missing
	RowsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_rows_dropped_total",
		Help: "Rows removed because every cell was missing",
	})

	// ColumnsDropped counts columns removed because every cell was missing
	ColumnsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_columns_dropped_total",
		Help: "Columns removed because every cell was missing",
	})

	// CellsTaggedMissing counts cells replaced by the missing marker
	CellsTaggedMissing = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_cells_tagged_missing_total",
		Help: "Cells whose content matched a missing-value sentinel",
	})

	// ColumnsRetyped counts text columns re-typed as numeric after decimal repair
	ColumnsRetyped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_columns_retyped_total",
		Help: "Text columns re-typed as numeric after decimal repair",
	})

	// ColumnsSplit counts columns split into value/unit pairs
	ColumnsSplit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_columns_split_total",
		Help: "Columns split into value and unit columns",
	})

	// ValuesConverted counts cells rescaled into a canonical unit.
	// Labels: category
	ValuesConverted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabclean_values_converted_total",
		Help: "Values rescaled into their canonical unit",
	}, []string{"category"})

	// UnknownUnits counts cells whose unit token is not in the taxonomy
	UnknownUnits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabclean_unknown_units_total",
		Help: "Cells left untouched because the unit is not recognized",
	})

	// StageDuration tracks stage latency in seconds.
	// Labels: stage
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "tabclean_stage_duration_seconds",
		Help: "Stage execution time in seconds",
		Buckets: []float64{
			1e-5, // 10µs - tiny tables
			1e-4,
			1e-3, // 1ms
			1e-2,
			1e-1, // 100ms
			1,    // 1s - large tables
		},
	}, []string{"stage"})
)

// Add adds n to c when recording is enabled
func Add(c prometheus.Counter, n int) {
	if n <= 0 || !Enabled() {
		return
	}
	c.Add(float64(n))
}

// AddConverted records n conversions in a category
func AddConverted(category string, n int) {
	if n <= 0 || !Enabled() {
		return
	}
	ValuesConverted.WithLabelValues(category).Add(float64(n))
}

// ObserveStage records a stage duration
func ObserveStage(stage string, d time.Duration) {
	if !Enabled() {
		return
	}
	StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Timer measures a stage from creation until Stop or Observe
type Timer struct {
	start time.Time
	name  string
}

// NewTimer starts timing the named stage
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop returns the elapsed time since creation. It can be called repeatedly.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// Observe records the elapsed time in StageDuration under the timer's
// stage label and returns it
func (t *Timer) Observe() time.Duration {
	d := t.Stop()
	ObserveStage(t.name, d)
	return d
}
