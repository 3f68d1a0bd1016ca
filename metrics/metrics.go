package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//*******************************************
// skim metrics
//*******************************************

var (
	// treesTotal counts computed shortest path trees by direction
	treesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skims_trees_total",
		Help: "Total shortest path trees computed by direction",
	}, []string{"direction"})

	cellsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skims_cells_total",
		Help: "Total origin destination cells written",
	})

	// unresolvedTotal counts zones without graph nodes by side
	unresolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skims_unresolved_zones_total",
		Help: "Total zones without any graph node",
	}, []string{"side"}) // "origin" or "destination"

	computationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skims_computation_duration_seconds",
		Help:    "Matrix computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10), // 10ms to ~45min
	}, []string{"result"})

	activeWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skims_active_workers",
		Help: "Number of running matrix workers",
	})
)

func TreeComputed(direction string) {
	treesTotal.WithLabelValues(direction).Inc()
}

func CellsWritten(count int) {
	cellsTotal.Add(float64(count))
}

func ZoneUnresolved(side string) {
	unresolvedTotal.WithLabelValues(side).Inc()
}

// ObserveComputation records the duration of a matrix computation. result is
// "ok" or "error".
func ObserveComputation(result string, duration time.Duration) {
	computationDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func WorkerStarted() {
	activeWorkers.Inc()
}
func WorkerStopped() {
	activeWorkers.Dec()
}
