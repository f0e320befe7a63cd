package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const namespace = "bigcalc"

// Operation outcome labels.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// Metrics holds the application's collectors. The zero of *Metrics (nil) is
// a valid no-op recorder, so callers can make instrumentation optional.
type Metrics struct {
	registry *prometheus.Registry
	memory   *MemoryCollector

	operations      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	primeCandidates prometheus.Counter
	primesFound     prometheus.Counter
	heapAlloc       prometheus.Gauge
	heapObjects     prometheus.Gauge
	gcCycles        prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go
// runtime collector, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		memory:   NewMemoryCollector(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of evaluated operations by name and outcome.",
		}, []string{"op", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock duration of evaluated operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 9),
		}, []string{"op"}),
		primeCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prime_candidates_total",
			Help:      "Number of candidates submitted to the primality test.",
		}),
		primesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primes_found_total",
			Help:      "Number of candidates reported as probable primes.",
		}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use at the last memory snapshot.",
		}),
		heapObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_objects",
			Help:      "Allocated heap objects at the last memory snapshot.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles at the last memory snapshot.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.operations,
		m.duration,
		m.primeCandidates,
		m.primesFound,
		m.heapAlloc,
		m.heapObjects,
		m.gcCycles,
	)
	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Observe records one evaluation of op that took d and ended with err.
func (m *Metrics) Observe(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, statusOf(err)).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// AddPrimeCandidates adds n tested candidates.
func (m *Metrics) AddPrimeCandidates(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.primeCandidates.Add(float64(n))
}

// AddPrimesFound adds n candidates that passed the primality test.
func (m *Metrics) AddPrimesFound(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.primesFound.Add(float64(n))
}

// RecordMemory takes a memory snapshot and publishes it on the heap gauges.
func (m *Metrics) RecordMemory() MemorySnapshot {
	if m == nil {
		return NewMemoryCollector().Snapshot()
	}
	snap := m.memory.Snapshot()
	m.heapAlloc.Set(float64(snap.HeapAlloc))
	m.heapObjects.Set(float64(snap.HeapObjects))
	m.gcCycles.Set(float64(snap.NumGC))
	return snap
}

// WriteTextfile refreshes the memory gauges and writes every metric to path
// in the Prometheus text format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	m.RecordMemory()
	return apperrors.WrapError(prometheus.WriteToTextfile(path, m.registry), "writing metrics to %s", path)
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case apperrors.IsContextError(err):
		return StatusCanceled
	default:
		return StatusError
	}
}
