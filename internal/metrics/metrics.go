// Package metrics exposes streaming and physics counters to Prometheus.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voxelsim"

type Metrics struct {
	chunksResident    prometheus.Gauge
	chunksPending     prometheus.Gauge
	chunksGenerated   prometheus.Counter
	chunksReleased    prometheus.Counter
	generationSeconds prometheus.Histogram
	physicsSteps      prometheus.Counter
	contactsResolved  prometheus.Counter
}

// New creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which tests use to read values directly.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chunksResident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "chunks_resident",
			Help:      "Chunks whose generation has completed and that are still loaded.",
		}),
		chunksPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "chunks_pending",
			Help:      "Chunk generation tasks waiting for an idle slot.",
		}),
		chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "chunks_generated_total",
			Help:      "Chunks generated.",
		}),
		chunksReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "chunks_released_total",
			Help:      "Chunks dropped after leaving the draw distance.",
		}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "chunk_generation_seconds",
			Help:      "Time spent generating a single chunk.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		physicsSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "physics",
			Name:      "steps_total",
			Help:      "Fixed physics substeps simulated.",
		}),
		contactsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "physics",
			Name:      "contacts_resolved_total",
			Help:      "Collision contacts applied to the actor.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.chunksResident,
			m.chunksPending,
			m.chunksGenerated,
			m.chunksReleased,
			m.generationSeconds,
			m.physicsSteps,
			m.contactsResolved,
		)
	}
	return m
}

func (m *Metrics) ChunkGenerated(d time.Duration) {
	if m == nil {
		return
	}
	m.chunksGenerated.Inc()
	m.chunksResident.Inc()
	m.generationSeconds.Observe(d.Seconds())
}

func (m *Metrics) ChunkReleased(wasResident bool) {
	if m == nil {
		return
	}
	m.chunksReleased.Inc()
	if wasResident {
		m.chunksResident.Dec()
	}
}

func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.chunksPending.Set(float64(n))
}

func (m *Metrics) PhysicsSteps(n int) {
	if m == nil {
		return
	}
	m.physicsSteps.Add(float64(n))
}

func (m *Metrics) ContactsResolved(n int) {
	if m == nil {
		return
	}
	m.contactsResolved.Add(float64(n))
}
