package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FiringsTotal counts job firings by outcome (status=success/failure).
	FiringsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patrol",
		Subsystem: "scheduler",
		Name:      "job_firings_total",
		Help:      "Job body executions by outcome",
	}, []string{"job", "status"})

	// OverlapSkipsTotal counts firings skipped because the previous
	// firing of the same job was still running.
	OverlapSkipsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patrol",
		Subsystem: "scheduler",
		Name:      "job_overlap_skips_total",
		Help:      "Firings skipped due to a still-running predecessor",
	}, []string{"job"})

	// JobsInflight tracks currently executing job bodies.
	JobsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "patrol",
		Subsystem: "scheduler",
		Name:      "jobs_inflight",
		Help:      "Job bodies currently executing",
	})

	// StoreDriftTotal counts metadata writes that failed after the
	// engine mutation succeeded, leaving persisted state stale until a
	// retry converges it.
	StoreDriftTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patrol",
		Subsystem: "store",
		Name:      "drift_total",
		Help:      "Metadata mirror writes that failed after an engine mutation (op=start/pause/update_interval/delete/last_success)",
	}, []string{"op"})
)
