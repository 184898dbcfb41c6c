package executor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for observing pool behavior.
// Attach a Metrics to an executor with WithMetrics; a nil Metrics is
// valid and records nothing.
type Metrics struct {
	// TasksSubmitted counts tasks accepted by Submit
	TasksSubmitted prometheus.Counter

	// TasksCompleted counts tasks that resolved Completed
	TasksCompleted prometheus.Counter

	// TasksFailed counts tasks that resolved Failed during execution
	TasksFailed prometheus.Counter

	// TasksCancelled counts queued tasks discarded by shutdown or Cancel
	TasksCancelled prometheus.Counter

	// ActiveWorkers tracks workers currently executing a body
	ActiveWorkers prometheus.Gauge

	// QueueDepth tracks tasks waiting for a free worker
	QueueDepth prometheus.Gauge

	// TaskDuration is a histogram of task execution latency
	TaskDuration prometheus.Histogram
}

// NewMetrics creates the pool collectors and registers them with reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks submitted to the executor",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "tasks_completed_total",
			Help:      "Total number of tasks that completed successfully",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "tasks_failed_total",
			Help:      "Total number of tasks that failed during execution",
		}),
		TasksCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "tasks_cancelled_total",
			Help:      "Total number of tasks discarded before execution",
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "active_workers",
			Help:      "Number of workers currently executing a task",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "queue_depth",
			Help:      "Number of tasks waiting for a free worker",
		}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "task_duration_seconds",
			Help:      "Histogram of task execution latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.TasksSubmitted,
			m.TasksCompleted,
			m.TasksFailed,
			m.TasksCancelled,
			m.ActiveWorkers,
			m.QueueDepth,
			m.TaskDuration,
		)
	}

	return m
}

// The recording helpers below are nil-safe so executor internals can call
// them unconditionally.

func (m *Metrics) taskSubmitted() {
	if m != nil {
		m.TasksSubmitted.Inc()
	}
}

func (m *Metrics) taskCompleted(d time.Duration) {
	if m != nil {
		m.TasksCompleted.Inc()
		m.TaskDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) taskFailed() {
	if m != nil {
		m.TasksFailed.Inc()
	}
}

func (m *Metrics) taskCancelled() {
	if m != nil {
		m.TasksCancelled.Inc()
	}
}

func (m *Metrics) workerActive() {
	if m != nil {
		m.ActiveWorkers.Inc()
	}
}

func (m *Metrics) workerIdle() {
	if m != nil {
		m.ActiveWorkers.Dec()
	}
}

func (m *Metrics) queueDepth(n int) {
	if m != nil {
		m.QueueDepth.Set(float64(n))
	}
}
