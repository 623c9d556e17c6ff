// Package prometheus contains the Prometheus implementations of the
// metrics interfaces. Importing it (usually blank) registers the
// constructors with the parent metrics package.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmsproject/dms/pkg/metrics"
)

func init() {
	metrics.RegisterMasterMetricsConstructor(NewMasterMetrics)
}

// masterMetrics is the Prometheus implementation of metrics.MasterMetrics.
type masterMetrics struct {
	requestsSubmitted     prometheus.Counter
	assignmentsDispatched prometheus.Counter
	results               *prometheus.CounterVec
	storeErrors           *prometheus.CounterVec
	schedulingPass        prometheus.Histogram
	busyEndpoints         prometheus.Gauge
	registeredWorkers     prometheus.Gauge
	requestStates         *prometheus.GaugeVec
}

// NewMasterMetrics creates a new Prometheus-backed MasterMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewMasterMetrics() metrics.MasterMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &masterMetrics{
		requestsSubmitted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "dms_requests_submitted_total",
				Help: "Total number of accepted sync requests",
			},
		),
		assignmentsDispatched: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "dms_assignments_dispatched_total",
				Help: "Total number of assignments handed to worker endpoints",
			},
		),
		results: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dms_results_total",
				Help: "Total number of worker results by outcome",
			},
			[]string{"outcome"}, // "success", "failure"
		),
		storeErrors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dms_store_errors_total",
				Help: "Total number of failed metadata store writes by operation",
			},
			[]string{"op"},
		),
		schedulingPass: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "dms_scheduling_pass_duration_milliseconds",
				Help: "Duration of scheduling passes in milliseconds",
				Buckets: []float64{
					0.01, // 10us - empty pass
					0.05, // 50us
					0.1,  // 100us
					0.5,  // 500us
					1,    // 1ms
					5,    // 5ms
					10,   // 10ms
					50,   // 50ms - large registries
					100,  // 100ms
				},
			},
		),
		busyEndpoints: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "dms_busy_endpoints",
				Help: "Current number of worker endpoints holding an active assignment",
			},
		),
		registeredWorkers: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "dms_registered_workers",
				Help: "Current number of workers in the registry",
			},
		),
		requestStates: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dms_requests",
				Help: "Current number of sync requests by lifecycle state",
			},
			[]string{"state"}, // "QUEUED", "PROGRESS", "COMPLETED", "FAILED"
		),
	}
}

func (m *masterMetrics) RecordRequestSubmitted() {
	if m == nil {
		return
	}
	m.requestsSubmitted.Inc()
}

func (m *masterMetrics) RecordAssignmentDispatched() {
	if m == nil {
		return
	}
	m.assignmentsDispatched.Inc()
}

func (m *masterMetrics) RecordResult(success bool) {
	if m == nil {
		return
	}

	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.results.WithLabelValues(outcome).Inc()
}

func (m *masterMetrics) RecordStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

func (m *masterMetrics) ObserveSchedulingPass(duration time.Duration) {
	if m == nil {
		return
	}
	m.schedulingPass.Observe(duration.Seconds() * 1000)
}

func (m *masterMetrics) SetBusyEndpoints(count int) {
	if m == nil {
		return
	}
	m.busyEndpoints.Set(float64(count))
}

func (m *masterMetrics) SetRegisteredWorkers(count int) {
	if m == nil {
		return
	}
	m.registeredWorkers.Set(float64(count))
}

func (m *masterMetrics) SetRequestStates(queued, inProgress, completed, failed int) {
	if m == nil {
		return
	}
	m.requestStates.WithLabelValues("QUEUED").Set(float64(queued))
	m.requestStates.WithLabelValues("PROGRESS").Set(float64(inProgress))
	m.requestStates.WithLabelValues("COMPLETED").Set(float64(completed))
	m.requestStates.WithLabelValues("FAILED").Set(float64(failed))
}
