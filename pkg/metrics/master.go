package metrics

import (
	"time"
)

// MasterMetrics provides observability for the orchestrator.
//
// This interface is optional - pass nil to disable metrics collection with
// zero overhead.
type MasterMetrics interface {
	// RecordRequestSubmitted increments the accepted sync request counter.
	RecordRequestSubmitted()

	// RecordAssignmentDispatched increments the dispatched assignment counter.
	RecordAssignmentDispatched()

	// RecordResult records a worker result by outcome.
	//
	// Parameters:
	//   - success: Whether the worker reported success
	RecordResult(success bool)

	// RecordStoreError records a failed metadata store write.
	//
	// Parameters:
	//   - op: Store operation name (e.g., "update_progress", "append_result")
	RecordStoreError(op string)

	// ObserveSchedulingPass records the duration of one scheduling pass.
	ObserveSchedulingPass(duration time.Duration)

	// SetBusyEndpoints updates the count of endpoints holding an active
	// assignment.
	SetBusyEndpoints(count int)

	// SetRegisteredWorkers updates the count of workers in the registry.
	SetRegisteredWorkers(count int)

	// SetRequestStates updates the per-state request gauges.
	SetRequestStates(queued, inProgress, completed, failed int)
}

// NewMasterMetrics creates a new Prometheus-backed MasterMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
// When nil is returned, callers should pass nil to the orchestrator, which
// results in zero overhead.
func NewMasterMetrics() MasterMetrics {
	if !IsEnabled() || newPrometheusMasterMetrics == nil {
		return nil
	}
	return newPrometheusMasterMetrics()
}

// newPrometheusMasterMetrics is implemented in pkg/metrics/prometheus.
// This indirection avoids import cycles while keeping the API clean.
var newPrometheusMasterMetrics func() MasterMetrics

// RegisterMasterMetricsConstructor registers the Prometheus master metrics
// constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterMasterMetricsConstructor(constructor func() MasterMetrics) {
	newPrometheusMasterMetrics = constructor
}
