// Package metadata provides the durable mirror of the master's in-memory
// state.
//
// The master stays authoritative while running: every store write happens
// after the orchestrator lock is released, on a snapshot of the data to
// persist, and a failed write never rolls back memory. After a restart the
// in-memory state is empty and the durable state is what external observers
// see.
//
// Two backends are supported:
//   - Redis (shared deployments, default)
//   - Badger (embedded single-node deployments)
package metadata

import (
	"context"

	"github.com/dmsproject/dms/pkg/model"
)

// Store is the durable metadata contract of the master.
//
// All writes are JSON-encoded values keyed under a namespace with an
// optional TTL. Callers pass snapshot copies; implementations must not
// retain or mutate the arguments after returning.
//
// Thread Safety: implementations must be safe for concurrent use from
// multiple goroutines.
type Store interface {
	// StoreRequest upserts the initial progress document of a request.
	StoreRequest(ctx context.Context, progress *model.SyncProgress) error

	// UpdateProgress upserts the progress document after a mutation.
	// The orchestrator issues exactly one call per progress mutation.
	UpdateProgress(ctx context.Context, progress *model.SyncProgress) error

	// AppendResult appends a worker result to the request's result log.
	AppendResult(ctx context.Context, result *model.SyncResult) error

	// RecordWorker upserts the most recent heartbeat of a worker.
	RecordWorker(ctx context.Context, hb *model.WorkerHeartbeat) error

	// DeleteRequest removes the progress document and the result log of a
	// request. Deleting an unknown request is not an error.
	DeleteRequest(ctx context.Context, requestID string) error

	// HealthCheck fails when the backing store is unreachable. Used by the
	// startup preflight and the health endpoint.
	HealthCheck(ctx context.Context) error

	// Close releases the backend resources.
	Close() error
}
