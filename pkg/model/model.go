// Package model defines the DMS control-plane domain types exchanged
// between clients, worker agents, and the master, together with their
// validation rules.
package model

import (
	"strings"
	"time"
)

// WorkerStatus is the self-reported health of a worker agent.
type WorkerStatus string

const (
	WorkerIdle         WorkerStatus = "IDLE"
	WorkerTransferring WorkerStatus = "TRANSFERRING"
	WorkerError        WorkerStatus = "ERROR"
)

// SyncState is the lifecycle state of a sync request.
type SyncState string

const (
	StateQueued    SyncState = "QUEUED"
	StateProgress  SyncState = "PROGRESS"
	StateCompleted SyncState = "COMPLETED"
	StateFailed    SyncState = "FAILED"
)

// Terminal reports whether the state admits no further scheduling without
// an explicit reassignment.
func (s SyncState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// DetailKeyMaster keys progress details that originate from the master
// itself rather than from a worker endpoint.
const DetailKeyMaster = "master"

// DefaultChunkSizeMB is applied when a request omits chunk_size_mb.
const DefaultChunkSizeMB = 64

// endpointKeySep joins worker id and data-plane address into an endpoint key.
const endpointKeySep = "::"

// EndpointKey returns the globally unique identity of a worker's
// data-plane address.
func EndpointKey(workerID, address string) string {
	return workerID + endpointKeySep + address
}

// SplitEndpointKey is the inverse of EndpointKey. ok is false when key does
// not contain a separator.
func SplitEndpointKey(key string) (workerID, address string, ok bool) {
	return strings.Cut(key, endpointKeySep)
}

// Now is the single clock used for every timestamp the master produces.
func Now() time.Time {
	return time.Now().UTC()
}

// SyncRequest is a client-submitted instruction to copy source_path to
// destination_path, optionally restricted to file_list.
type SyncRequest struct {
	RequestID       string   `json:"request_id" validate:"required"`
	SourcePath      string   `json:"source_path" validate:"required,abspath"`
	DestinationPath string   `json:"destination_path" validate:"required,abspath"`
	FileList        []string `json:"file_list,omitempty"`
	ChunkSizeMB     int      `json:"chunk_size_mb,omitempty" validate:"omitempty,min=1,max=1024"`
}

// Normalize applies ingestion defaults. Call before Validate.
func (r *SyncRequest) Normalize() {
	if r.ChunkSizeMB == 0 {
		r.ChunkSizeMB = DefaultChunkSizeMB
	}
}

// PendingFiles returns the initial work units of the request: the file
// list when given, otherwise the source path as a single logical unit.
func (r *SyncRequest) PendingFiles() []string {
	if len(r.FileList) > 0 {
		files := make([]string, len(r.FileList))
		copy(files, r.FileList)
		return files
	}
	return []string{r.SourcePath}
}

// ChunkSizeBytes converts the configured chunk size to bytes.
func (r *SyncRequest) ChunkSizeBytes() int64 {
	return int64(r.ChunkSizeMB) * 1024 * 1024
}

// DataPlaneEndpoint is one network address a worker accepts data-plane
// traffic on.
type DataPlaneEndpoint struct {
	Address string `json:"address" validate:"required"`
}

// WorkerHeartbeat is the periodic self-report of a worker agent. Each
// heartbeat overwrites the worker's registry entry wholesale.
type WorkerHeartbeat struct {
	WorkerID            string              `json:"worker_id" validate:"required"`
	Status              WorkerStatus        `json:"status" validate:"required,oneof=IDLE TRANSFERRING ERROR"`
	Timestamp           time.Time           `json:"timestamp,omitempty"`
	ControlPlaneAddress string              `json:"control_plane_address,omitempty"`
	DataPlaneEndpoints  []DataPlaneEndpoint `json:"data_plane_endpoints,omitempty" validate:"dive"`
	StoragePaths        []string            `json:"storage_paths,omitempty" validate:"dive,abspath"`
}

// Normalize applies ingestion defaults. Call before Validate.
func (hb *WorkerHeartbeat) Normalize() {
	if hb.Timestamp.IsZero() {
		hb.Timestamp = Now()
	}
}

// Clone returns a deep copy safe to hand outside the orchestrator lock.
func (hb *WorkerHeartbeat) Clone() *WorkerHeartbeat {
	if hb == nil {
		return nil
	}
	cp := *hb
	if hb.DataPlaneEndpoints != nil {
		cp.DataPlaneEndpoints = make([]DataPlaneEndpoint, len(hb.DataPlaneEndpoints))
		copy(cp.DataPlaneEndpoints, hb.DataPlaneEndpoints)
	}
	if hb.StoragePaths != nil {
		cp.StoragePaths = make([]string, len(hb.StoragePaths))
		copy(cp.StoragePaths, hb.StoragePaths)
	}
	return &cp
}

// Assignment is a unit of transfer work emitted by the master: one source
// path bound to a specific worker endpoint. The worker pools are carried
// for diagnostic transparency only.
type Assignment struct {
	RequestID             string   `json:"request_id"`
	WorkerID              string   `json:"worker_id"`
	SourcePath            string   `json:"source_path"`
	DestinationPath       string   `json:"destination_path"`
	ChunkOffset           int64    `json:"chunk_offset"`
	ChunkSize             int64    `json:"chunk_size"`
	DataPlaneAddress      string   `json:"data_plane_address"`
	SourceWorkerPool      []string `json:"source_worker_pool"`
	DestinationWorkerPool []string `json:"destination_worker_pool"`
}

// EndpointKey returns the key of the endpoint this assignment occupies.
func (a *Assignment) EndpointKey() string {
	return EndpointKey(a.WorkerID, a.DataPlaneAddress)
}

// SyncResult is a worker's report for one completed (or failed) assignment.
// data_plane_address identifies the endpoint used so the master can match
// the result back to the originating assignment.
type SyncResult struct {
	RequestID        string    `json:"request_id" validate:"required"`
	WorkerID         string    `json:"worker_id" validate:"required"`
	Success          bool      `json:"success"`
	Message          string    `json:"message,omitempty"`
	CompletedAt      time.Time `json:"completed_at,omitempty"`
	DataPlaneAddress string    `json:"data_plane_address,omitempty"`
}

// Normalize applies ingestion defaults. Call before Validate.
func (r *SyncResult) Normalize() {
	if r.CompletedAt.IsZero() {
		r.CompletedAt = Now()
	}
}

// SyncProgress is the master-owned view of a request's lifecycle. Detail
// maps an endpoint key (or DetailKeyMaster) to a short status string: a
// state name while the endpoint works, or an error message on failure.
type SyncProgress struct {
	RequestID        string            `json:"request_id"`
	TransferredBytes int64             `json:"transferred_bytes"`
	TotalBytes       int64             `json:"total_bytes"`
	StartedAt        time.Time         `json:"started_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	State            SyncState         `json:"state"`
	Detail           map[string]string `json:"detail,omitempty"`
}

// NewProgress returns the initial QUEUED progress for a request.
func NewProgress(requestID string) *SyncProgress {
	now := Now()
	return &SyncProgress{
		RequestID: requestID,
		StartedAt: now,
		UpdatedAt: now,
		State:     StateQueued,
		Detail:    make(map[string]string),
	}
}

// Clone returns a deep copy safe to hand outside the orchestrator lock.
func (p *SyncProgress) Clone() *SyncProgress {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Detail != nil {
		cp.Detail = make(map[string]string, len(p.Detail))
		for k, v := range p.Detail {
			cp.Detail[k] = v
		}
	}
	return &cp
}
