// Package master implements the DMS control-plane orchestrator: request
// lifecycle, worker registry, scheduling passes, the assignment queue, and
// the progress state machine.
//
// The core is single-threaded cooperative: one mutex serializes every
// mutation of requests, workers, results, and active assignments. The mutex
// is never held across a metadata store call or a queue wait; durable
// writes happen after unlock on snapshot copies, and every progress
// mutation emits exactly one UpdateProgress.
package master

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmsproject/dms/internal/logger"
	"github.com/dmsproject/dms/internal/telemetry"
	"github.com/dmsproject/dms/pkg/metadata"
	"github.com/dmsproject/dms/pkg/metrics"
	"github.com/dmsproject/dms/pkg/model"
	"github.com/dmsproject/dms/pkg/scheduler"
)

// requestState is the master-internal record of one sync request: the
// request itself, its progress, the FIFO of pending source paths, the
// active assignment per endpoint key, and the optional preferred worker
// pinned by reassignment.
type requestState struct {
	req       *model.SyncRequest
	progress  *model.SyncProgress
	pending   []string
	active    map[string]*model.Assignment
	preferred string
}

// workerEntry pairs the most recent heartbeat of a worker with the time
// the master received it.
type workerEntry struct {
	hb   *model.WorkerHeartbeat
	seen time.Time
}

// WorkerInfo is the operator-facing snapshot of one registered worker.
type WorkerInfo struct {
	Heartbeat *model.WorkerHeartbeat `json:"heartbeat"`
	Seen      time.Time              `json:"seen"`
}

// Master is the orchestrator. Construct with New; the zero value is not
// usable.
type Master struct {
	store   metadata.Store
	policy  scheduler.Policy
	metrics metrics.MasterMetrics
	cfg     Config
	now     func() time.Time

	mu           sync.Mutex
	requests     map[string]*requestState
	requestOrder []string
	workers      map[string]*workerEntry
	workerOrder  []string
	results      map[string][]*model.SyncResult
	busy         map[string]string // endpoint key -> request id
	queue        *assignmentQueue
}

// New creates an orchestrator backed by store, selecting endpoints through
// policy. The policy instance becomes owned by the master and must not be
// shared. mm may be nil to disable metrics.
func New(store metadata.Store, policy scheduler.Policy, cfg Config, mm metrics.MasterMetrics) *Master {
	cfg.applyDefaults()

	return &Master{
		store:    store,
		policy:   policy,
		metrics:  mm,
		cfg:      cfg,
		now:      model.Now,
		requests: make(map[string]*requestState),
		workers:  make(map[string]*workerEntry),
		results:  make(map[string][]*model.SyncResult),
		busy:     make(map[string]string),
		queue:    newAssignmentQueue(),
	}
}

// SubmitRequest validates and registers a new sync request, persists its
// initial progress, and triggers a scheduling pass. The returned error is
// a validation error, model.ErrDuplicateRequest, or a store error; in the
// last case the request is still accepted in memory.
func (m *Master) SubmitRequest(ctx context.Context, req *model.SyncRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanSubmit,
		telemetry.RequestID(req.RequestID),
		telemetry.SourcePath(req.SourcePath),
		telemetry.DestinationPath(req.DestinationPath),
		telemetry.Files(len(req.FileList)))
	defer span.End()

	m.mu.Lock()
	if _, exists := m.requests[req.RequestID]; exists {
		m.mu.Unlock()
		return fmt.Errorf("request %s: %w", req.RequestID, model.ErrDuplicateRequest)
	}

	now := m.now()
	st := &requestState{
		req:      req,
		progress: model.NewProgress(req.RequestID),
		pending:  req.PendingFiles(),
		active:   make(map[string]*model.Assignment),
	}
	st.progress.StartedAt = now
	st.progress.UpdatedAt = now
	m.requests[req.RequestID] = st
	m.requestOrder = append(m.requestOrder, req.RequestID)
	snapshot := st.progress.Clone()
	pendingCount := len(st.pending)
	m.mu.Unlock()

	logger.InfoCtx(ctx, "request queued", logger.RequestID(req.RequestID), "files", pendingCount)
	if m.metrics != nil {
		m.metrics.RecordRequestSubmitted()
	}

	storeErr := m.store.StoreRequest(ctx, snapshot)
	if storeErr != nil {
		m.storeFailure("store_request", req.RequestID, storeErr)
		telemetry.RecordError(ctx, storeErr)
	}

	m.scheduleWork(ctx)
	return storeErr
}

// Heartbeat upserts the worker's registry entry, persists it, and triggers
// a scheduling pass. The upsert completes before any scheduling decision
// uses the new data.
func (m *Master) Heartbeat(ctx context.Context, hb *model.WorkerHeartbeat) error {
	hb.Normalize()
	if err := hb.Validate(); err != nil {
		return err
	}

	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanHeartbeat,
		telemetry.WorkerID(hb.WorkerID))
	defer span.End()

	m.mu.Lock()
	if _, known := m.workers[hb.WorkerID]; !known {
		m.workerOrder = append(m.workerOrder, hb.WorkerID)
	}
	m.workers[hb.WorkerID] = &workerEntry{hb: hb, seen: m.now()}
	workerCount := len(m.workers)
	m.mu.Unlock()

	logger.DebugCtx(ctx, "heartbeat received",
		logger.WorkerID(hb.WorkerID),
		"status", hb.Status,
		"endpoints", len(hb.DataPlaneEndpoints))
	if m.metrics != nil {
		m.metrics.SetRegisteredWorkers(workerCount)
	}

	storeErr := m.store.RecordWorker(ctx, hb)
	if storeErr != nil {
		m.storeFailure("record_worker", hb.WorkerID, storeErr)
		telemetry.RecordError(ctx, storeErr)
	}

	m.scheduleWork(ctx)
	return storeErr
}

// NextAssignment hands the worker its oldest queued assignment, waiting up
// to the configured assignment wait. Returns nil when nothing is available
// in time. Entries whose request was forgotten or reassigned in the
// meantime are discarded without being delivered.
func (m *Master) NextAssignment(ctx context.Context, workerID string) *model.Assignment {
	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanNextAssignment,
		telemetry.WorkerID(workerID))
	defer span.End()

	deadline := m.now().Add(m.cfg.AssignmentWait)

	for {
		remaining := deadline.Sub(m.now())
		if remaining <= 0 {
			return nil
		}

		a := m.queue.pop(ctx, workerID, remaining)
		if a == nil {
			return nil
		}

		m.mu.Lock()
		st, ok := m.requests[a.RequestID]
		if !ok || st.active[a.EndpointKey()] != a {
			m.mu.Unlock()
			logger.DebugCtx(ctx, "dropping stale assignment",
				logger.RequestID(a.RequestID),
				logger.Endpoint(a.EndpointKey()))
			continue
		}
		if st.progress.State == model.StateQueued {
			st.progress.State = model.StateProgress
			st.progress.Detail[a.EndpointKey()] = string(model.StateProgress)
		}
		st.progress.UpdatedAt = m.now()
		snapshot := st.progress.Clone()
		m.mu.Unlock()

		// The assignment is already committed in memory, so a failed mirror
		// write must not withhold it from the worker.
		if err := m.store.UpdateProgress(ctx, snapshot); err != nil {
			m.storeFailure("update_progress", a.RequestID, err)
		}
		span.SetAttributes(
			telemetry.RequestID(a.RequestID),
			telemetry.Endpoint(a.EndpointKey()))
		return a
	}
}

// ReportResult records a worker's result for one assignment and advances
// the request's state machine. Results for unknown requests are logged and
// dropped; the worker is still acknowledged.
func (m *Master) ReportResult(ctx context.Context, res *model.SyncResult) error {
	res.Normalize()
	if err := res.Validate(); err != nil {
		return err
	}

	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanReportResult,
		telemetry.RequestID(res.RequestID),
		telemetry.WorkerID(res.WorkerID),
		telemetry.Success(res.Success))
	defer span.End()

	m.mu.Lock()
	st, ok := m.requests[res.RequestID]
	if !ok {
		m.mu.Unlock()
		logger.WarnCtx(ctx, "result for unknown request dropped",
			logger.RequestID(res.RequestID),
			logger.WorkerID(res.WorkerID))
		return nil
	}

	m.results[res.RequestID] = append(m.results[res.RequestID], res)

	key := m.detailKeyLocked(st, res)
	st.progress.UpdatedAt = m.now()
	if res.Success {
		st.progress.Detail[key] = string(model.StateCompleted)
	} else {
		st.progress.State = model.StateFailed
		st.progress.Detail[key] = res.Message
		logger.ErrorCtx(ctx, "request failed on worker",
			logger.RequestID(res.RequestID),
			logger.WorkerID(res.WorkerID),
			logger.Endpoint(key),
			"message", res.Message)
	}

	if _, active := st.active[key]; active {
		delete(st.active, key)
		delete(m.busy, key)
	}

	completed := false
	if len(st.pending) == 0 && len(st.active) == 0 && st.progress.State != model.StateFailed {
		st.progress.State = model.StateCompleted
		completed = true
	}
	snapshot := st.progress.Clone()
	m.mu.Unlock()

	if completed {
		logger.InfoCtx(ctx, "request completed", logger.RequestID(res.RequestID))
	}
	if m.metrics != nil {
		m.metrics.RecordResult(res.Success)
	}

	storeErr := m.store.AppendResult(ctx, res)
	if storeErr != nil {
		m.storeFailure("append_result", res.RequestID, storeErr)
	}
	if err := m.store.UpdateProgress(ctx, snapshot); err != nil {
		m.storeFailure("update_progress", res.RequestID, err)
		if storeErr == nil {
			storeErr = err
		}
	}

	m.scheduleWork(ctx)
	return storeErr
}

// detailKeyLocked resolves the progress detail key for a result: the exact
// endpoint key when the worker reported its data-plane address, otherwise
// an active assignment on the same worker (smallest key keeps the choice
// deterministic), otherwise the bare worker id.
func (m *Master) detailKeyLocked(st *requestState, res *model.SyncResult) string {
	if res.DataPlaneAddress != "" {
		return model.EndpointKey(res.WorkerID, res.DataPlaneAddress)
	}

	var fallback string
	for key, a := range st.active {
		if a.WorkerID != res.WorkerID {
			continue
		}
		if fallback == "" || key < fallback {
			fallback = key
		}
	}
	if fallback != "" {
		return fallback
	}
	return res.WorkerID
}

// ReassignRequest requeues a QUEUED or FAILED request pinned to the given
// worker: active paths return to the front of pending in their original
// order, queued assignments are drained, and a scheduling pass runs with
// the worker as the only candidate.
func (m *Master) ReassignRequest(ctx context.Context, requestID, workerID string) error {
	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanReassign,
		telemetry.RequestID(requestID),
		telemetry.WorkerID(workerID))
	defer span.End()

	m.mu.Lock()
	st, ok := m.requests[requestID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("request %s: %w", requestID, model.ErrRequestNotFound)
	}
	if s := st.progress.State; s != model.StateQueued && s != model.StateFailed {
		m.mu.Unlock()
		return fmt.Errorf("request %s in state %s: %w", requestID, s, model.ErrNotReassignable)
	}
	if _, registered := m.workers[workerID]; !registered {
		m.mu.Unlock()
		return fmt.Errorf("worker %s: %w", workerID, model.ErrWorkerNotRegistered)
	}
	if !workerInPool(m.workerPoolForPathLocked(st.req.SourcePath), workerID) {
		m.mu.Unlock()
		return fmt.Errorf("worker %s cannot reach %s: %w",
			workerID, st.req.SourcePath, model.ErrWorkerCannotReachPath)
	}

	if len(st.active) > 0 {
		st.pending = append(m.restoredPathsLocked(st), st.pending...)
		for key := range st.active {
			delete(m.busy, key)
			delete(st.active, key)
		}
	}
	if len(st.pending) == 0 {
		st.pending = st.req.PendingFiles()
	}

	st.preferred = workerID
	if strings.HasPrefix(st.progress.Detail[model.DetailKeyMaster], "No workers have access") {
		delete(st.progress.Detail, model.DetailKeyMaster)
	}
	st.progress.State = model.StateQueued
	st.progress.UpdatedAt = m.now()
	snapshot := st.progress.Clone()

	// Drain before releasing the lock: a scheduling pass between unlock and
	// drain could dispatch a fresh assignment whose queue entry the drain
	// would then destroy, leaving the endpoint busy with nothing to deliver.
	m.queue.drain(requestID)
	m.mu.Unlock()

	logger.InfoCtx(ctx, "request requeued", logger.RequestID(requestID), logger.WorkerID(workerID))

	storeErr := m.store.UpdateProgress(ctx, snapshot)
	if storeErr != nil {
		m.storeFailure("update_progress", requestID, storeErr)
	}

	m.scheduleWork(ctx)
	return storeErr
}

// restoredPathsLocked returns the source paths of the active assignments
// ordered as they appeared in the original submission.
func (m *Master) restoredPathsLocked(st *requestState) []string {
	order := make(map[string]int, len(st.req.FileList)+1)
	for i, p := range st.req.PendingFiles() {
		if _, seen := order[p]; !seen {
			order[p] = i
		}
	}

	restored := make([]string, 0, len(st.active))
	for _, a := range st.active {
		restored = append(restored, a.SourcePath)
	}
	for i := 1; i < len(restored); i++ {
		for j := i; j > 0 && order[restored[j-1]] > order[restored[j]]; j-- {
			restored[j-1], restored[j] = restored[j], restored[j-1]
		}
	}
	return restored
}

func workerInPool(pool []string, workerID string) bool {
	for _, id := range pool {
		if id == workerID {
			return true
		}
	}
	return false
}

// Progress returns a snapshot of a request's progress.
func (m *Master) Progress(requestID string) (*model.SyncProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", requestID, model.ErrRequestNotFound)
	}
	return st.progress.Clone(), nil
}

// ListProgress returns progress snapshots for every request in insertion
// order.
func (m *Master) ListProgress() []*model.SyncProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*model.SyncProgress, 0, len(m.requestOrder))
	for _, id := range m.requestOrder {
		if st, ok := m.requests[id]; ok {
			list = append(list, st.progress.Clone())
		}
	}
	return list
}

// ProgressForWorker returns snapshots of the requests that currently have
// an active assignment on any endpoint of the worker.
func (m *Master) ProgressForWorker(workerID string) []*model.SyncProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*model.SyncProgress, 0)
	for _, id := range m.requestOrder {
		st, ok := m.requests[id]
		if !ok {
			continue
		}
		for _, a := range st.active {
			if a.WorkerID == workerID {
				list = append(list, st.progress.Clone())
				break
			}
		}
	}
	return list
}

// Results returns the in-memory result log of a request.
func (m *Master) Results(requestID string) ([]*model.SyncResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[requestID]; !ok {
		return nil, fmt.Errorf("request %s: %w", requestID, model.ErrRequestNotFound)
	}
	log := m.results[requestID]
	out := make([]*model.SyncResult, len(log))
	copy(out, log)
	return out, nil
}

// ForgetRequest removes a request from master state and invalidates its
// durable documents. Unknown ids are ignored; queued assignments of the
// request are dropped lazily when popped.
func (m *Master) ForgetRequest(ctx context.Context, requestID string) error {
	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanForget,
		telemetry.RequestID(requestID))
	defer span.End()

	m.mu.Lock()
	st, ok := m.requests[requestID]
	if ok {
		for key := range st.active {
			delete(m.busy, key)
		}
		delete(m.requests, requestID)
		delete(m.results, requestID)
		for i, id := range m.requestOrder {
			if id == requestID {
				m.requestOrder = append(m.requestOrder[:i], m.requestOrder[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if ok {
		m.queue.drain(requestID)
		logger.InfoCtx(ctx, "request removed from master state", logger.RequestID(requestID))
	}

	storeErr := m.store.DeleteRequest(ctx, requestID)
	if storeErr != nil {
		m.storeFailure("delete_request", requestID, storeErr)
	}
	return storeErr
}

// Workers returns the registered workers in insertion order. Heartbeats are
// deep-copied so callers never observe a later heartbeat overwrite.
func (m *Master) Workers() []WorkerInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]WorkerInfo, 0, len(m.workerOrder))
	for _, id := range m.workerOrder {
		if entry, ok := m.workers[id]; ok {
			list = append(list, WorkerInfo{Heartbeat: entry.hb.Clone(), Seen: entry.seen})
		}
	}
	return list
}

// storeFailure logs and counts a failed metadata write. In-memory state is
// already committed at this point and is never rolled back.
func (m *Master) storeFailure(op, id string, err error) {
	logger.Error("metadata store write failed", "op", op, "id", id, logger.Err(err))
	if m.metrics != nil {
		m.metrics.RecordStoreError(op)
	}
}
