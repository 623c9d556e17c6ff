package master

import (
	"context"
	"fmt"
	"time"

	"github.com/dmsproject/dms/internal/logger"
	"github.com/dmsproject/dms/internal/telemetry"
	"github.com/dmsproject/dms/pkg/model"
	"github.com/dmsproject/dms/pkg/scheduler"
)

// storeWrite is one durable write deferred out of the scheduling pass so
// the store is never called under the orchestrator lock.
type storeWrite struct {
	progress *model.SyncProgress
	result   *model.SyncResult
}

// scheduleWork runs one scheduling pass over every request and flushes the
// deferred durable writes. Passes run after submit, heartbeat, report and
// reassign. Store failures here are logged only: the in-memory state has
// already advanced and stays authoritative.
func (m *Master) scheduleWork(ctx context.Context) {
	start := time.Now()

	ctx, span := telemetry.StartMasterSpan(ctx, telemetry.SpanSchedulePass,
		telemetry.Policy(m.policy.Name()))
	defer span.End()

	m.mu.Lock()
	writes := m.scheduleWorkLocked()
	m.mu.Unlock()

	for _, w := range writes {
		if w.result != nil {
			if err := m.store.AppendResult(ctx, w.result); err != nil {
				m.storeFailure("append_result", w.result.RequestID, err)
			}
		}
		if w.progress != nil {
			if err := m.store.UpdateProgress(ctx, w.progress); err != nil {
				m.storeFailure("update_progress", w.progress.RequestID, err)
			}
		}
	}

	if m.metrics != nil {
		m.metrics.ObserveSchedulingPass(time.Since(start))
	}
}

// scheduleWorkLocked matches pending work against free endpoints in request
// submission order. Requests whose paths no live worker can reach are
// failed outright; everything else either dispatches or waits for the next
// pass.
func (m *Master) scheduleWorkLocked() []storeWrite {
	var writes []storeWrite

	live := m.liveWorkerCountLocked()

	for _, id := range m.requestOrder {
		st := m.requests[id]
		if st == nil || len(st.pending) == 0 || st.progress.State == model.StateFailed {
			continue
		}
		// An empty registry says nothing about reachability; wait for
		// heartbeats before judging a path unreachable.
		if live == 0 {
			continue
		}

		sourcePool := m.workerPoolForPathLocked(st.req.SourcePath)
		if len(sourcePool) == 0 {
			writes = append(writes, m.failRequestLocked(st,
				fmt.Sprintf("No workers have access to source path %s", st.req.SourcePath))...)
			continue
		}
		destPool := m.workerPoolForPathLocked(st.req.DestinationPath)
		if len(destPool) == 0 {
			writes = append(writes, m.failRequestLocked(st,
				fmt.Sprintf("No workers have access to destination path %s", st.req.DestinationPath))...)
			continue
		}

		candidates := sourcePool
		if st.preferred != "" {
			if !workerInPool(sourcePool, st.preferred) {
				continue
			}
			candidates = []string{st.preferred}
		}

		available := m.availableEndpointsLocked(candidates)
		if len(available) == 0 {
			continue
		}

		needed := len(st.pending)
		if needed > len(available) {
			needed = len(available)
		}

		for _, ep := range m.policy.SelectWorkers(available, needed) {
			if len(st.pending) == 0 {
				break
			}
			key := ep.Key()
			if _, taken := st.active[key]; taken {
				continue
			}

			source := st.pending[0]
			st.pending = st.pending[1:]

			a := &model.Assignment{
				RequestID:             st.req.RequestID,
				WorkerID:              ep.WorkerID,
				SourcePath:            source,
				DestinationPath:       st.req.DestinationPath,
				ChunkOffset:           0,
				ChunkSize:             st.req.ChunkSizeBytes(),
				DataPlaneAddress:      ep.Address,
				SourceWorkerPool:      sourcePool,
				DestinationWorkerPool: destPool,
			}
			st.active[key] = a
			m.busy[key] = st.req.RequestID
			m.queue.push(a)

			logger.Info("assignment dispatched",
				logger.RequestID(st.req.RequestID),
				logger.WorkerID(ep.WorkerID),
				logger.Endpoint(key),
				logger.SourcePath(source))
			if m.metrics != nil {
				m.metrics.RecordAssignmentDispatched()
			}
		}
	}

	if m.metrics != nil {
		m.metrics.SetBusyEndpoints(len(m.busy))
		m.updateStateGaugesLocked()
	}
	return writes
}

// availableEndpointsLocked expands the candidate workers into their free
// data-plane endpoints, preserving pool order and per-heartbeat endpoint
// order. Workers reporting ERROR contribute nothing even when their mounts
// match.
func (m *Master) availableEndpointsLocked(pool []string) []scheduler.Endpoint {
	var available []scheduler.Endpoint
	for _, workerID := range pool {
		entry, ok := m.workers[workerID]
		if !ok || entry.hb.Status == model.WorkerError {
			continue
		}
		for _, ep := range entry.hb.DataPlaneEndpoints {
			key := model.EndpointKey(workerID, ep.Address)
			if _, taken := m.busy[key]; taken {
				continue
			}
			available = append(available, scheduler.Endpoint{WorkerID: workerID, Address: ep.Address})
		}
	}
	return available
}

// failRequestLocked fails a request from the master side: pending work and
// active assignments are cleared, their endpoints freed, and a synthetic
// result attributed to the master is recorded. Returns the deferred writes
// for the result and the final progress.
func (m *Master) failRequestLocked(st *requestState, msg string) []storeWrite {
	now := m.now()
	st.progress.State = model.StateFailed
	st.progress.Detail[model.DetailKeyMaster] = msg
	st.progress.UpdatedAt = now
	st.pending = nil
	for key := range st.active {
		delete(m.busy, key)
		delete(st.active, key)
	}

	res := &model.SyncResult{
		RequestID:   st.req.RequestID,
		WorkerID:    model.DetailKeyMaster,
		Success:     false,
		Message:     msg,
		CompletedAt: now,
	}
	m.results[st.req.RequestID] = append(m.results[st.req.RequestID], res)

	logger.Error("request failed", logger.RequestID(st.req.RequestID), "detail", msg)

	return []storeWrite{{result: res}, {progress: st.progress.Clone()}}
}

func (m *Master) updateStateGaugesLocked() {
	var queued, inProgress, completed, failed int
	for _, st := range m.requests {
		switch st.progress.State {
		case model.StateQueued:
			queued++
		case model.StateProgress:
			inProgress++
		case model.StateCompleted:
			completed++
		case model.StateFailed:
			failed++
		}
	}
	m.metrics.SetRequestStates(queued, inProgress, completed, failed)
}
