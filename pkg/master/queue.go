package master

import (
	"context"
	"sync"
	"time"

	"github.com/dmsproject/dms/pkg/model"
)

// assignmentQueue fans emitted assignments out into per-worker FIFOs.
// Scheduling pushes into the owning worker's queue; polling workers wait
// only on their own, so one worker's backlog never blocks another's poll.
//
// The queue knows nothing about request lifecycles: entries made stale by
// reassignment are drained explicitly, entries made stale by forgetting a
// request are dropped by the orchestrator when popped.
type assignmentQueue struct {
	mu      sync.Mutex
	pending map[string][]*model.Assignment
	wake    chan struct{}
}

func newAssignmentQueue() *assignmentQueue {
	return &assignmentQueue{
		pending: make(map[string][]*model.Assignment),
		wake:    make(chan struct{}),
	}
}

// push appends an assignment to its worker's queue and wakes every waiter.
func (q *assignmentQueue) push(a *model.Assignment) {
	q.mu.Lock()
	q.pending[a.WorkerID] = append(q.pending[a.WorkerID], a)
	close(q.wake)
	q.wake = make(chan struct{})
	q.mu.Unlock()
}

// pop removes the head of workerID's queue, waiting up to timeout for one
// to arrive. Returns nil on timeout or context cancellation.
func (q *assignmentQueue) pop(ctx context.Context, workerID string, timeout time.Duration) *model.Assignment {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		q.mu.Lock()
		if list := q.pending[workerID]; len(list) > 0 {
			head := list[0]
			if len(list) == 1 {
				delete(q.pending, workerID)
			} else {
				q.pending[workerID] = list[1:]
			}
			q.mu.Unlock()
			return head
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-wake:
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// drain removes every queued assignment of requestID, preserving the
// relative order of the remaining entries.
func (q *assignmentQueue) drain(requestID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for workerID, list := range q.pending {
		kept := list[:0]
		for _, a := range list {
			if a.RequestID != requestID {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			delete(q.pending, workerID)
		} else {
			q.pending[workerID] = kept
		}
	}
}

// depth reports the queued entries for a worker.
func (q *assignmentQueue) depth(workerID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending[workerID])
}
