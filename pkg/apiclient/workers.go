package apiclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmsproject/dms/pkg/model"
)

// Worker is one registered worker as reported by the master.
type Worker struct {
	Heartbeat *model.WorkerHeartbeat `json:"heartbeat"`
	Seen      time.Time              `json:"seen"`
}

// Heartbeat reports a worker's status, endpoints, and mounts to the master.
func (c *Client) Heartbeat(hb *model.WorkerHeartbeat) error {
	return c.post("/workers/heartbeat", hb, nil)
}

// NextAssignment polls the master for the worker's next assignment. The
// master holds the request up to its configured assignment wait; nil means
// nothing was available in time.
func (c *Client) NextAssignment(workerID string) (*model.Assignment, error) {
	var assignment *model.Assignment
	if err := c.post(fmt.Sprintf("/workers/%s/assignment", url.PathEscape(workerID)), nil, &assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ReportResult reports the outcome of one assignment to the master.
func (c *Client) ReportResult(res *model.SyncResult) error {
	return c.post("/workers/result", res, nil)
}

// ListWorkers returns every registered worker in registration order.
func (c *Client) ListWorkers() ([]Worker, error) {
	var workers []Worker
	if err := c.get("/workers", &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

// WorkerRequests returns the progress of the requests with an active
// assignment on the worker.
func (c *Client) WorkerRequests(workerID string) ([]*model.SyncProgress, error) {
	var list []*model.SyncProgress
	if err := c.get(fmt.Sprintf("/workers/%s/requests", url.PathEscape(workerID)), &list); err != nil {
		return nil, err
	}
	return list, nil
}
