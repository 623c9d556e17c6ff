package apiclient

import (
	"fmt"
	"net/url"

	"github.com/dmsproject/dms/pkg/model"
)

// StatusResponse is the acknowledgement body of the mutating endpoints.
type StatusResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	WorkerID  string `json:"worker_id,omitempty"`
}

// SubmitSync submits a sync request to the master.
func (c *Client) SubmitSync(req *model.SyncRequest) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.post("/sync", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSync returns the progress of one request.
func (c *Client) GetSync(requestID string) (*model.SyncProgress, error) {
	var progress model.SyncProgress
	if err := c.get(fmt.Sprintf("/sync/%s", url.PathEscape(requestID)), &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListSync returns the progress of every request the master knows, oldest
// first.
func (c *Client) ListSync() ([]*model.SyncProgress, error) {
	var list []*model.SyncProgress
	if err := c.get("/sync", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SyncResults returns the per-file results reported for one request.
func (c *Client) SyncResults(requestID string) ([]*model.SyncResult, error) {
	var results []*model.SyncResult
	if err := c.get(fmt.Sprintf("/sync/%s/results", url.PathEscape(requestID)), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteSync forgets a request. Deleting an unknown id succeeds.
func (c *Client) DeleteSync(requestID string) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.delete(fmt.Sprintf("/sync/%s", url.PathEscape(requestID)), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReassignSync requeues a QUEUED or FAILED request pinned to the given
// worker.
func (c *Client) ReassignSync(requestID, workerID string) (*StatusResponse, error) {
	body := map[string]string{"worker_id": workerID}
	var resp StatusResponse
	if err := c.post(fmt.Sprintf("/sync/%s/reassign", url.PathEscape(requestID)), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
