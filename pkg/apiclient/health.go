package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmsproject/dms/internal/cli/health"
)

// Health probes the master's health endpoint. Unlike the other calls a
// non-2xx answer is not an error here: a degraded master (metadata store
// unreachable) responds 503 with the same body shape, and callers want
// that payload. Only transport failures return an error.
func (c *Client) Health() (*health.Response, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var report health.Response
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &report, nil
}
