// Package apiclient provides a typed HTTP client for the master control
// plane, used by dmsctl and by worker agents embedding the Go client.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every request issued by a client created with New.
// It leaves headroom over the master's assignment long-poll (1s default).
const DefaultTimeout = 30 * time.Second

// Client is the DMS master API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the master at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithTimeout returns a new client sharing the base URL with a different
// request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return &Client{
		baseURL:    c.baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the master URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one JSON request and decodes the JSON response into result.
// Error responses become *APIError.
func (c *Client) do(method, path string, body, result any) error {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, payload)
	}

	if result == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// decodeError prefers the problem+json body the master emits; anything
// else is wrapped verbatim as the error detail.
func decodeError(status int, payload []byte) error {
	var apiErr APIError
	if json.Unmarshal(payload, &apiErr) == nil && apiErr.Title != "" {
		apiErr.Status = status
		return &apiErr
	}
	return &APIError{
		Status: status,
		Title:  http.StatusText(status),
		Detail: string(payload),
	}
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) delete(path string, result any) error {
	return c.do(http.MethodDelete, path, nil, result)
}
