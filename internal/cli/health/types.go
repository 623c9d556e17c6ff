// Package health defines the health endpoint payload shared by the
// server handler and the API client.
package health

// Response is the body returned by GET /health. Status is "success"
// when the metadata store answers its ping and "error" otherwise, with
// Error carrying the failure detail.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Data      struct {
		Service   string `json:"service"`
		StartedAt string `json:"started_at"`
		Uptime    string `json:"uptime"`
		UptimeSec int64  `json:"uptime_sec"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}
