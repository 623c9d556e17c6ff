package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dmsproject/dms/internal/cli/health"
	"github.com/dmsproject/dms/pkg/metadata"
)

// ServiceName identifies the master in health responses.
const ServiceName = "dms-master"

// HealthHandler handles the health endpoint.
//
// The endpoint is unauthenticated and reports process liveness plus the
// reachability of the metadata store, so a single probe covers both.
type HealthHandler struct {
	store     metadata.Store
	startedAt time.Time
}

// NewHealthHandler creates a new health handler.
//
// The store parameter may be nil, in which case the endpoint always
// reports degraded.
func NewHealthHandler(store metadata.Store) *HealthHandler {
	return &HealthHandler{
		store:     store,
		startedAt: time.Now().UTC(),
	}
}

// Health handles GET /health.
//
// Returns 200 with service metadata when the metadata store responds to a
// probe within 5 seconds, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := health.Response{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	resp.Data.Service = ServiceName
	resp.Data.StartedAt = h.startedAt.Format(time.RFC3339)
	uptime := time.Since(h.startedAt)
	resp.Data.Uptime = uptime.String()
	resp.Data.UptimeSec = int64(uptime.Seconds())

	if h.store == nil {
		resp.Status = "degraded"
		resp.Error = "metadata store not configured"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.HealthCheck(ctx); err != nil {
		resp.Status = "degraded"
		resp.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
