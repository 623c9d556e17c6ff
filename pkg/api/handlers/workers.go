package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/model"
)

// WorkerHandler handles the worker-facing control-plane endpoints.
type WorkerHandler struct {
	master *master.Master
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(m *master.Master) *WorkerHandler {
	return &WorkerHandler{master: m}
}

// Heartbeat handles POST /workers/heartbeat.
//
// Upserts the worker's registry entry and triggers a scheduling pass.
func (h *WorkerHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var hb model.WorkerHeartbeat
	if !decodeJSONBody(w, r, &hb) {
		return
	}

	if err := h.master.Heartbeat(r.Context(), &hb); err != nil {
		if model.FieldErrors(err) != nil {
			validationProblem(w, err)
		} else {
			internalError(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// NextAssignment handles POST /workers/{id}/assignment.
//
// Long-polls for the worker's next assignment up to the configured wait;
// the response body is the assignment, or null when none became available.
func (h *WorkerHandler) NextAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := h.master.NextAssignment(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, assignment)
}

// Result handles POST /workers/result.
//
// Records a transfer result. Results for unknown requests are dropped by
// the orchestrator; the worker is acknowledged either way so it never
// retries a report forever.
func (h *WorkerHandler) Result(w http.ResponseWriter, r *http.Request) {
	var res model.SyncResult
	if !decodeJSONBody(w, r, &res) {
		return
	}

	if err := h.master.ReportResult(r.Context(), &res); err != nil {
		if model.FieldErrors(err) != nil {
			validationProblem(w, err)
		} else {
			internalError(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "ack"})
}

// List handles GET /workers.
//
// Returns every registered worker with its latest heartbeat, in
// registration order.
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.master.Workers())
}

// Requests handles GET /workers/{id}/requests.
//
// Returns the progress of every request with an active assignment on the
// worker.
func (h *WorkerHandler) Requests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.master.ProgressForWorker(chi.URLParam(r, "id")))
}
