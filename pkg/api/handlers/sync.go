package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/model"
)

// SyncHandler handles the operator-facing sync request endpoints.
type SyncHandler struct {
	master *master.Master
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(m *master.Master) *SyncHandler {
	return &SyncHandler{master: m}
}

// reassignRequestBody is the request body for POST /sync/{id}/reassign.
type reassignRequestBody struct {
	WorkerID string `json:"worker_id"`
}

// Submit handles POST /sync.
//
// Accepts a SyncRequest, registers it with the orchestrator, and answers
// 202 as soon as the request is queued. Duplicate request ids yield 409,
// validation failures 422.
func (h *SyncHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SyncRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.master.SubmitRequest(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateRequest):
			conflict(w, err.Error())
		case model.FieldErrors(err) != nil:
			validationProblem(w, err)
		default:
			internalError(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusAccepted, statusResponse{
		Status:    "queued",
		RequestID: req.RequestID,
	})
}

// List handles GET /sync.
//
// Returns the progress of every request the master knows, oldest first.
func (h *SyncHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.master.ListProgress())
}

// Get handles GET /sync/{id}.
func (h *SyncHandler) Get(w http.ResponseWriter, r *http.Request) {
	progress, err := h.master.Progress(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Results handles GET /sync/{id}/results.
//
// Returns every result reported for the request in arrival order.
func (h *SyncHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.master.Results(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Delete handles DELETE /sync/{id}.
//
// Forgets the request. Deleting an unknown id is a no-op; the response is
// 200 either way so operators can retry freely.
func (h *SyncHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.master.ForgetRequest(r.Context(), chi.URLParam(r, "id")); err != nil {
		internalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

// Reassign handles POST /sync/{id}/reassign.
//
// Requeues a QUEUED or FAILED request pinned to the given worker. Every
// precondition failure (unknown request, wrong state, unknown worker,
// unreachable source path) answers 400 with the reason in the problem
// detail.
func (h *SyncHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body reassignRequestBody
	if !decodeJSONBody(w, r, &body) {
		return
	}

	if err := h.master.ReassignRequest(r.Context(), id, body.WorkerID); err != nil {
		switch {
		case errors.Is(err, model.ErrRequestNotFound),
			errors.Is(err, model.ErrNotReassignable),
			errors.Is(err, model.ErrWorkerNotRegistered),
			errors.Is(err, model.ErrWorkerCannotReachPath):
			badRequest(w, err.Error())
		default:
			internalError(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "requeued",
		RequestID: id,
		WorkerID:  body.WorkerID,
	})
}
