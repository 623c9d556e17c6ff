package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSubmit_Valid_Returns202(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	w := httptest.NewRecorder()
	handler.Submit(w, postJSON("/sync", `{"request_id":"r-1","source_path":"/data/src","destination_path":"/data/dst"}`))

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusAccepted, w.Code, w.Body.String())
	}

	var resp statusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "queued" {
		t.Errorf("Expected status 'queued', got '%s'", resp.Status)
	}
	if resp.RequestID != "r-1" {
		t.Errorf("Expected request_id 'r-1', got '%s'", resp.RequestID)
	}
}

func TestSubmit_Duplicate_Returns409(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))
	body := `{"request_id":"r-1","source_path":"/data/src","destination_path":"/data/dst"}`

	w := httptest.NewRecorder()
	handler.Submit(w, postJSON("/sync", body))
	if w.Code != http.StatusAccepted {
		t.Fatalf("First submit failed: %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.Submit(w, postJSON("/sync", body))

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}

	var p Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("Failed to decode problem: %v", err)
	}
	if p.Status != http.StatusConflict {
		t.Errorf("Expected problem status 409, got %d", p.Status)
	}
}

func TestSubmit_MalformedJSON_Returns422(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	w := httptest.NewRecorder()
	handler.Submit(w, postJSON("/sync", `{"request_id":`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Expected problem content type, got '%s'", ct)
	}
}

func TestSubmit_RelativePath_Returns422WithFields(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	w := httptest.NewRecorder()
	handler.Submit(w, postJSON("/sync", `{"request_id":"r-1","source_path":"relative/src","destination_path":"/data/dst"}`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var p Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("Failed to decode problem: %v", err)
	}
	if p.Fields["source_path"] == "" {
		t.Errorf("Expected source_path in problem fields, got %v", p.Fields)
	}
}

func TestGet_Known_ReturnsProgress(t *testing.T) {
	m := newTestMaster(t)
	handler := NewSyncHandler(m)

	w := httptest.NewRecorder()
	handler.Submit(w, postJSON("/sync", `{"request_id":"r-1","source_path":"/data/src","destination_path":"/data/dst"}`))
	if w.Code != http.StatusAccepted {
		t.Fatalf("Submit failed: %d", w.Code)
	}

	req := withURLParam(httptest.NewRequest("GET", "/sync/r-1", nil), "id", "r-1")
	w = httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var progress map[string]any
	if err := json.NewDecoder(w.Body).Decode(&progress); err != nil {
		t.Fatalf("Failed to decode progress: %v", err)
	}
	if progress["request_id"] != "r-1" {
		t.Errorf("Expected request_id 'r-1', got '%v'", progress["request_id"])
	}
	if progress["state"] != "QUEUED" {
		t.Errorf("Expected state 'QUEUED', got '%v'", progress["state"])
	}
}

func TestGet_Unknown_Returns404(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	req := withURLParam(httptest.NewRequest("GET", "/sync/ghost", nil), "id", "ghost")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestList_Empty_ReturnsEmptyArray(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/sync", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty array, got '%s'", body)
	}
}

func TestResults_Unknown_Returns404(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	req := withURLParam(httptest.NewRequest("GET", "/sync/ghost/results", nil), "id", "ghost")
	w := httptest.NewRecorder()
	handler.Results(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDelete_UnknownID_StillReturns200(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	req := withURLParam(httptest.NewRequest("DELETE", "/sync/ghost", nil), "id", "ghost")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp statusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "deleted" {
		t.Errorf("Expected status 'deleted', got '%s'", resp.Status)
	}
}

func TestReassign_UnknownRequest_Returns400(t *testing.T) {
	handler := NewSyncHandler(newTestMaster(t))

	req := withURLParam(postJSON("/sync/ghost/reassign", `{"worker_id":"w-1"}`), "id", "ghost")
	w := httptest.NewRecorder()
	handler.Reassign(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var p Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("Failed to decode problem: %v", err)
	}
	if p.Detail == "" {
		t.Error("Expected a problem detail naming the precondition")
	}
}
