package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmsproject/dms/pkg/model"
)

// Problem is an RFC 7807 problem document. Every error response of the
// control plane uses this shape with Content-Type application/problem+json.
type Problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeProblem writes a problem document with the given status code.
func writeProblem(w http.ResponseWriter, status int, detail string) {
	writeProblemFields(w, status, detail, nil)
}

// writeProblemFields writes a problem document carrying per-field validation
// failures.
func writeProblemFields(w http.ResponseWriter, status int, detail string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	p := Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Fields: fields,
	}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		http.Error(w, `{"title":"Internal Server Error","status":500}`, http.StatusInternalServerError)
	}
}

// validationProblem writes a 422 problem for a request body that failed
// schema validation, naming the offending fields when the error carries
// them.
func validationProblem(w http.ResponseWriter, err error) {
	writeProblemFields(w, http.StatusUnprocessableEntity, err.Error(), model.FieldErrors(err))
}

// badRequest writes a 400 problem.
func badRequest(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusBadRequest, detail)
}

// notFound writes a 404 problem.
func notFound(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusNotFound, detail)
}

// conflict writes a 409 problem.
func conflict(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusConflict, detail)
}

// internalError writes a 500 problem.
func internalError(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusInternalServerError, detail)
}
