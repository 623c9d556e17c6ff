package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmsproject/dms/internal/cli/health"
	"github.com/dmsproject/dms/pkg/metadata"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		store      metadata.Store
		wantCode   int
		wantStatus string
		wantError  string
	}{
		{
			name:       "store reachable",
			store:      &stubStore{},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "store unreachable",
			store:      &stubStore{fail: errors.New("connection refused")},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantError:  "connection refused",
		},
		{
			name:       "no store configured",
			store:      nil,
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthHandler(tt.store).Health(w, httptest.NewRequest("GET", "/health", nil))

			if w.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", w.Code, tt.wantCode)
			}

			var resp health.Response
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if tt.wantError != "" && resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
			if tt.wantCode == http.StatusOK {
				if resp.Data.Service != ServiceName {
					t.Errorf("service = %q, want %q", resp.Data.Service, ServiceName)
				}
				if resp.Data.StartedAt == "" {
					t.Error("started_at not set")
				}
			}
		})
	}
}
