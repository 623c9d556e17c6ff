package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/metadata"
	"github.com/dmsproject/dms/pkg/model"
	"github.com/dmsproject/dms/pkg/scheduler"
)

// stubStore satisfies metadata.Store without any backing storage. Setting
// fail makes every call return that error.
type stubStore struct {
	fail error
}

var _ metadata.Store = (*stubStore)(nil)

func (s *stubStore) StoreRequest(ctx context.Context, p *model.SyncProgress) error { return s.fail }

func (s *stubStore) UpdateProgress(ctx context.Context, p *model.SyncProgress) error { return s.fail }

func (s *stubStore) AppendResult(ctx context.Context, r *model.SyncResult) error { return s.fail }

func (s *stubStore) RecordWorker(ctx context.Context, hb *model.WorkerHeartbeat) error { return s.fail }

func (s *stubStore) DeleteRequest(ctx context.Context, requestID string) error { return s.fail }

func (s *stubStore) HealthCheck(ctx context.Context) error { return s.fail }

func (s *stubStore) Close() error { return nil }

func newTestMaster(t *testing.T) *master.Master {
	t.Helper()
	policy, err := scheduler.New(scheduler.PolicyRoundRobin)
	if err != nil {
		t.Fatalf("Failed to create policy: %v", err)
	}
	return master.New(&stubStore{}, policy, master.Config{AssignmentWait: 20 * time.Millisecond}, nil)
}

// withURLParam injects a chi route parameter so handler methods can be
// invoked directly, without mounting the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
