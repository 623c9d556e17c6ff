package metadata

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/dmsproject/dms/pkg/model"
)

// miniredisForFactory hands out a bare server address for factory tests.
func miniredisForFactory(t *testing.T) string {
	t.Helper()
	return miniredis.RunT(t).Addr()
}

func newTestRedisStore(t *testing.T, ttlDays int) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := NewRedisStore(Config{
		Backend: "redis",
		TTLDays: ttlDays,
		Redis:   RedisConfig{Addr: mr.Addr()},
	})
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedisStoreRequestRoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t, 1)
	ctx := context.Background()

	progress := model.NewProgress("r-1")
	if err := store.StoreRequest(ctx, progress); err != nil {
		t.Fatalf("StoreRequest() error = %v", err)
	}

	raw, err := mr.Get("dms:requests:r-1")
	if err != nil {
		t.Fatalf("key dms:requests:r-1 missing: %v", err)
	}

	var got model.SyncProgress
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("stored value is not valid JSON: %v", err)
	}
	if got.RequestID != "r-1" || got.State != model.StateQueued {
		t.Errorf("stored progress = %+v, want r-1/QUEUED", got)
	}

	if ttl := mr.TTL("dms:requests:r-1"); ttl != 24*time.Hour {
		t.Errorf("TTL = %v, want %v", ttl, 24*time.Hour)
	}

	progress.State = model.StateProgress
	if err := store.UpdateProgress(ctx, progress); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	raw, _ = mr.Get("dms:requests:r-1")
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("updated value is not valid JSON: %v", err)
	}
	if got.State != model.StateProgress {
		t.Errorf("updated state = %v, want PROGRESS", got.State)
	}
}

func TestRedisStoreNoTTL(t *testing.T) {
	store, mr := newTestRedisStore(t, 0)

	if err := store.StoreRequest(context.Background(), model.NewProgress("r-1")); err != nil {
		t.Fatalf("StoreRequest() error = %v", err)
	}
	if ttl := mr.TTL("dms:requests:r-1"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}

func TestRedisStoreAppendResult(t *testing.T) {
	store, _ := newTestRedisStore(t, 1)
	ctx := context.Background()

	for _, msg := range []string{"first", "second"} {
		err := store.AppendResult(ctx, &model.SyncResult{
			RequestID: "r-1",
			WorkerID:  "w-a",
			Success:   true,
			Message:   msg,
		})
		if err != nil {
			t.Fatalf("AppendResult(%s) error = %v", msg, err)
		}
	}

	entries, err := store.client.LRange(ctx, "dms:results:r-1", 0, -1).Result()
	if err != nil {
		t.Fatalf("LRange() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("result log has %d entries, want 2", len(entries))
	}

	var first model.SyncResult
	if err := json.Unmarshal([]byte(entries[0]), &first); err != nil {
		t.Fatalf("result entry is not valid JSON: %v", err)
	}
	if first.Message != "first" {
		t.Errorf("first entry message = %q, want %q (append order lost)", first.Message, "first")
	}

	if ttl := store.client.TTL(ctx, "dms:results:r-1").Val(); ttl <= 0 {
		t.Errorf("results key TTL = %v, want positive", ttl)
	}
}

func TestRedisStoreRecordWorker(t *testing.T) {
	store, mr := newTestRedisStore(t, 1)

	hb := &model.WorkerHeartbeat{
		WorkerID:     "w-a",
		Status:       model.WorkerIdle,
		StoragePaths: []string{"/mnt/a"},
	}
	hb.Normalize()

	if err := store.RecordWorker(context.Background(), hb); err != nil {
		t.Fatalf("RecordWorker() error = %v", err)
	}

	raw, err := mr.Get("dms:workers:w-a")
	if err != nil {
		t.Fatalf("key dms:workers:w-a missing: %v", err)
	}
	var got model.WorkerHeartbeat
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("stored heartbeat is not valid JSON: %v", err)
	}
	if got.WorkerID != "w-a" || got.Status != model.WorkerIdle {
		t.Errorf("stored heartbeat = %+v", got)
	}
}

func TestRedisStoreDeleteRequest(t *testing.T) {
	store, mr := newTestRedisStore(t, 0)
	ctx := context.Background()

	if err := store.StoreRequest(ctx, model.NewProgress("r-1")); err != nil {
		t.Fatalf("StoreRequest() error = %v", err)
	}
	if err := store.AppendResult(ctx, &model.SyncResult{RequestID: "r-1", WorkerID: "w-a"}); err != nil {
		t.Fatalf("AppendResult() error = %v", err)
	}

	if err := store.DeleteRequest(ctx, "r-1"); err != nil {
		t.Fatalf("DeleteRequest() error = %v", err)
	}
	if mr.Exists("dms:requests:r-1") || mr.Exists("dms:results:r-1") {
		t.Error("DeleteRequest left keys behind")
	}

	// Deleting an unknown request is not an error.
	if err := store.DeleteRequest(ctx, "ghost"); err != nil {
		t.Errorf("DeleteRequest(ghost) error = %v", err)
	}
}

func TestRedisStoreHealthCheck(t *testing.T) {
	store, mr := newTestRedisStore(t, 0)

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}

	mr.Close()
	if err := store.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() succeeded against a stopped server")
	}
}

func TestRedisStoreCustomNamespace(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(Config{
		Backend:   "redis",
		Namespace: "staging",
		Redis:     RedisConfig{Addr: mr.Addr()},
	})
	defer store.Close()

	if err := store.StoreRequest(context.Background(), model.NewProgress("r-1")); err != nil {
		t.Fatalf("StoreRequest() error = %v", err)
	}
	if !mr.Exists("staging:requests:r-1") {
		t.Errorf("expected namespaced key staging:requests:r-1, have %v", mr.Keys())
	}
}
