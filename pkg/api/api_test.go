package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsproject/dms/pkg/apiclient"
	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/metadata"
	"github.com/dmsproject/dms/pkg/model"
	"github.com/dmsproject/dms/pkg/scheduler"
)

// newTestStack wires the full control plane against a throwaway Redis:
// store -> orchestrator -> router -> HTTP server -> typed client.
func newTestStack(t *testing.T) (*apiclient.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := metadata.NewRedisStore(metadata.Config{
		Backend: "redis",
		Redis:   metadata.RedisConfig{Addr: mr.Addr()},
	})
	t.Cleanup(func() { store.Close() })

	policy, err := scheduler.New(scheduler.PolicyRoundRobin)
	require.NoError(t, err)

	m := master.New(store, policy, master.Config{AssignmentWait: 50 * time.Millisecond}, nil)

	server := httptest.NewServer(NewRouter(m, store))
	t.Cleanup(server.Close)

	return apiclient.New(server.URL), mr
}

func heartbeatWorker(t *testing.T, client *apiclient.Client, workerID string, addresses, paths []string) {
	t.Helper()

	endpoints := make([]model.DataPlaneEndpoint, len(addresses))
	for i, addr := range addresses {
		endpoints[i] = model.DataPlaneEndpoint{Address: addr}
	}
	err := client.Heartbeat(&model.WorkerHeartbeat{
		WorkerID:           workerID,
		Status:             model.WorkerIdle,
		DataPlaneEndpoints: endpoints,
		StoragePaths:       paths,
	})
	require.NoError(t, err)
}

func TestEndToEndSyncFlow(t *testing.T) {
	client, mr := newTestStack(t)

	heartbeatWorker(t, client, "worker-1", []string{"10.0.0.1", "10.0.0.2"}, []string{"/data", "/backup"})

	resp, err := client.SubmitSync(&model.SyncRequest{
		RequestID:       "r-1",
		SourcePath:      "/data/src",
		DestinationPath: "/backup/dst",
		FileList:        []string{"/data/src/a.bin", "/data/src/b.bin"},
	})
	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)

	// Both endpoints received an assignment, but nothing was picked up yet.
	progress, err := client.GetSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, model.StateQueued, progress.State)

	a1, err := client.NextAssignment("worker-1")
	require.NoError(t, err)
	require.NotNil(t, a1)
	assert.Equal(t, "r-1", a1.RequestID)
	assert.Equal(t, "/data/src/a.bin", a1.SourcePath)

	a2, err := client.NextAssignment("worker-1")
	require.NoError(t, err)
	require.NotNil(t, a2)
	assert.Equal(t, "/data/src/b.bin", a2.SourcePath)
	assert.NotEqual(t, a1.DataPlaneAddress, a2.DataPlaneAddress)

	// Pickup moved the request to PROGRESS.
	progress, err = client.GetSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, model.StateProgress, progress.State)

	// The request shows up on the worker's active list.
	active, err := client.WorkerRequests("worker-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "r-1", active[0].RequestID)

	for _, a := range []*model.Assignment{a1, a2} {
		err = client.ReportResult(&model.SyncResult{
			RequestID:        a.RequestID,
			WorkerID:         a.WorkerID,
			Success:          true,
			Message:          "transferred",
			DataPlaneAddress: a.DataPlaneAddress,
		})
		require.NoError(t, err)
	}

	progress, err = client.GetSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, model.StateCompleted, progress.State)
	assert.Equal(t, "COMPLETED", progress.Detail[model.EndpointKey("worker-1", "10.0.0.1")])
	assert.Equal(t, "COMPLETED", progress.Detail[model.EndpointKey("worker-1", "10.0.0.2")])

	results, err := client.SyncResults("r-1")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// The terminal state is durable in Redis.
	raw, err := mr.Get("dms:requests:r-1")
	require.NoError(t, err)
	var durable model.SyncProgress
	require.NoError(t, json.Unmarshal([]byte(raw), &durable))
	assert.Equal(t, model.StateCompleted, durable.State)

	// Forgetting removes both memory and durable state.
	del, err := client.DeleteSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, "deleted", del.Status)

	_, err = client.GetSync("r-1")
	require.Error(t, err)
	apiErr, ok := err.(*apiclient.APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())

	assert.False(t, mr.Exists("dms:requests:r-1"))
}

func TestEndToEndFailureAndReassign(t *testing.T) {
	client, _ := newTestStack(t)

	heartbeatWorker(t, client, "w-a", []string{"10.0.0.1"}, []string{"/data", "/backup"})

	_, err := client.SubmitSync(&model.SyncRequest{
		RequestID:       "r-1",
		SourcePath:      "/data/src",
		DestinationPath: "/backup/dst",
	})
	require.NoError(t, err)

	a, err := client.NextAssignment("w-a")
	require.NoError(t, err)
	require.NotNil(t, a)

	err = client.ReportResult(&model.SyncResult{
		RequestID:        a.RequestID,
		WorkerID:         a.WorkerID,
		Success:          false,
		Message:          "disk full",
		DataPlaneAddress: a.DataPlaneAddress,
	})
	require.NoError(t, err)

	progress, err := client.GetSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, model.StateFailed, progress.State)
	assert.Equal(t, "disk full", progress.Detail[model.EndpointKey("w-a", "10.0.0.1")])

	// A fresh worker joins and the operator retargets the request.
	heartbeatWorker(t, client, "w-b", []string{"10.0.0.2"}, []string{"/data", "/backup"})

	reassigned, err := client.ReassignSync("r-1", "w-b")
	require.NoError(t, err)
	assert.Equal(t, "requeued", reassigned.Status)
	assert.Equal(t, "w-b", reassigned.WorkerID)

	// The pinned worker gets the work; the failed one stays idle.
	b, err := client.NextAssignment("w-b")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "r-1", b.RequestID)

	idle, err := client.NextAssignment("w-a")
	require.NoError(t, err)
	assert.Nil(t, idle)

	err = client.ReportResult(&model.SyncResult{
		RequestID:        b.RequestID,
		WorkerID:         b.WorkerID,
		Success:          true,
		DataPlaneAddress: b.DataPlaneAddress,
	})
	require.NoError(t, err)

	progress, err = client.GetSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, model.StateCompleted, progress.State)
}

func TestEndToEndEligibilityFailure(t *testing.T) {
	client, _ := newTestStack(t)

	// A live worker exists, but it cannot see the source path.
	heartbeatWorker(t, client, "w-1", []string{"10.0.0.1"}, []string{"/other"})

	_, err := client.SubmitSync(&model.SyncRequest{
		RequestID:       "r-1",
		SourcePath:      "/data/src",
		DestinationPath: "/other/dst",
	})
	require.NoError(t, err)

	progress, err := client.GetSync("r-1")
	require.NoError(t, err)
	assert.Equal(t, model.StateFailed, progress.State)
	assert.Contains(t, progress.Detail[model.DetailKeyMaster], "No workers have access to source path /data/src")

	results, err := client.SyncResults("r-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.DetailKeyMaster, results[0].WorkerID)
	assert.False(t, results[0].Success)
}

func TestEndToEndWorkerListing(t *testing.T) {
	client, _ := newTestStack(t)

	heartbeatWorker(t, client, "w-1", []string{"10.0.0.1"}, []string{"/data"})
	heartbeatWorker(t, client, "w-2", []string{"10.0.0.2"}, []string{"/backup"})

	workers, err := client.ListWorkers()
	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, "w-1", workers[0].Heartbeat.WorkerID)
	assert.Equal(t, "w-2", workers[1].Heartbeat.WorkerID)
	assert.False(t, workers[0].Seen.IsZero())
}

func TestEndToEndHealth(t *testing.T) {
	client, mr := newTestStack(t)

	report, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "dms-master", report.Data.Service)

	// Take Redis down: the endpoint must flip to degraded.
	mr.Close()

	report, err = client.Health()
	require.NoError(t, err)
	assert.Equal(t, "degraded", report.Status)
	assert.NotEmpty(t, report.Error)
}
