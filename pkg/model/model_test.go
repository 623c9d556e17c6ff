package model

import (
	"testing"
	"time"
)

func TestEndpointKey(t *testing.T) {
	key := EndpointKey("worker-1", "192.168.1.10")
	if key != "worker-1::192.168.1.10" {
		t.Errorf("EndpointKey = %q, want %q", key, "worker-1::192.168.1.10")
	}

	workerID, address, ok := SplitEndpointKey(key)
	if !ok {
		t.Fatal("SplitEndpointKey: ok = false for well-formed key")
	}
	if workerID != "worker-1" || address != "192.168.1.10" {
		t.Errorf("SplitEndpointKey = (%q, %q), want (worker-1, 192.168.1.10)", workerID, address)
	}

	if _, _, ok := SplitEndpointKey("no-separator"); ok {
		t.Error("SplitEndpointKey: ok = true for key without separator")
	}
}

func TestSyncRequestNormalize(t *testing.T) {
	req := &SyncRequest{
		RequestID:       "r-1",
		SourcePath:      "/a/src",
		DestinationPath: "/a/dst",
	}
	req.Normalize()
	if req.ChunkSizeMB != DefaultChunkSizeMB {
		t.Errorf("ChunkSizeMB = %d, want default %d", req.ChunkSizeMB, DefaultChunkSizeMB)
	}
	if got, want := req.ChunkSizeBytes(), int64(64*1024*1024); got != want {
		t.Errorf("ChunkSizeBytes = %d, want %d", got, want)
	}

	req.ChunkSizeMB = 8
	req.Normalize()
	if req.ChunkSizeMB != 8 {
		t.Errorf("Normalize overwrote explicit chunk size: got %d", req.ChunkSizeMB)
	}
}

func TestSyncRequestPendingFiles(t *testing.T) {
	tests := []struct {
		name string
		req  SyncRequest
		want []string
	}{
		{
			name: "file list present",
			req: SyncRequest{
				SourcePath: "/a/src",
				FileList:   []string{"/a/src/f1", "/a/src/f2"},
			},
			want: []string{"/a/src/f1", "/a/src/f2"},
		},
		{
			name: "file list omitted",
			req:  SyncRequest{SourcePath: "/a/src"},
			want: []string{"/a/src"},
		},
		{
			name: "file list empty",
			req:  SyncRequest{SourcePath: "/a/src", FileList: []string{}},
			want: []string{"/a/src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.PendingFiles()
			if len(got) != len(tt.want) {
				t.Fatalf("PendingFiles = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("PendingFiles[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPendingFilesCopies(t *testing.T) {
	req := SyncRequest{SourcePath: "/a", FileList: []string{"/a/f1"}}
	files := req.PendingFiles()
	files[0] = "/mutated"
	if req.FileList[0] != "/a/f1" {
		t.Error("PendingFiles returned a slice aliasing FileList")
	}
}

func TestHeartbeatNormalize(t *testing.T) {
	hb := &WorkerHeartbeat{WorkerID: "w-a", Status: WorkerIdle}
	hb.Normalize()
	if hb.Timestamp.IsZero() {
		t.Error("Normalize left Timestamp zero")
	}
	if loc := hb.Timestamp.Location(); loc != time.UTC {
		t.Errorf("Timestamp location = %v, want UTC", loc)
	}

	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	hb = &WorkerHeartbeat{WorkerID: "w-a", Status: WorkerIdle, Timestamp: fixed}
	hb.Normalize()
	if !hb.Timestamp.Equal(fixed) {
		t.Error("Normalize overwrote an explicit timestamp")
	}
}

func TestAssignmentEndpointKey(t *testing.T) {
	a := &Assignment{WorkerID: "w-a", DataPlaneAddress: "10.0.0.1"}
	if got := a.EndpointKey(); got != "w-a::10.0.0.1" {
		t.Errorf("EndpointKey = %q, want %q", got, "w-a::10.0.0.1")
	}
}

func TestProgressClone(t *testing.T) {
	p := NewProgress("r-1")
	p.Detail["w::1"] = "PROGRESS"

	cp := p.Clone()
	cp.State = StateFailed
	cp.Detail["w::1"] = "boom"

	if p.State != StateQueued {
		t.Errorf("Clone aliased State: %v", p.State)
	}
	if p.Detail["w::1"] != "PROGRESS" {
		t.Errorf("Clone aliased Detail: %v", p.Detail)
	}

	var nilP *SyncProgress
	if nilP.Clone() != nil {
		t.Error("Clone of nil progress should be nil")
	}
}

func TestStateTerminal(t *testing.T) {
	for state, want := range map[SyncState]bool{
		StateQueued:    false,
		StateProgress:  false,
		StateCompleted: true,
		StateFailed:    true,
	} {
		if got := state.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", state, got, want)
		}
	}
}
