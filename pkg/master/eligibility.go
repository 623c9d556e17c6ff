package master

import (
	"path"
	"strings"
)

// pathWithinMount reports whether mount covers p: the mount equals the path
// or is a proper path-component ancestor of it. Components are compared
// as-is (POSIX semantics, no symlink resolution, no case folding), so /data
// covers /data/x but not /database.
func pathWithinMount(p, mount string) bool {
	if p == "" || mount == "" {
		return false
	}

	p = path.Clean(p)
	mount = path.Clean(mount)

	if p == mount {
		return true
	}
	if mount == "/" {
		return path.IsAbs(p)
	}
	return strings.HasPrefix(p, mount+"/")
}

// workerPoolForPathLocked returns the ids of the live workers whose
// advertised storage paths cover p, in registry insertion order. An empty
// result means no eligible worker. Callers must hold m.mu.
func (m *Master) workerPoolForPathLocked(p string) []string {
	var pool []string
	for _, workerID := range m.workerOrder {
		entry := m.workers[workerID]
		if entry == nil || !m.workerLiveLocked(entry) {
			continue
		}
		for _, mount := range entry.hb.StoragePaths {
			if pathWithinMount(p, mount) {
				pool = append(pool, workerID)
				break
			}
		}
	}
	return pool
}

// workerLiveLocked applies the optional staleness read-filter: a worker
// whose most recent heartbeat is older than the configured window is
// treated as absent for scheduling. The registry itself is never mutated.
func (m *Master) workerLiveLocked(entry *workerEntry) bool {
	if m.cfg.WorkerStaleAfter <= 0 {
		return true
	}
	return m.now().Sub(entry.seen) <= m.cfg.WorkerStaleAfter
}

// liveWorkerCountLocked counts workers that pass the staleness filter.
func (m *Master) liveWorkerCountLocked() int {
	count := 0
	for _, workerID := range m.workerOrder {
		if entry := m.workers[workerID]; entry != nil && m.workerLiveLocked(entry) {
			count++
		}
	}
	return count
}
