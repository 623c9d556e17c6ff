package master

import (
	"time"

	"github.com/dmsproject/dms/pkg/scheduler"
)

// DefaultAssignmentWait bounds how long a worker poll blocks when no
// assignment is queued for it.
const DefaultAssignmentWait = time.Second

// Config contains the orchestrator and scheduling settings.
type Config struct {
	// Policy names the worker-selection policy created through the
	// scheduler registry.
	// Default: round_robin
	Policy string `mapstructure:"policy" yaml:"policy"`

	// AssignmentWait is the maximum time a worker's assignment poll blocks
	// before returning empty-handed. Workers poll, so this only bounds
	// latency, not delivery.
	// Default: 1s
	AssignmentWait time.Duration `mapstructure:"assignment_wait" yaml:"assignment_wait"`

	// WorkerStaleAfter treats a worker whose most recent heartbeat is older
	// than this window as absent for scheduling decisions. Zero disables
	// the filter; the registry is never mutated either way.
	// Default: 0 (disabled)
	WorkerStaleAfter time.Duration `mapstructure:"worker_stale_after" yaml:"worker_stale_after"`
}

// applyDefaults fills unset fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Policy == "" {
		c.Policy = scheduler.PolicyRoundRobin
	}
	if c.AssignmentWait <= 0 {
		c.AssignmentWait = DefaultAssignmentWait
	}
}
