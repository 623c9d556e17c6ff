package config

import (
	"strings"
	"time"

	"github.com/dmsproject/dms/pkg/api"
	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/metadata"
	"github.com/dmsproject/dms/pkg/scheduler"
)

// ApplyDefaults fills every unset field with its default. Zero values
// (0, "", false, nil) are treated as unset; explicit values survive.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyServerDefaults(&cfg.Server)
	applyMetadataDefaults(&cfg.Metadata)
	applySchedulerDefaults(&cfg.Scheduler)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Level is matched case-insensitively everywhere, but normalize so
	// "config show" output is predictable.
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// Tracing and profiling stay disabled by default; only their endpoints
// and sampling get filled in, pointing at the conventional local ports.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	if cfg.Profiling.Endpoint == "" {
		cfg.Profiling.Endpoint = "http://localhost:4040"
	}
	if len(cfg.Profiling.ProfileTypes) == 0 {
		cfg.Profiling.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// The API server is always on; it is the only way to submit work.
func applyServerDefaults(cfg *api.Config) {
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
}

func applyMetadataDefaults(cfg *metadata.Config) {
	if cfg.Backend == "" {
		cfg.Backend = "redis"
	}
	if cfg.Namespace == "" {
		cfg.Namespace = metadata.DefaultNamespace
	}
	// Retention defaults to 60 days. A store constructed in code keeps
	// zero as "no expiry"; the config file default is deliberate expiry.
	if cfg.TTLDays == 0 {
		cfg.TTLDays = metadata.DefaultTTLDays
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
}

func applySchedulerDefaults(cfg *master.Config) {
	if cfg.Policy == "" {
		cfg.Policy = scheduler.PolicyRoundRobin
	}
	if cfg.AssignmentWait == 0 {
		cfg.AssignmentWait = master.DefaultAssignmentWait
	}
	// WorkerStaleAfter keeps its zero value: the staleness filter is opt-in.
}

// GetDefaultConfig returns a fully defaulted Config, used for sample
// file generation and by tests.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Metadata: metadata.Config{Backend: "redis"},
	}
	ApplyDefaults(cfg)
	return cfg
}
