package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the commented configuration template written by
// `dms config init`. It mirrors GetDefaultConfig; keep the two in sync.
const sampleConfig = `# DMS Configuration File
#
# This file configures the DMS master (control plane). Workers are not
# configured here; they announce themselves through heartbeats.
#
# Environment variables override file values using the DMS_ prefix:
#   DMS_LOGGING_LEVEL=DEBUG
#   DMS_SERVER_PORT=9000
#   DMS_METADATA_REDIS_ADDR=redis.internal:6379

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: INFO
  # Output format: text or json
  format: text
  # Destination: stdout, stderr, or a file path
  output: stdout

telemetry:
  # OpenTelemetry tracing, exported over OTLP (opt-in)
  enabled: false
  endpoint: localhost:4317
  insecure: true
  sample_rate: 1.0
  profiling:
    # Pyroscope continuous profiling (opt-in)
    enabled: false
    endpoint: http://localhost:4040

metrics:
  # Prometheus metrics, served on /metrics
  enabled: false

server:
  # host defaults to all interfaces
  port: 8000
  read_timeout: 10s
  write_timeout: 30s
  idle_timeout: 60s
  shutdown_timeout: 5s

metadata:
  # Durable store backing requests, results, and worker registrations.
  # Backends: redis (shared) or badger (embedded, single node)
  backend: redis
  namespace: dms
  # Documents expire after this many days; 0 disables expiry
  ttl_days: 60
  redis:
    addr: localhost:6379
    db: 0
  badger:
    path: ""

scheduler:
  # Worker-selection policy: round_robin or first_fit
  policy: round_robin
  # How long a worker's assignment poll blocks when the queue is empty
  assignment_wait: 1s
  # Ignore workers whose last heartbeat is older than this; 0s disables
  worker_stale_after: 0s
`

// InitConfig writes a sample configuration file to the default location.
//
// Returns the path the file was written to. Fails if a config file already
// exists there, unless force is true.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a sample configuration file to the given path.
// Fails if the file already exists, unless force is true.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600 because the file may carry a Redis password later.
	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
