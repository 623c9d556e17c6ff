package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmsproject/dms/internal/logger"
	"github.com/dmsproject/dms/internal/telemetry"
	"github.com/dmsproject/dms/pkg/api"
	"github.com/dmsproject/dms/pkg/config"
	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/metadata"
	"github.com/dmsproject/dms/pkg/metrics"
	"github.com/dmsproject/dms/pkg/scheduler"

	// Registers the Prometheus metric constructors.
	_ "github.com/dmsproject/dms/pkg/metrics/prometheus"
)

// preflightTimeout bounds the startup metadata store reachability check.
const preflightTimeout = 5 * time.Second

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the DMS master",
	Long: `Start the DMS master with the specified configuration.

The master refuses to start when the metadata store is unreachable, so a
misconfigured Redis address fails fast instead of surfacing on the first
sync request.

The configuration is read from --config, falling back to
$XDG_CONFIG_HOME/dms/config.yaml.

Examples:
  # Start with default config location
  dms start

  # Start with custom config file
  dms start --config /etc/dms/config.yaml

  # Start with environment variable overrides
  DMS_LOGGING_LEVEL=DEBUG dms start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Cancelled on shutdown; everything below hangs off this context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopObservability, err := setupObservability(ctx, cfg)
	if err != nil {
		return err
	}
	defer stopObservability(ctx)

	fmt.Println("DMS - Distributed file synchronization master")
	logger.Info("configuration loaded",
		"source", getConfigSource(GetConfigFile()),
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format)

	// The metrics registry must exist before the orchestrator is built so
	// its constructor sees an enabled registry.
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("metrics collection disabled")
	}

	store, err := metadata.New(cfg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to open metadata store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("metadata store close error", logger.Err(err))
		}
	}()

	// Preflight: refuse to start against an unreachable store.
	healthCtx, healthCancel := context.WithTimeout(ctx, preflightTimeout)
	err = store.HealthCheck(healthCtx)
	healthCancel()
	if err != nil {
		return fmt.Errorf("metadata store unreachable (backend %s): %w", cfg.Metadata.Backend, err)
	}
	logger.Info("metadata store ready",
		"backend", cfg.Metadata.Backend,
		"namespace", cfg.Metadata.Namespace,
		"ttl_days", cfg.Metadata.TTLDays)

	policy, err := scheduler.New(cfg.Scheduler.Policy)
	if err != nil {
		return fmt.Errorf("failed to create scheduling policy: %w", err)
	}
	logger.Info("scheduling policy selected", logger.Policy(policy.Name()))

	m := master.New(store, policy, cfg.Scheduler, metrics.NewMasterMetrics())

	apiServer := api.NewServer(cfg.Server, m, store)
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("master is running, press Ctrl+C to stop", "addr", apiServer.Addr())

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
		cancel()
		if err := <-serverDone; err != nil {
			logger.Error("server shutdown error", logger.Err(err))
			return err
		}
		logger.Info("master stopped gracefully")
	case err := <-serverDone:
		if err != nil {
			logger.Error("server error", logger.Err(err))
			return err
		}
		logger.Info("master stopped")
	}

	return nil
}

// setupObservability starts tracing and profiling per the config and
// returns a single shutdown function covering both. Either subsystem may
// be disabled; its Init then returns a no-op stop.
func setupObservability(ctx context.Context, cfg *config.Config) (func(context.Context), error) {
	traceStop, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "dms",
		ServiceVersion: buildVersion,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	profileStop, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "dms",
		ServiceVersion: buildVersion,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	})
	if err != nil {
		_ = traceStop(ctx)
		return nil, fmt.Errorf("failed to initialize profiling: %w", err)
	}

	if telemetry.IsEnabled() {
		logger.Info("tracing enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint)
	}

	return func(ctx context.Context) {
		if err := profileStop(); err != nil {
			logger.Error("profiling shutdown error", logger.Err(err))
		}
		if err := traceStop(ctx); err != nil {
			logger.Error("telemetry shutdown error", logger.Err(err))
		}
	}, nil
}
