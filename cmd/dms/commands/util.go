package commands

import (
	"fmt"

	"github.com/dmsproject/dms/internal/logger"
	"github.com/dmsproject/dms/pkg/config"
)

// InitLogger configures the process logger from the loaded configuration.
func InitLogger(cfg *config.Config) error {
	err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// getConfigSource names where the effective config came from, for the
// startup log line.
func getConfigSource(configFile string) string {
	switch {
	case configFile != "":
		return configFile
	case config.DefaultConfigExists():
		return config.GetDefaultConfigPath()
	default:
		return "defaults"
	}
}
