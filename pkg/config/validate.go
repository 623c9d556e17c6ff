package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmsproject/dms/pkg/scheduler"
)

// validate is shared across the package; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report config-file key names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks the configuration for structural and semantic errors.
//
// Struct tags cover the field-level rules (enums, ranges); the checks below
// cover relationships between fields that tags cannot express.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	// The policy must exist in the scheduler registry; failing here beats
	// failing at orchestrator construction with the same message.
	if _, err := scheduler.New(cfg.Scheduler.Policy); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry: endpoint is required when telemetry is enabled")
	}
	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("telemetry: profiling endpoint is required when profiling is enabled")
	}

	if cfg.Metadata.Backend == "badger" && cfg.Metadata.Badger.Path == "" {
		return fmt.Errorf("metadata: badger.path is required when the badger backend is selected")
	}

	return nil
}
