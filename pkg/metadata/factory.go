package metadata

import "fmt"

// New creates the metadata store selected by cfg.Backend.
func New(cfg Config) (Store, error) {
	cfg.applyDefaults()

	switch cfg.Backend {
	case "redis":
		return NewRedisStore(cfg), nil
	case "badger":
		return NewBadgerStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported metadata backend %q (valid: redis, badger)", cfg.Backend)
	}
}
