package metadata

import "time"

// DefaultNamespace prefixes every key when no namespace is configured.
const DefaultNamespace = "dms"

// DefaultTTLDays is how long request, result, and worker documents are
// retained by backends that support expiry.
const DefaultTTLDays = 60

// Config selects and configures the metadata backend.
type Config struct {
	// Backend selects the store implementation.
	// Valid values: redis, badger
	Backend string `mapstructure:"backend" validate:"required,oneof=redis badger" yaml:"backend"`

	// Namespace prefixes every key written by the store.
	// Default: "dms"
	Namespace string `mapstructure:"namespace" yaml:"namespace"`

	// TTLDays is the retention of stored documents in days.
	// Zero or negative disables expiry.
	TTLDays int `mapstructure:"ttl_days" yaml:"ttl_days"`

	// Redis configures the Redis backend.
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`

	// Badger configures the embedded Badger backend.
	Badger BadgerConfig `mapstructure:"badger" yaml:"badger"`
}

// RedisConfig holds the connection settings of the Redis backend.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	// Default: localhost:6379
	Addr string `mapstructure:"addr" yaml:"addr"`

	// Password authenticates against a protected server. Empty disables AUTH.
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	// DB is the Redis logical database index.
	DB int `mapstructure:"db" yaml:"db"`
}

// BadgerConfig holds the settings of the embedded Badger backend.
type BadgerConfig struct {
	// Path is the directory holding the Badger database files.
	Path string `mapstructure:"path" yaml:"path"`
}

// applyDefaults fills unset fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = "redis"
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
}

// ttl converts the configured retention to a duration. Zero means no expiry.
func (c *Config) ttl() time.Duration {
	if c.TTLDays <= 0 {
		return 0
	}
	return time.Duration(c.TTLDays) * 24 * time.Hour
}
