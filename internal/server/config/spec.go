package config

import "time"

// ServerConfig is the root configuration for tablesync-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Table   TableSection   `koanf:"table"`
	Log     LogSection     `koanf:"log"`
	Metrics MetricsSection `koanf:"metrics"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr              string          `koanf:"addr"`
	ReadHeaderTimeout time.Duration   `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration   `koanf:"shutdown_timeout"`
	RateLimit         RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	Enabled bool `koanf:"enabled"`
	// RPS is the sustained requests per second allowed per client IP.
	RPS float64 `koanf:"rps"`
	// Burst is the number of requests allowed above RPS in a short spike.
	Burst int `koanf:"burst"`
}

// TableSection configures the table store.
type TableSection struct {
	// Seed loads the sample rows at startup.
	Seed bool `koanf:"seed"`
	// BTreeDegree is the branching degree of the row index.
	BTreeDegree int `koanf:"btree_degree"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool `koanf:"enabled"`
}
