package config

import "time"

type Configuration struct {
	LogLevel          string               `mapstructure:"logLevel"`
	BatchSize         int                  `mapstructure:"batchSize"`
	ExcludedDatabases []string             `mapstructure:"excludedDatabases"`
	Source            StoreConfiguration   `mapstructure:"source"`
	Target            StoreConfiguration   `mapstructure:"target"`
	Metrics           MetricsConfiguration `mapstructure:"metrics"`
}

type StoreConfiguration struct {
	Uri     string        `mapstructure:"uri"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MetricsConfiguration struct {
	Enabled bool          `mapstructure:"enabled"`
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}
