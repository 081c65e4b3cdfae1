package types

import "time"

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	// Port is the TCP port the HTTP server listens on (default 8080).
	Port int `json:"port" yaml:"port" mapstructure:"port"`

	// ReadTimeout bounds reading a request, headers and body (default 10s).
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// JSON selects structured JSON output instead of console output.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`

	// Level is the minimum level: debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// DatasetConfig selects the dataset loaded at startup.
type DatasetConfig struct {
	// Path is a YAML (.yaml, .yml) or SQLite (.db) snapshot. Empty uses the
	// embedded reference fixture.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// BatchConfig bounds batch invocation.
type BatchConfig struct {
	// MaxItems is the largest accepted batch (default 100).
	MaxItems int `json:"max_items" yaml:"max_items" mapstructure:"max_items"`

	// Concurrency is the number of batch items evaluated at once (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// ClientConfig holds settings for calling a remote boundary over HTTP.
type ClientConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Config groups all settings.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Dataset DatasetConfig `json:"dataset" yaml:"dataset" mapstructure:"dataset"`
	Batch   BatchConfig   `json:"batch" yaml:"batch" mapstructure:"batch"`
	Client  ClientConfig  `json:"client" yaml:"client" mapstructure:"client"`
}

// DefaultConfig returns the configuration used when no file, flag, or
// environment variable overrides a setting.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Batch: BatchConfig{
			MaxItems:    100,
			Concurrency: 4,
		},
		Client: ClientConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 5,
			UserAgent:  "research-analytics/0.1",
		},
	}
}
