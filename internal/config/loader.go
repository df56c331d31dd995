package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader.
// The config file defaults to the CC_CONFIG environment variable.
func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: os.Getenv("CC_CONFIG"),
	}
}

// WithFile sets the YAML config file to read. An empty path disables the file layer.
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if l.filePath != "" {
		if err := l.loadFile(l.filePath); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile decodes a YAML file over the current configuration.
// Keys missing from the file keep their previous values.
func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("invalid YAML in %s: %v", path, err)}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StoreDriver   *string
	StoreDir      *string
	StoreFilename *string

	// Server overrides
	ServerAddr     *string
	BackupInterval *time.Duration

	// Client overrides
	APIURL     *string
	APITimeout *time.Duration

	// Session overrides
	Reconcile *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.StoreDriver != nil {
		config.Storage.Driver = *o.StoreDriver
	}
	if o.StoreDir != nil {
		config.Storage.Dir = *o.StoreDir
	}
	if o.StoreFilename != nil {
		config.Storage.Filename = *o.StoreFilename
	}

	if o.ServerAddr != nil {
		config.Server.Addr = *o.ServerAddr
	}
	if o.BackupInterval != nil {
		config.Server.BackupInterval = *o.BackupInterval
	}

	if o.APIURL != nil {
		config.Client.BaseURL = *o.APIURL
	}
	if o.APITimeout != nil {
		config.Client.Timeout = *o.APITimeout
	}

	if o.Reconcile != nil {
		config.Session.Reconcile = *o.Reconcile
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}
