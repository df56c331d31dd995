package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage drivers understood by CreateDocumentStore
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Session reconcile policies
const (
	ReconcileFrozen    = "frozen"
	ReconcilePrune     = "prune"
	ReconcileReshuffle = "reshuffle"
)

// Default store filenames per driver
const (
	DefaultJSONFilename   = "cards.json"
	DefaultSQLiteFilename = "cards.db"
)

// Config holds all configuration options for the cue card application
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Client      ClientConfig      `yaml:"client"`
	Session     SessionConfig     `yaml:"session"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds document store configuration
type StorageConfig struct {
	Driver         string        `yaml:"driver" env:"CC_STORE_DRIVER"`
	Dir            string        `yaml:"dir" env:"CC_STORE_DIR"`
	Filename       string        `yaml:"filename" env:"CC_STORE_FILENAME"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"CC_STORE_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"CC_STORE_DIR_PERMISSIONS"`
}

// ServerConfig holds persistence endpoint configuration
type ServerConfig struct {
	Addr           string        `yaml:"addr" env:"CC_SERVER_ADDR"`
	Path           string        `yaml:"path" env:"CC_SERVER_PATH"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"CC_SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"CC_SERVER_WRITE_TIMEOUT"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" env:"CC_SERVER_MAX_BODY_BYTES"`
	BackupInterval time.Duration `yaml:"backup_interval" env:"CC_BACKUP_INTERVAL"`
	BackupDir      string        `yaml:"backup_dir" env:"CC_BACKUP_DIR"`
}

// ClientConfig holds data access client configuration.
// An empty BaseURL makes the CLI open the document store directly.
type ClientConfig struct {
	BaseURL string        `yaml:"base_url" env:"CC_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"CC_API_TIMEOUT"`
}

// SessionConfig holds session selection configuration
type SessionConfig struct {
	Reconcile string `yaml:"reconcile" env:"CC_SESSION_RECONCILE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	DescriptionMaxLength int `yaml:"description_max_length" env:"CC_VALIDATION_DESCRIPTION_MAX"`
	MaxRepeatFrequency   int `yaml:"max_repeat_frequency" env:"CC_VALIDATION_MAX_REPEAT"`
	CategoryMaxLength    int `yaml:"category_max_length" env:"CC_VALIDATION_CATEGORY_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `yaml:"date_format" env:"CC_DISPLAY_DATE_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"CC_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"CC_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:         DriverFile,
			Dir:            ".",
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:5173",
			Path:         "/api/cards",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: 10 << 20,
			BackupDir:    "backups",
		},
		Client: ClientConfig{
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			Reconcile: ReconcileFrozen,
		},
		Validation: ValidationConfig{
			DescriptionMaxLength: 1000,
			MaxRepeatFrequency:   3650,
			CategoryMaxLength:    100,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetStorePath returns the full path to the document file.
// The memory driver has no path.
func (c *Config) GetStorePath() string {
	if c.Storage.Driver == DriverMemory {
		return ""
	}
	return filepath.Join(c.Storage.Dir, c.storeFilename())
}

// GetBackupDir returns the snapshot directory, resolved against the store dir when relative
func (c *Config) GetBackupDir() string {
	if filepath.IsAbs(c.Server.BackupDir) {
		return c.Server.BackupDir
	}
	return filepath.Join(c.Storage.Dir, c.Server.BackupDir)
}

// UsesRemoteAPI reports whether card operations go through the HTTP endpoint
func (c *Config) UsesRemoteAPI() bool {
	return strings.TrimSpace(c.Client.BaseURL) != ""
}

func (c *Config) storeFilename() string {
	if c.Storage.Filename != "" {
		return c.Storage.Filename
	}
	if c.Storage.Driver == DriverSQLite {
		return DefaultSQLiteFilename
	}
	return DefaultJSONFilename
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if driver := os.Getenv("CC_STORE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if dir := os.Getenv("CC_STORE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("CC_STORE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if timeout := os.Getenv("CC_STORE_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Storage.WriteTimeout = d
		}
	}
	if perms := os.Getenv("CC_STORE_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		}
	}

	// Server configuration
	if addr := os.Getenv("CC_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("CC_SERVER_PATH"); path != "" {
		c.Server.Path = path
	}
	if timeout := os.Getenv("CC_SERVER_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("CC_SERVER_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.WriteTimeout = d
		}
	}
	if size := os.Getenv("CC_SERVER_MAX_BODY_BYTES"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil {
			c.Server.MaxBodyBytes = n
		}
	}
	if interval := os.Getenv("CC_BACKUP_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Server.BackupInterval = d
		}
	}
	if dir := os.Getenv("CC_BACKUP_DIR"); dir != "" {
		c.Server.BackupDir = dir
	}

	// Client configuration
	if url := os.Getenv("CC_API_URL"); url != "" {
		c.Client.BaseURL = url
	}
	if timeout := os.Getenv("CC_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Client.Timeout = d
		}
	}

	// Session configuration
	if policy := os.Getenv("CC_SESSION_RECONCILE"); policy != "" {
		c.Session.Reconcile = policy
	}

	// Validation configuration
	if maxLen := os.Getenv("CC_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.DescriptionMaxLength = n
		}
	}
	if maxRepeat := os.Getenv("CC_VALIDATION_MAX_REPEAT"); maxRepeat != "" {
		if n, err := strconv.Atoi(maxRepeat); err == nil {
			c.Validation.MaxRepeatFrequency = n
		}
	}
	if maxLen := os.Getenv("CC_VALIDATION_CATEGORY_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.CategoryMaxLength = n
		}
	}

	// Display configuration
	if format := os.Getenv("CC_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("CC_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("CC_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return &ConfigError{Field: "storage.driver", Message: "driver must be one of file, sqlite, memory"}
	}
	if c.Storage.Driver != DriverMemory && c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "store directory cannot be empty"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return &ConfigError{Field: "server.path", Message: "path must start with /"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.timeouts", Message: "server timeouts must be positive"}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return &ConfigError{Field: "server.max_body_bytes", Message: "max body size must be positive"}
	}
	if c.Server.BackupInterval < 0 {
		return &ConfigError{Field: "server.backup_interval", Message: "backup interval cannot be negative"}
	}
	if c.Server.BackupInterval > 0 && c.Server.BackupInterval < time.Second {
		return &ConfigError{Field: "server.backup_interval", Message: "backup interval must be at least 1s"}
	}

	// Validate client configuration
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	// Validate session configuration
	switch c.Session.Reconcile {
	case ReconcileFrozen, ReconcilePrune, ReconcileReshuffle:
	default:
		return &ConfigError{Field: "session.reconcile", Message: "reconcile must be one of frozen, prune, reshuffle"}
	}

	// Validate validation configuration
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}
	if c.Validation.MaxRepeatFrequency < 1 {
		return &ConfigError{Field: "validation.max_repeat_frequency", Message: "maximum repeat frequency must be at least 1"}
	}
	if c.Validation.CategoryMaxLength < 1 {
		return &ConfigError{Field: "validation.category_max_length", Message: "category maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
