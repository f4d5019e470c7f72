// Package config provides reading and writing of svnparse configuration.
// Supports both global (~/.svnparse/config.yaml) and local (.svnparse/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.svnparse/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .svnparse/config.yaml
	ScopeLocal
)

// SVN holds options controlling how the svn CLI subprocess is invoked.
type SVN struct {
	Binary         string `yaml:"binary,omitempty"`
	ListBatchWidth *int   `yaml:"list_batch_width,omitempty"`
	TimeoutSeconds *int   `yaml:"timeout_seconds,omitempty"`
}

// Store holds options controlling the persistence layer.
type Store struct {
	InsertBatchSize *int `yaml:"insert_batch_size,omitempty"`
}

// Audit holds options controlling best-effort audit logging.
type Audit struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultSVNBinary       = "svn"
	DefaultListBatchWidth  = 64
	DefaultTimeoutSeconds  = 120
	DefaultInsertBatchSize = 512
	DefaultAuditEnabled    = true
)

// Validation bounds for configuration values.
const (
	MinListBatchWidth  = 1
	MaxListBatchWidth  = 4096
	MinTimeoutSeconds  = 1
	MaxTimeoutSeconds  = 3600
	MinInsertBatchSize = 1
	MaxInsertBatchSize = 65536
)

// Config contains configuration for svnparse.
type Config struct {
	SVN   SVN   `yaml:"svn,omitempty"`
	Store Store `yaml:"store,omitempty"`
	Audit Audit `yaml:"audit,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.SVN.ListBatchWidth != nil {
		v := *c.SVN.ListBatchWidth
		if v < MinListBatchWidth || v > MaxListBatchWidth {
			return fmt.Errorf("%w: svn.list_batch_width must be between %d and %d, got %d",
				ErrInvalidValue, MinListBatchWidth, MaxListBatchWidth, v)
		}
	}
	if c.SVN.TimeoutSeconds != nil {
		v := *c.SVN.TimeoutSeconds
		if v < MinTimeoutSeconds || v > MaxTimeoutSeconds {
			return fmt.Errorf("%w: svn.timeout_seconds must be between %d and %d, got %d",
				ErrInvalidValue, MinTimeoutSeconds, MaxTimeoutSeconds, v)
		}
	}
	if c.Store.InsertBatchSize != nil {
		v := *c.Store.InsertBatchSize
		if v < MinInsertBatchSize || v > MaxInsertBatchSize {
			return fmt.Errorf("%w: store.insert_batch_size must be between %d and %d, got %d",
				ErrInvalidValue, MinInsertBatchSize, MaxInsertBatchSize, v)
		}
	}
	return nil
}

// SVNBinary returns the svn executable name or path (defaults to "svn",
// resolved against PATH by os/exec).
func (c *Config) SVNBinary() string {
	if c.SVN.Binary == "" {
		return DefaultSVNBinary
	}
	return c.SVN.Binary
}

// ListBatchWidth returns how many paths are grouped into a single
// `svn ls --xml` invocation (defaults to 64).
func (c *Config) ListBatchWidth() int {
	if c.SVN.ListBatchWidth == nil {
		return DefaultListBatchWidth
	}
	return *c.SVN.ListBatchWidth
}

// TimeoutSeconds returns the per-subprocess timeout in seconds (defaults to 120).
func (c *Config) TimeoutSeconds() int {
	if c.SVN.TimeoutSeconds == nil {
		return DefaultTimeoutSeconds
	}
	return *c.SVN.TimeoutSeconds
}

// InsertBatchSize returns the configured store.insert_batch_size (defaults
// to 512). internal/store does not read it; its batches are a fixed 512 rows.
func (c *Config) InsertBatchSize() int {
	if c.Store.InsertBatchSize == nil {
		return DefaultInsertBatchSize
	}
	return *c.Store.InsertBatchSize
}

// AuditEnabled returns whether best-effort audit logging is on (defaults to true).
func (c *Config) AuditEnabled() bool {
	if c.Audit.Enabled == nil {
		return DefaultAuditEnabled
	}
	return *c.Audit.Enabled
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".svnparse", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.svnparse/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".svnparse", "config.yaml")
}

// Path returns the local config path (for backwards compatibility).
func Path() string {
	return LocalPath()
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
