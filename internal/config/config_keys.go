// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "store.insert_batch_size").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"svn.binary", "svn.list_batch_width", "svn.timeout_seconds",
		"store.insert_batch_size",
		"audit.enabled",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "svn.binary":
		return c.SVNBinary(), nil
	case "svn.list_batch_width":
		return strconv.Itoa(c.ListBatchWidth()), nil
	case "svn.timeout_seconds":
		return strconv.Itoa(c.TimeoutSeconds()), nil
	case "store.insert_batch_size":
		return strconv.Itoa(c.InsertBatchSize()), nil
	case "audit.enabled":
		return strconv.FormatBool(c.AuditEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "svn.binary":
		if value == "" {
			return fmt.Errorf("%w: svn.binary must not be empty", ErrInvalidValue)
		}
		c.SVN.Binary = value
	case "svn.list_batch_width":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: svn.list_batch_width must be a positive integer", ErrInvalidValue)
		}
		c.SVN.ListBatchWidth = &n
	case "svn.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: svn.timeout_seconds must be a positive integer", ErrInvalidValue)
		}
		c.SVN.TimeoutSeconds = &n
	case "store.insert_batch_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: store.insert_batch_size must be a positive integer", ErrInvalidValue)
		}
		c.Store.InsertBatchSize = &n
	case "audit.enabled":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: audit.enabled must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Audit.Enabled = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"svn.binary":              c.SVNBinary(),
		"svn.list_batch_width":    strconv.Itoa(c.ListBatchWidth()),
		"svn.timeout_seconds":     strconv.Itoa(c.TimeoutSeconds()),
		"store.insert_batch_size": strconv.Itoa(c.InsertBatchSize()),
		"audit.enabled":           strconv.FormatBool(c.AuditEnabled()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "svn.binary":
		return c.SVN.Binary != ""
	case "svn.list_batch_width":
		return c.SVN.ListBatchWidth != nil
	case "svn.timeout_seconds":
		return c.SVN.TimeoutSeconds != nil
	case "store.insert_batch_size":
		return c.Store.InsertBatchSize != nil
	case "audit.enabled":
		return c.Audit.Enabled != nil
	default:
		return false
	}
}
