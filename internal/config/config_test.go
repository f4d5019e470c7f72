package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojciec-dev/svnparse/internal/config"
)

func TestLoadScopeMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSVNBinary, cfg.SVNBinary())
	assert.Equal(t, config.DefaultListBatchWidth, cfg.ListBatchWidth())
	assert.Equal(t, config.DefaultInsertBatchSize, cfg.InsertBatchSize())
	assert.True(t, cfg.AuditEnabled())
}

func TestSetAndSaveRoundTrips(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("svn.list_batch_width", "32"))
	require.NoError(t, cfg.Set("audit.enabled", "false"))
	require.NoError(t, cfg.SaveScope(config.ScopeLocal))

	reloaded, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, 32, reloaded.ListBatchWidth())
	assert.False(t, reloaded.AuditEnabled())
}

func TestSetRejectsUnknownKey(t *testing.T) {
	cfg := &config.Config{}
	err := cfg.Set("nonsense.key", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestValidateRejectsOutOfRangeListBatchWidth(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Set("svn.list_batch_width", "9999999"))
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestLocalPathPreferredOverGlobal(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.MkdirAll(filepath.Dir(config.LocalPath()), 0755))
	cfg, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("svn.binary", "/usr/bin/svn"))
	require.NoError(t, cfg.SaveScope(config.ScopeLocal))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/svn", loaded.SVNBinary())
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { os.Chdir(prev) }
}
