package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "femcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, cfg.Dimensions)
	assert.Equal(t, 3, cfg.QuadraturePoints)
	assert.Equal(t, 1e-13, cfg.MatrixTolerance)
	assert.Equal(t, 1e-14, cfg.RHSTolerance)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
dimensions = [2]
quadrature_points = 4
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, cfg.Dimensions)
	assert.Equal(t, 4, cfg.QuadraturePoints)
	// unset keys keep their defaults
	assert.Equal(t, 1e-13, cfg.MatrixTolerance)
	assert.Equal(t, 1e-14, cfg.RHSTolerance)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `tolerance = 1.0`)
	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
