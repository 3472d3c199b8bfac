package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/secstruct/gor"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Empty()
	assert.Equal(t, gor.GOR4, cfg.GetVariant())
	assert.Equal(t, "", cfg.GetReference())
	assert.Equal(t, "", cfg.GetDB())
	assert.Equal(t, "data/reference", cfg.GetCacheDir())
	assert.Equal(t, "NaN", cfg.GetMissingSentinel())
	assert.Equal(t, 120*time.Second, cfg.GetFetchTimeout())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "gor.json", `{
		"reference": "testdata/ref.csv",
		"variant": "gor5",
		"missing_sentinel": "?",
		"fetch_timeout": "30s"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testdata/ref.csv", cfg.GetReference())
	assert.Equal(t, gor.GOR5, cfg.GetVariant())
	assert.Equal(t, "?", cfg.GetMissingSentinel())
	assert.Equal(t, 30*time.Second, cfg.GetFetchTimeout())

	// Flags override the file, empty flags do not.
	cfg.SetVariant("gor3")
	cfg.SetReference("")
	cfg.SetDB("runs.db")
	assert.Equal(t, gor.GOR3, cfg.GetVariant())
	assert.Equal(t, "testdata/ref.csv", cfg.GetReference())
	assert.Equal(t, "runs.db", cfg.GetDB())
}

func TestLoadErrors(t *testing.T) {
	t.Run("extension", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gor.yaml", `{}`))
		assert.ErrorContains(t, err, ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.json"))
		assert.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gor.json", `{"variant":`))
		assert.ErrorContains(t, err, "parse config JSON")
	})

	t.Run("bad variant", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gor.json", `{"variant": "gor2"}`))
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("bad timeout", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gor.json", `{"fetch_timeout": "-1s"}`))
		assert.Error(t, err)
	})
}
