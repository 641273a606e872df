package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "booking-service", cfg.App.Name)
	assert.Equal(t, 3, cfg.Dispatch.TopN)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)
	assert.Equal(t, 10, cfg.Rewards.PointsPerUnit)
	assert.Equal(t, 100.0, cfg.Rewards.CurrencyUnit)
	assert.Equal(t, 10, cfg.Rewards.WorkerBase)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "nats", cfg.Channel.Transport)
}

func TestInitConfig_LoadsDotEnvForLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CACHE_DRIVER=redis\nDISPATCH_TOP_N=5\nCACHE_TTL=90\n"), 0600))
	t.Setenv("APP_ENV", "local")
	for _, key := range []string{"CACHE_DRIVER", "DISPATCH_TOP_N", "CACHE_TTL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := InitConfig(path)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 5, cfg.Dispatch.TopN)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
}

func TestGetEnvHelpers_InvalidValuesUseDefault(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_FLOAT", "1,5")
	t.Setenv("X_DURATION", "soon")
	t.Setenv("X_DURATION_GO", "1m30s")

	assert.Equal(t, 7, GetEnvAsInt("X_INT", 7))
	assert.True(t, GetEnvAsBool("X_BOOL", true))
	assert.Equal(t, 2.5, GetEnvAsFloat("X_FLOAT", 2.5))
	assert.Equal(t, time.Second, GetEnvAsDuration("X_DURATION", time.Second))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("X_DURATION_GO", time.Second))
}

func TestLoadCategorySynonyms(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		table, err := LoadCategorySynonyms("", "")
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"carpenter": {"carpentry"}}, table)
	})

	t.Run("file and inline are merged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "synonyms.yaml")
		content := "synonyms:\n  plumber:\n    - plumbing\n  carpenter:\n    - woodwork\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		table, err := LoadCategorySynonyms(path, "Electrician=electrical|Electric ; carpenter=carpentry")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"carpentry", "woodwork"}, table["carpenter"])
		assert.Equal(t, []string{"plumbing"}, table["plumber"])
		assert.Equal(t, []string{"electrical", "electric"}, table["electrician"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCategorySynonyms(filepath.Join(t.TempDir(), "nope.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("malformed inline entry", func(t *testing.T) {
		_, err := LoadCategorySynonyms("", "plumber")
		assert.Error(t, err)
	})
}
