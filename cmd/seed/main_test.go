package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blogseed/internal/config"
	"blogseed/internal/models"
	"blogseed/internal/seed"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithArgs(t *testing.T, args ...string) *config.Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")

	flags := newFlagSet(seed.DefaultOptions())
	require.NoError(t, flags.Parse(args))
	require.NoError(t, bindFlags(flags))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestBindFlags_OverridesConfig(t *testing.T) {
	cfg := loadWithArgs(t,
		"--number", "12",
		"--delete",
		"--min-comments", "1",
		"--max-comments", "2",
		"--seed", "7",
		"--metrics-file", "run.prom",
	)

	assert.Equal(t, seed.Options{Number: 12, Delete: true, MinComments: 1, MaxComments: 2}, seedOptions(cfg))
	assert.Equal(t, int64(7), cfg.SeedRandom)
	assert.Equal(t, "run.prom", cfg.SeedMetricsFile)
}

func TestBindFlags_Defaults(t *testing.T) {
	cfg := loadWithArgs(t)

	assert.Equal(t, seed.DefaultOptions(), seedOptions(cfg))
	assert.Zero(t, cfg.SeedRandom)
	assert.Empty(t, cfg.SeedMetricsFile)
}

func TestBindFlags_EveryKeyHasAFlag(t *testing.T) {
	flags := newFlagSet(seed.DefaultOptions())
	for key, name := range flagKeys {
		assert.NotNil(t, flags.Lookup(name), "no flag for %s", key)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:                "development",
		DBDriver:           config.DriverSQLite,
		DBPath:             filepath.Join(t.TempDir(), "blog.db"),
		DBAutoMigrate:      true,
		SeedAuthorPassword: "x",
		SeedNumber:         3,
		SeedMaxComments:    2,
	}
}

func TestRun_InvalidOptionsFailBeforeConnecting(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedMinComments = 3
	cfg.SeedMaxComments = 1

	err := run(cfg)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.NoFileExists(t, cfg.DBPath)
}

func TestRun_ProductionDeleteRefusedBeforeConnecting(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	cfg.SeedDelete = true

	assert.Error(t, run(cfg))
	assert.NoFileExists(t, cfg.DBPath)
}

func TestRun_SeedsAndWritesMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedRandom = 5
	cfg.SeedMetricsFile = filepath.Join(t.TempDir(), "blogseed.prom")

	require.NoError(t, run(cfg))

	assert.FileExists(t, cfg.DBPath)
	data, err := os.ReadFile(cfg.SeedMetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "blogseed_posts_created_total 3")
}
