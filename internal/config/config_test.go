package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"USERGRID_ENV_FILE",
	"USERGRID_HTTP_ADDRESS",
	"USERGRID_STORE_DRIVER",
	"USERGRID_REDIS_ADDR",
	"USERGRID_REDIS_DB",
	"USERGRID_REDIS_PREFIX",
	"USERGRID_STORE_WORKERS",
	"USERGRID_SEED_ON_START",
	"USERGRID_LOG_LEVEL",
	"USERGRID_LOG_ENV",
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":8080", cfg.HTTPAddress)
				assert.Equal(t, DriverMemory, cfg.StoreDriver)
				assert.Equal(t, "localhost:6379", cfg.RedisAddr)
				assert.Equal(t, 0, cfg.RedisDB)
				assert.Equal(t, "exampleCache", cfg.RedisPrefix)
				assert.Equal(t, 8, cfg.StoreWorkers)
				assert.True(t, cfg.SeedOnStart)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "dev", cfg.LogEnv)
			},
		},
		{
			name: "redis driver",
			env: map[string]string{
				"USERGRID_STORE_DRIVER": "Redis",
				"USERGRID_REDIS_ADDR":   "cache:6380",
				"USERGRID_REDIS_DB":     "2",
				"USERGRID_REDIS_PREFIX": "users",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverRedis, cfg.StoreDriver)
				assert.Equal(t, "cache:6380", cfg.RedisAddr)
				assert.Equal(t, 2, cfg.RedisDB)
				assert.Equal(t, "users", cfg.RedisPrefix)
			},
		},
		{
			name: "seeding disabled",
			env:  map[string]string{"USERGRID_SEED_ON_START": "false"},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.SeedOnStart)
			},
		},
		{
			name:        "unknown driver",
			env:         map[string]string{"USERGRID_STORE_DRIVER": "ignite"},
			expectError: true,
		},
		{
			name:        "invalid redis db",
			env:         map[string]string{"USERGRID_REDIS_DB": "zero"},
			expectError: true,
		},
		{
			name:        "no workers",
			env:         map[string]string{"USERGRID_STORE_WORKERS": "0"},
			expectError: true,
		},
		{
			name:        "invalid seed flag",
			env:         map[string]string{"USERGRID_SEED_ON_START": "maybe"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			t.Setenv("USERGRID_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := New()

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				tt.validate(t, cfg)
			}
		})
	}
}

func TestNew_EnvFile(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("USERGRID_HTTP_ADDRESS=0.0.0.0:9090\nUSERGRID_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("USERGRID_ENV_FILE", envFile)
	t.Setenv("USERGRID_LOG_LEVEL", "warn")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.HTTPAddress)
	assert.Equal(t, "warn", cfg.LogLevel)
}
