package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "http://localhost:3000/api", cfg.Backend.URL)
	assert.Equal(t, 1, cfg.Backend.ReadRetries)
	assert.Equal(t, DriverMemory, cfg.Cache.Driver)
	assert.Equal(t, DriverMemory, cfg.State.Driver)
	assert.Equal(t, "ujjiboni-store", cfg.State.Namespace)
	assert.Equal(t, 5*time.Minute, cfg.GetCacheStaleTime())
	assert.Equal(t, 15*time.Second, cfg.GetBackendTimeout())
	assert.Equal(t, "Asia/Dhaka", cfg.GetBusinessLocation().String())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKEND_API_URL", "https://api.ujjiboni.test/api")
	t.Setenv("BACKEND_READ_RETRIES", "3")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://api.ujjiboni.test/api", cfg.Backend.URL)
	assert.Equal(t, 3, cfg.Backend.ReadRetries)
	assert.Equal(t, DriverRedis, cfg.Cache.Driver)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_PostgresStateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STATE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", ReadTimeout: "1s", WriteTimeout: "1s"},
			Backend:   BackendConfig{URL: "http://localhost:3000/api", Timeout: "1s"},
			Database:  DatabaseConfig{ConnMaxLifetime: "1m"},
			Cache:     CacheConfig{Driver: DriverMemory, StaleTime: "1m"},
			State:     StateConfig{Driver: DriverMemory, Namespace: "ujjiboni-store"},
			Scheduler: SchedulerConfig{ProfilePollSpec: "@every 1m", Timezone: "UTC"},
			Business:  BusinessConfig{Timezone: "UTC"},
			Health:    HealthConfig{Timeout: "1s"},
		}
	}

	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:          "relative backend url",
			mutate:        func(c *Config) { c.Backend.URL = "/api" },
			errorContains: "BACKEND_API_URL",
		},
		{
			name:          "unknown cache driver",
			mutate:        func(c *Config) { c.Cache.Driver = "memcached" },
			errorContains: "CACHE_DRIVER",
		},
		{
			name:          "bad stale time",
			mutate:        func(c *Config) { c.Cache.StaleTime = "five minutes" },
			errorContains: "CACHE_STALE_TIME",
		},
		{
			name:          "unknown timezone",
			mutate:        func(c *Config) { c.Business.Timezone = "Mars/Olympus" },
			errorContains: "BUSINESS_TIMEZONE",
		},
		{
			name:          "negative retries",
			mutate:        func(c *Config) { c.Backend.ReadRetries = -1 },
			errorContains: "BACKEND_READ_RETRIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
