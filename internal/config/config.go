package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Backend   BackendConfig   `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Cache     CacheConfig     `mapstructure:",squash"`
	State     StateConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

// BackendConfig points at the cooperative's REST API.
type BackendConfig struct {
	URL         string `mapstructure:"BACKEND_API_URL"`
	Timeout     string `mapstructure:"BACKEND_TIMEOUT"`
	ReadRetries int    `mapstructure:"BACKEND_READ_RETRIES"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type CacheConfig struct {
	Driver    string `mapstructure:"CACHE_DRIVER"`
	StaleTime string `mapstructure:"CACHE_STALE_TIME"`
}

// StateConfig selects where the dashboard session state is persisted.
type StateConfig struct {
	Driver    string `mapstructure:"STATE_DRIVER"`
	Namespace string `mapstructure:"STATE_NAMESPACE"`
}

type SchedulerConfig struct {
	ProfilePollSpec string `mapstructure:"PROFILE_POLL_SPEC"`
	Timezone        string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level string `mapstructure:"LOG_LEVEL"`
}

type BusinessConfig struct {
	Timezone string `mapstructure:"BUSINESS_TIMEZONE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"SERVER_PORT":                "8080",
	"SERVER_HOST":                "127.0.0.1",
	"ENV":                        "development",
	"SERVER_READ_TIMEOUT":        "15s",
	"SERVER_WRITE_TIMEOUT":       "30s",
	"BACKEND_API_URL":            "http://localhost:3000/api",
	"BACKEND_TIMEOUT":            "15s",
	"BACKEND_READ_RETRIES":       1,
	"DATABASE_URL":               "",
	"DATABASE_MAX_OPEN_CONNS":    5,
	"DATABASE_MAX_IDLE_CONNS":    2,
	"DATABASE_CONN_MAX_LIFETIME": "30m",
	"REDIS_HOST":                 "localhost",
	"REDIS_PORT":                 "6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"CACHE_DRIVER":               DriverMemory,
	"CACHE_STALE_TIME":           "5m",
	"STATE_DRIVER":               DriverMemory,
	"STATE_NAMESPACE":            "ujjiboni-store",
	"PROFILE_POLL_SPEC":          "@every 5m",
	"SCHEDULER_TIMEZONE":         "Asia/Dhaka",
	"LOG_LEVEL":                  "info",
	"BUSINESS_TIMEZONE":          "Asia/Dhaka",
	"HEALTH_CHECK_TIMEOUT":       "5s",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_API_URL must be an absolute URL")
	}

	if c.Backend.ReadRetries < 0 {
		return fmt.Errorf("BACKEND_READ_RETRIES must not be negative")
	}

	switch c.State.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STATE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("STATE_DRIVER must be %q or %q", DriverMemory, DriverPostgres)
	}

	if c.State.Namespace == "" {
		return fmt.Errorf("STATE_NAMESPACE is required")
	}

	if c.Cache.Driver != DriverMemory && c.Cache.Driver != DriverRedis {
		return fmt.Errorf("CACHE_DRIVER must be %q or %q", DriverMemory, DriverRedis)
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"BACKEND_TIMEOUT":            c.Backend.Timeout,
		"CACHE_STALE_TIME":           c.Cache.StaleTime,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"HEALTH_CHECK_TIMEOUT":       c.Health.Timeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("BUSINESS_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if strings.TrimSpace(c.Scheduler.ProfilePollSpec) == "" {
		return fmt.Errorf("PROFILE_POLL_SPEC is required")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// RedisAddr returns host:port of the redis server
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

// GetBackendTimeout returns the backend client timeout as duration
func (c *Config) GetBackendTimeout() time.Duration {
	return mustDuration(c.Backend.Timeout)
}

// GetCacheStaleTime returns how long a cached query stays fresh
func (c *Config) GetCacheStaleTime() time.Duration {
	return mustDuration(c.Cache.StaleTime)
}

// GetConnMaxLifetime returns the database connection lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	return mustDuration(c.Health.Timeout)
}

// GetBusinessLocation returns the timezone months are evaluated in
func (c *Config) GetBusinessLocation() *time.Location {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetSchedulerLocation returns the timezone cron specs are evaluated in
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
