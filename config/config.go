package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVICEBOOK_SERVER_"`
	API      APIConfig      `yaml:"api" envPrefix:"SERVICEBOOK_API_"`
	Session  SessionConfig  `yaml:"session" envPrefix:"SERVICEBOOK_SESSION_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"SERVICEBOOK_DB_"`
	Redis    RedisConfig    `yaml:"redis" envPrefix:"SERVICEBOOK_REDIS_"`
	Metrics  MetricsConfig  `yaml:"metrics" envPrefix:"SERVICEBOOK_METRICS_"`
	Log      LogConfig      `yaml:"log" envPrefix:"SERVICEBOOK_LOG_"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                  int     `yaml:"port" env:"PORT"`
	LoginRateLimitPerSec  float64 `yaml:"login_rate_limit_per_sec" env:"LOGIN_RATE_LIMIT_PER_SEC"`
	LoginRateBurst        int     `yaml:"login_rate_burst" env:"LOGIN_RATE_BURST"`
	SearchRateLimitPerSec float64 `yaml:"search_rate_limit_per_sec" env:"SEARCH_RATE_LIMIT_PER_SEC"`
	SearchRateBurst       int     `yaml:"search_rate_burst" env:"SEARCH_RATE_BURST"`
}

// APIConfig describes the remote service-book API.
type APIConfig struct {
	BaseURL   string            `yaml:"base_url" env:"BASE_URL"`
	HTTPProxy string            `yaml:"http_proxy" env:"HTTP_PROXY"`
	Headers   map[string]string `yaml:"headers"`
}

// SessionConfig controls where login sessions live and how the cookie looks.
type SessionConfig struct {
	Store                string        `yaml:"store" env:"STORE"` // memory, database or redis
	CookieName           string        `yaml:"cookie_name" env:"COOKIE_NAME"`
	TTLHours             int           `yaml:"ttl_hours" env:"TTL_HOURS"`
	TTL                  time.Duration `yaml:"-" env:"-"`
	SecureCookie         bool          `yaml:"secure_cookie" env:"SECURE_COOKIE"`
	SweepIntervalSeconds int           `yaml:"sweep_interval_seconds" env:"SWEEP_INTERVAL_SECONDS"`
	SweepInterval        time.Duration `yaml:"-" env:"-"`
}

// DatabaseConfig holds the database connection configuration for the database session store.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver" env:"DRIVER"` // sqlite or postgres
	DSN                    string `yaml:"dsn" env:"DSN"`
	MaxOpenConns           int    `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns           int    `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes" env:"CONN_MAX_LIFETIME_MINUTES"`
}

// RedisConfig holds the redis connection used by the redis session store.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // text or json
}

// envFiles are loaded into the process environment before overrides are applied.
var envFiles = []string{".env", ".env.local"}

// Load reads the configuration from the given path, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles(files []string) error {
	var existing []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LoginRateLimitPerSec <= 0 {
		cfg.Server.LoginRateLimitPerSec = 1
	}
	if cfg.Server.LoginRateBurst <= 0 {
		cfg.Server.LoginRateBurst = 5
	}
	if cfg.Server.SearchRateLimitPerSec <= 0 {
		cfg.Server.SearchRateLimitPerSec = 5
	}
	if cfg.Server.SearchRateBurst <= 0 {
		cfg.Server.SearchRateBurst = 10
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://127.0.0.1:8000/api/"
	}
	if !strings.HasSuffix(cfg.API.BaseURL, "/") {
		cfg.API.BaseURL += "/"
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "servicebook_session"
	}
	if cfg.Session.TTLHours <= 0 {
		cfg.Session.TTLHours = 168
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLHours) * time.Hour
	if cfg.Session.SweepIntervalSeconds <= 0 {
		cfg.Session.SweepIntervalSeconds = 600
	}
	cfg.Session.SweepInterval = time.Duration(cfg.Session.SweepIntervalSeconds) * time.Second

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "servicebook.db"
	}

	if cfg.Metrics.Enabled == nil {
		enabled := true
		cfg.Metrics.Enabled = &enabled
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		log.Printf("log.format is not set; defaulting to text")
		cfg.Log.Format = "text"
	}
}

func (cfg *Config) validate() error {
	switch cfg.Session.Store {
	case "memory", "database", "redis":
	default:
		return fmt.Errorf("session.store must be memory, database or redis, got %q", cfg.Session.Store)
	}
	if cfg.Session.Store == "redis" && cfg.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when session.store is redis")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	return nil
}

// MetricsEnabled reports whether the prometheus endpoint should be mounted.
func (cfg *Config) MetricsEnabled() bool {
	return cfg.Metrics.Enabled != nil && *cfg.Metrics.Enabled
}
