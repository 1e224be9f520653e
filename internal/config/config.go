package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "secret_key_change_me"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Log      LogConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver       string // postgres, mysql, sqlite
	DSN          string
	MaxOpenConns int
}

type JWTConfig struct {
	Secret string
	// TTL is measured in hours when read from the environment.
	TTL time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type CORSConfig struct {
	AllowOrigins []string
}

// fileConfig mirrors the optional YAML file.
type fileConfig struct {
	Server struct {
		Port                   string `yaml:"port"`
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"server"`
	Database struct {
		Driver       string `yaml:"driver"`
		DSN          string `yaml:"dsn"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`
	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`
	Security struct {
		BcryptCost int `yaml:"bcrypt_cost"`
	} `yaml:"security"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	CORS struct {
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// Default returns the built-in configuration used before any file or
// environment override is applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "postgres",
			DSN:          "host=localhost user=postgres password=postgres dbname=postlike port=5432 sslmode=disable TimeZone=UTC",
			MaxOpenConns: 20,
		},
		JWT: JWTConfig{
			Secret: defaultJWTSecret,
			TTL:    24 * time.Hour,
		},
		Security: SecurityConfig{BcryptCost: 10},
		Log:      LogConfig{Level: "info", Format: "json"},
	}
}

// Load resolves configuration as defaults -> YAML file -> environment.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading env vars from system")
	}

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.applyFile(raw); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("config file not found, using defaults", "path", path)
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(raw []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Server.Port != "" {
		c.Server.Port = f.Server.Port
	}
	if f.Server.ShutdownTimeoutSeconds > 0 {
		c.Server.ShutdownTimeout = time.Duration(f.Server.ShutdownTimeoutSeconds) * time.Second
	}
	if f.Database.Driver != "" {
		c.Database.Driver = f.Database.Driver
	}
	if f.Database.DSN != "" {
		c.Database.DSN = f.Database.DSN
	}
	if f.Database.MaxOpenConns > 0 {
		c.Database.MaxOpenConns = f.Database.MaxOpenConns
	}
	if f.JWT.Secret != "" {
		c.JWT.Secret = f.JWT.Secret
	}
	if f.JWT.TTLHours > 0 {
		c.JWT.TTL = time.Duration(f.JWT.TTLHours) * time.Hour
	}
	if f.Security.BcryptCost > 0 {
		c.Security.BcryptCost = f.Security.BcryptCost
	}
	if f.Log.Level != "" {
		c.Log.Level = f.Log.Level
	}
	if f.Log.Format != "" {
		c.Log.Format = f.Log.Format
	}
	if len(f.CORS.AllowOrigins) > 0 {
		c.CORS.AllowOrigins = f.CORS.AllowOrigins
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.ShutdownTimeout = time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", int(c.Server.ShutdownTimeout.Seconds()))) * time.Second
	c.Database.Driver = strings.ToLower(getEnvOrDefault("DB_DRIVER", c.Database.Driver))
	c.Database.DSN = getEnvOrDefault("DATABASE_URL", c.Database.DSN)
	c.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.JWT.Secret = getEnvOrDefault("JWT_SECRET", c.JWT.Secret)
	c.JWT.TTL = time.Duration(getEnvInt("JWT_TTL_HOURS", int(c.JWT.TTL.Hours()))) * time.Hour
	c.Security.BcryptCost = getEnvInt("BCRYPT_COST", c.Security.BcryptCost)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.CORS.AllowOrigins = getEnvCSV("CORS_ALLOW_ORIGINS", c.CORS.AllowOrigins)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("missing DATABASE_URL")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
		c.JWT.Secret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set, using the development default")
	}
	return nil
}

// SlogLevel maps the configured level name onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("ignoring non-integer env var", "key", key, "value", raw)
		return defaultValue
	}
	return v
}

func getEnvCSV(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
