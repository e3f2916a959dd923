package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped onto
// configuration keys: APP_SERVER_PORT becomes server.port.
const EnvPrefix = "APP_"

// DefaultJWTSecret is the placeholder secret from Default. It is only accepted
// with the sqlite driver, which is used for local development.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	Log      LogConfig      `koanf:"log"`
	Swagger  SwaggerConfig  `koanf:"swagger"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver       string        `koanf:"driver"` // mysql, postgres, sqlite
	DSN          string        `koanf:"dsn"`
	LogLevel     string        `koanf:"log_level"` // silent, error, warn, info
	MaxOpenConns int           `koanf:"max_open_conns"`
	MaxIdleConns int           `koanf:"max_idle_conns"`
	MaxLifetime  time.Duration `koanf:"max_lifetime"`
	Reset        bool          `koanf:"reset"` // drop all tables before migrating
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	Expire time.Duration `koanf:"expire"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

type SwaggerConfig struct {
	Host string `koanf:"host"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "mysql",
			DSN:          "user:password@tcp(localhost:3306)/attendance?charset=utf8mb4&parseTime=True&loc=UTC",
			LogLevel:     "warn",
			MaxOpenConns: 25,
			MaxIdleConns: 10,
			MaxLifetime:  time.Hour,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		JWT: JWTConfig{
			Secret: DefaultJWTSecret,
			Expire: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds Config from defaults, an optional YAML file, an optional .env file
// and finally APP_-prefixed environment variables, in increasing precedence.
// A missing YAML or .env file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: ignoring .env: %v", err)
	}

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps APP_DATABASE_MAX_OPEN_CONNS to database.max_open_conns. Only the
// first underscore separates the section so that field names keep theirs.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	drivers := []string{"mysql", "postgres", "sqlite"}
	if !slices.Contains(drivers, c.Database.Driver) {
		return fmt.Errorf("invalid database driver: %s (must be one of: %s)",
			c.Database.Driver, strings.Join(drivers, ", "))
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}

	dbLevels := []string{"silent", "error", "warn", "info"}
	if !slices.Contains(dbLevels, strings.ToLower(c.Database.LogLevel)) {
		return fmt.Errorf("invalid database log level: %s (must be one of: %s)",
			c.Database.LogLevel, strings.Join(dbLevels, ", "))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.Log.Level, strings.Join(levels, ", "))
	}

	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if c.JWT.Expire <= 0 {
		return fmt.Errorf("invalid jwt expire: %s", c.JWT.Expire)
	}
	if c.UsesDefaultSecret() && c.Database.Driver != "sqlite" {
		return errors.New("jwt secret must be changed from the default (set APP_JWT_SECRET)")
	}
	return nil
}

// UsesDefaultSecret reports whether tokens would be signed with DefaultJWTSecret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == DefaultJWTSecret
}

// Address returns the listen address in the format "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
