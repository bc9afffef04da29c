// Package config loads the gateway configuration. Values come from three
// layers, lowest priority first: built-in defaults, an optional YAML file,
// then environment variables (optionally seeded from a .env file in
// development).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full gateway configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	Cache    CacheConfig    `yaml:"cache"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// BackendConfig points at the shop's GraphQL backend.
type BackendConfig struct {
	GraphQLEndpoint      string        `yaml:"graphql_endpoint" env:"BACKEND_GRAPHQL_ENDPOINT"`
	SubscriptionEndpoint string        `yaml:"subscription_endpoint" env:"BACKEND_SUBSCRIPTION_ENDPOINT"`
	Timeout              time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
}

// AuthConfig controls admin token issuance.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"`
}

// StoreConfig selects the local key-value backend.
type StoreConfig struct {
	// Backend is one of memory, bolt, redis, postgres.
	Backend  string `yaml:"backend" env:"STORE_BACKEND"`
	BoltPath string `yaml:"bolt_path" env:"STORE_BOLT_PATH"`
	RedisURL string `yaml:"redis_url" env:"STORE_REDIS_URL"`
	Postgres string `yaml:"postgres_dsn" env:"STORE_POSTGRES_DSN"`
}

// CacheConfig bounds the entity cache.
type CacheConfig struct {
	MaxEntities int           `yaml:"max_entities" env:"CACHE_MAX_ENTITIES"`
	TTL         time.Duration `yaml:"ttl" env:"CACHE_TTL"`
	// SweepSchedule is a cron expression for the expiry sweep.
	SweepSchedule string `yaml:"sweep_schedule" env:"CACHE_SWEEP_SCHEDULE"`
}

// UploadsConfig points at the asset endpoint.
type UploadsConfig struct {
	Endpoint string `yaml:"endpoint" env:"UPLOADS_ENDPOINT"`
	MaxBytes int64  `yaml:"max_bytes" env:"UPLOADS_MAX_BYTES"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	Output string `yaml:"output" env:"LOG_OUTPUT"`
}

// SecurityConfig controls CORS and rate limiting.
type SecurityConfig struct {
	AllowedOrigins    []string `yaml:"allowed_origins" env:"SECURITY_ALLOWED_ORIGINS"`
	RequestsPerSecond int      `yaml:"requests_per_second" env:"SECURITY_REQUESTS_PER_SECOND"`
	Burst             int      `yaml:"burst" env:"SECURITY_BURST"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL: 12 * time.Hour,
		},
		Store: StoreConfig{
			Backend:  "memory",
			BoltPath: "noizee.db",
		},
		Cache: CacheConfig{
			MaxEntities:   10000,
			TTL:           10 * time.Minute,
			SweepSchedule: "@every 1m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Security: SecurityConfig{
			AllowedOrigins:    []string{"*"},
			RequestsPerSecond: 50,
			Burst:             100,
		},
	}
}

// Load builds the configuration. yamlPath may be empty; a missing file is
// not an error so deployments can rely on environment variables alone. A
// .env file in the working directory is loaded first when present.
func Load(yamlPath string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case os.IsNotExist(err):
			// fall through to env
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", yamlPath, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", yamlPath, err)
			}
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server port %d out of range", c.Server.Port)
	}
	switch c.Store.Backend {
	case "memory", "bolt", "redis", "postgres":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// Addr is the listener address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
