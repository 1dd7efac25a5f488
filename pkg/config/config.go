package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "brewcart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreBackendSQLite = "sqlite"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	Store StoreConfig
	Redis RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BREWCART_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"BREWCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BREWCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points at the remote order service.
type APIConfig struct {
	BaseURL string        `envconfig:"BREWCART_API_BASE_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"BREWCART_API_TIMEOUT" default:"15s"`
}

// StoreConfig selects the persistent client profile backing the cart and
// session keys. SQLite keeps a single on-disk profile; redis shares one
// across machines; memory is for tests.
type StoreConfig struct {
	Backend    string `envconfig:"BREWCART_STORE_BACKEND" default:"sqlite"`
	SQLitePath string `envconfig:"BREWCART_STORE_SQLITE_PATH" default:"brewcart.db"`
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case StoreBackendSQLite, StoreBackendRedis, StoreBackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", s.Backend)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"BREWCART_REDIS_URL"`
	Address      string        `envconfig:"BREWCART_REDIS_ADDR"`
	Password     string        `envconfig:"BREWCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"BREWCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BREWCART_REDIS_POOL_SIZE" default:"5"`
	MinIdleConns int           `envconfig:"BREWCART_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"BREWCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BREWCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BREWCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}
