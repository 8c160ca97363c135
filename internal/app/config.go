package app

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/noah-isme/qanda/internal/platform/cache"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	Port              string        `envconfig:"PORT"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`

	PGDSN      string `envconfig:"PG_DSN"`
	PGUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PGPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PGHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PGPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PGDatabase string `envconfig:"POSTGRES_DB" default:"rustwebdev"`
	PGMaxConns int32  `envconfig:"PG_MAX_CONNS" default:"5"`

	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	RedisPingTimeout time.Duration `envconfig:"REDIS_PING_TIMEOUT" default:"5s"`

	PasetoKey string        `envconfig:"PASETO_KEY" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	BadWordsAPIKey      string        `envconfig:"BAD_WORDS_API_KEY" required:"true"`
	APILayerURL         string        `envconfig:"API_LAYER_URL" default:"https://api.apilayer.com"`
	ProfanityTimeout    time.Duration `envconfig:"PROFANITY_TIMEOUT" default:"10s"`
	ProfanityMaxRetries uint64        `envconfig:"PROFANITY_MAX_RETRIES" default:"3"`
	ProfanityCacheTTL   time.Duration `envconfig:"PROFANITY_CACHE_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.PasetoKey == "" {
		return nil, errors.New("PASETO_KEY must be provided")
	}
	if cfg.BadWordsAPIKey == "" {
		return nil, errors.New("BAD_WORDS_API_KEY must be provided")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.Port != "" {
		cfg.AppAddr = ":" + cfg.Port
	}
	return &cfg, nil
}

// DSN returns PG_DSN or a URL assembled from the POSTGRES_* pieces.
func (c *Config) DSN() string {
	if c.PGDSN != "" {
		return c.PGDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PGUser, c.PGPassword),
		Host:     net.JoinHostPort(c.PGHost, c.PGPort),
		Path:     "/" + c.PGDatabase,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Redis returns the connection settings shared by the cache and the job queue.
func (c *Config) Redis() cache.Options {
	return cache.Options{
		Addr:        c.RedisAddr,
		Password:    c.RedisPassword,
		DB:          c.RedisDB,
		PingTimeout: c.RedisPingTimeout,
	}
}
