package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Backend    BackendConfig
	Redis      RedisConfig
	Stripe     StripeConfig
	Storefront StorefrontConfig
}

type ServerConfig struct {
	AppEnv      string `validate:"required"`
	MetricsAddr string
}

type LoggerConfig struct {
	Level             string `validate:"oneof=debug info warn error fatal"`
	Encoding          string `validate:"oneof=json console"`
	DisableCaller     bool
	DisableStacktrace bool
}

type BackendConfig struct {
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"gt=0"`
	RateLimit float64       `validate:"gte=0"` // requests per second, 0 disables limiting
	RateBurst int           `validate:"gte=1"`
	Token     string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string `validate:"required_if=Enabled true"`
	Password string
	DB       int `validate:"gte=0"`
}

type StripeConfig struct {
	SecretKey string
}

type StorefrontConfig struct {
	UserID           int64 `validate:"gte=1"`
	SearchPageSize   int   `validate:"gte=1"`
	CarouselPageSize int   `validate:"gte=1"`
}

var defaults = map[string]any{
	"APP_ENV":                   "dev",
	"METRICS_ADDR":              "",
	"LOGGER_LEVEL":              "info",
	"LOGGER_ENCODING":           "console",
	"LOGGER_DISABLE_CALLER":     false,
	"LOGGER_DISABLE_STACKTRACE": true,
	"BACKEND_URL":               "http://localhost:8080",
	"BACKEND_TIMEOUT":           "30s",
	"BACKEND_RATE_LIMIT":        0.0,
	"BACKEND_RATE_BURST":        1,
	"BACKEND_TOKEN":             "",
	"REDIS_ENABLED":             false,
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"STRIPE_SECRET_KEY":         "",
	"STOREFRONT_USER_ID":        2,
	"SEARCH_PAGE_SIZE":          5,
	"CAROUSEL_PAGE_SIZE":        3,
}

// LoadEnv reads configuration from the process environment. Callers load a
// .env file first (godotenv) when they want one.
func LoadEnv() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:      v.GetString("APP_ENV"),
			MetricsAddr: v.GetString("METRICS_ADDR"),
		},
		Logger: LoggerConfig{
			Level:             strings.ToLower(v.GetString("LOGGER_LEVEL")),
			Encoding:          strings.ToLower(v.GetString("LOGGER_ENCODING")),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		Backend: BackendConfig{
			BaseURL:   strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
			Timeout:   v.GetDuration("BACKEND_TIMEOUT"),
			RateLimit: v.GetFloat64("BACKEND_RATE_LIMIT"),
			RateBurst: v.GetInt("BACKEND_RATE_BURST"),
			Token:     v.GetString("BACKEND_TOKEN"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Stripe: StripeConfig{
			SecretKey: v.GetString("STRIPE_SECRET_KEY"),
		},
		Storefront: StorefrontConfig{
			UserID:           v.GetInt64("STOREFRONT_USER_ID"),
			SearchPageSize:   v.GetInt("SEARCH_PAGE_SIZE"),
			CarouselPageSize: v.GetInt("CAROUSEL_PAGE_SIZE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}
