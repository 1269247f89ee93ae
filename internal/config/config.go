package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "PAYMENTS_"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Logger   LoggerConfig   `koanf:"logger"`
	Store    StoreConfig    `koanf:"store"`
	Database DatabaseConfig `koanf:"database" validate:"-"`
	DynamoDB DynamoConfig   `koanf:"dynamodb" validate:"-"`
	Payments PaymentsConfig `koanf:"payments"`
	Events   EventsConfig   `koanf:"events"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" validate:"required,gt=0"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=text json"`
}

type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory postgres dynamodb"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type DynamoConfig struct {
	Table          string `koanf:"table" validate:"required"`
	Region         string `koanf:"region" validate:"required"`
	Endpoint       string `koanf:"endpoint" validate:"omitempty,url"`
	ConsistentRead bool   `koanf:"consistent_read"`
}

type PaymentsConfig struct {
	Currencies []string `koanf:"currencies" validate:"required,min=1,dive,len=3"`
}

// EventsConfig enables the broker publisher when at least one broker is set.
type EventsConfig struct {
	Brokers      []string      `koanf:"brokers"`
	Topic        string        `koanf:"topic" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         "10s",
		"server.write_timeout":        "15s",
		"server.idle_timeout":         "60s",
		"server.request_timeout":      "10s",
		"server.shutdown_timeout":     "15s",
		"server.max_body_bytes":       1 << 20,
		"logger.level":                "info",
		"logger.format":               "text",
		"store.driver":                DriverMemory,
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"dynamodb.table":              "payments",
		"dynamodb.region":             "us-east-1",
		"dynamodb.consistent_read":    true,
		"payments.currencies":         domain.DefaultCurrencies(),
		"events.topic":                "payment.created",
		"events.write_timeout":        "5s",
	}
}

// LoadConfig reads defaults, then PAYMENTS_* environment variables (a .env file
// is loaded first when present). A double underscore separates sections, so
// PAYMENTS_SERVER__PORT sets server.port. List values are comma separated.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		key = strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(key, envPrefix)),
			"__",
			".",
		)
		if strings.Contains(value, ",") {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks every section plus the store section selected by Store.Driver.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case DriverDynamoDB:
		if err := validate.Struct(c.DynamoDB); err != nil {
			return fmt.Errorf("dynamodb: %w", err)
		}
	}

	if _, err := domain.NewCurrencySet(c.Payments.Currencies); err != nil {
		return fmt.Errorf("payments.currencies: %w", err)
	}
	return nil
}

// CurrencySet builds the allow-list. Validate has already checked the codes.
func (c *Config) CurrencySet() domain.CurrencySet {
	return domain.MustCurrencySet(c.Payments.Currencies)
}

// NewLogger builds the process logger writing to w.
func (c LoggerConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
