package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Google  GoogleConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=elbuensabor"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	CustomerTimeout time.Duration `env:"SESSION_CUSTOMER_TIMEOUT, default=45m"`
	StaffTimeout    time.Duration `env:"SESSION_STAFF_TIMEOUT,    default=30m"`
	BusinessOpen    string        `env:"BUSINESS_OPEN,            default=08:00"`
	BusinessClose   string        `env:"BUSINESS_CLOSE,           default=20:00"`
	SweepInterval   time.Duration `env:"SESSION_SWEEP_INTERVAL,   default=1m"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,                default=24h"`
}

type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// Policy builds the inactivity policy from the session settings.
func (c SessionConfig) Policy() (domain.InactivityPolicy, error) {
	open, err := domain.ParseClock(c.BusinessOpen)
	if err != nil {
		return domain.InactivityPolicy{}, err
	}
	closeMin, err := domain.ParseClock(c.BusinessClose)
	if err != nil {
		return domain.InactivityPolicy{}, err
	}

	return domain.InactivityPolicy{
		CustomerTimeout: c.CustomerTimeout,
		StaffTimeout:    c.StaffTimeout,
		OpenMinute:      open,
		CloseMinute:     closeMin,
	}, nil
}
