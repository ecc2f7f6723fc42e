package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Client ClientConfig
	Server ServerConfig
}

// ClientConfig drives the dashboard and its backend adapter.
type ClientConfig struct {
	BaseURL         string        `env:"SAVINGS_API_URL,          default=http://localhost:8080"`
	Token           string        `env:"SAVINGS_TOKEN"`
	Email           string        `env:"SAVINGS_EMAIL"`
	Timeout         time.Duration `env:"SAVINGS_TIMEOUT,          default=15s"`
	LoadConcurrency int           `env:"SAVINGS_LOAD_CONCURRENCY, default=8"`
}

// ServerConfig drives the reference backend.
type ServerConfig struct {
	Port               string `env:"PORT,                default=8080"`
	ProjectID          string `env:"PROJECT_ID"`
	KMSKeyName         string `env:"KMS_KEY_NAME"`
	SimulationSchedule string `env:"SIMULATION_SCHEDULE, default=0 3 1 * *"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFrom processes the given lookuper instead of the environment; used by tests.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
