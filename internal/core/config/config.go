package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	GCS   GCSConfig
}

// MongoConfig points at the hosted database. An empty URI means no backend
// is configured and the platform runs in simulated mode.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,  default=realty_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GCSConfig points at the public image bucket. An empty bucket disables
// uploads; listings fall back to placeholder imagery.
type GCSConfig struct {
	Bucket          string `env:"GCS_BUCKET"`
	CredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasBackend reports whether a hosted database is configured. Without one the
// listing service resolves to simulated mode at construction.
func (c *Config) HasBackend() bool {
	return c.Mongo.URI != ""
}
