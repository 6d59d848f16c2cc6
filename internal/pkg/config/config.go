package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	UploadLocal = "local"
	UploadS3    = "s3"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// AuthRequired gates write routes behind JWT authentication and role checks.
	AuthRequired bool `env:"AUTH_REQUIRED, default=false"`

	// JWTSecretParam names an SSM parameter holding the signing secret.
	JWTSecretParam string `env:"JWT_SECRET_SSM_PARAM"`

	PurgeWorkers int `env:"PURGE_WORKERS, default=4"`

	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Upload    UploadConfig
}

// RateLimitConfig throttles the authentication routes per client IP.
type RateLimitConfig struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED, default=true"`
	RPS     float64 `env:"RATE_LIMIT_RPS,     default=5"`
	Burst   int     `env:"RATE_LIMIT_BURST,   default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cafe_critique"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type UploadConfig struct {
	Backend  string `env:"UPLOAD_BACKEND,   default=local"`
	Dir      string `env:"UPLOAD_DIR,       default=./public/uploads"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES, default=1000000"`

	S3Bucket string `env:"S3_BUCKET"`
	S3Region string `env:"S3_REGION"`
	S3Prefix string `env:"S3_PREFIX, default=uploads/"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper and checks the
// combinations envconfig cannot express in tags.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether pretty console logging should be disabled.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.Upload.Backend {
	case UploadLocal:
	case UploadS3:
		if c.Upload.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when UPLOAD_BACKEND=%s", UploadS3)
		}
	default:
		return fmt.Errorf("UPLOAD_BACKEND must be %q or %q, got %q", UploadLocal, UploadS3, c.Upload.Backend)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
