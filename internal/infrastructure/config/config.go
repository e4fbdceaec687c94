package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	// MigrationsPath is a golang-migrate source URL; empty disables
	// migrations at startup.
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// PreviewTTL is how long a preview assessment stays cached. Zero
	// disables the cache.
	PreviewTTL time.Duration
}

// KafkaConfig configures order event publishing. When Enabled is false
// events are only logged.
type KafkaConfig struct {
	Brokers       []string
	ClientID      string
	TopicPrefix   string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Enabled       bool
	TLS           bool
	SASLEnabled   bool
}

type JWTConfig struct {
	Secret        string
	PublicKeyPath string
	Issuer        string
	Expiration    time.Duration
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
	Enabled  bool
}

type LogConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Endpoint    string
	SampleRatio float64
	Insecure    bool
}

type RateLimitConfig struct {
	// PreviewPerSecond is the sustained preview request rate per client.
	PreviewPerSecond float64
	PreviewBurst     int
}

type Config struct {
	ServiceName     string
	HTTPPort        int
	GRPCPort        int
	ShutdownTimeout time.Duration
	DB              DatabaseConfig
	Redis           RedisConfig
	Kafka           KafkaConfig
	JWT             JWTConfig
	TLS             TLSConfig
	Log             LogConfig
	Tracing         TracingConfig
	RateLimit       RateLimitConfig
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPath == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY_PATH environment variable is required"))
	}
	if c.TLS.Enabled && (c.TLS.CertFile == "" || c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE are required when TLS_ENABLED is set"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("TRACING_SAMPLE_RATIO must be within [0,1], got %v", c.Tracing.SampleRatio))
	}
	return errors.Join(errs...)
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set take precedence.
// A missing .env file is not an error, a malformed one is.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		ServiceName:     getEnv("SERVICE_NAME", "hanbin"),
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		GRPCPort:        getEnvInt("GRPC_PORT", 9090),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		DB: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "hanbin"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "hanbin"),
			SSLMode:        getEnv("DB_SSLMODE", "require"),
			MaxConns:       getEnvInt("DB_MAX_CONNS", 10),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "file://internal/infrastructure/postgres/migrations"),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			PreviewTTL: getEnvDuration("PREVIEW_CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "hanbin"),
			TopicPrefix:   getEnv("KAFKA_TOPIC_PREFIX", ""),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			Enabled:       getEnvBool("KAFKA_ENABLED", true),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:        getEnv("JWT_ISSUER", "hanbin"),
			Expiration:    getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		TLS: TLSConfig{
			Enabled:  getEnvBool("TLS_ENABLED", false),
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			SampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		RateLimit: RateLimitConfig{
			PreviewPerSecond: getEnvFloat("PREVIEW_RATE_PER_SECOND", 5),
			PreviewBurst:     getEnvInt("PREVIEW_RATE_BURST", 10),
		},
	}, nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
