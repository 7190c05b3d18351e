package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/services"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	DB postgres.ConnectionParams

	ViaCEPBaseURL     string
	GoogleMapsAPIKey  string
	GoogleMapsBaseURL string
	ResolverTimeout   time.Duration

	RatePerKm               decimal.Decimal
	RatePerKg               decimal.Decimal
	TrackingCodeMaxAttempts int

	NotificationWorkers       int
	NotificationQueueSize     int
	NotificationMaxAttempts   int
	NotificationRetrySchedule string

	KafkaBrokers []string
	KafkaTopic   string

	RabbitMQURL   string
	RabbitMQQueue string

	JWTSecret string
}

// LoadConfig reads .env, when there is one, into the process environment and builds the
// configuration from it. Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the configuration from getenv. All problems are reported at once.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort: r.str("HTTP_PORT", "8080"),
		LogLevel: r.level("LOG_LEVEL", slog.LevelInfo),
		DB: postgres.ConnectionParams{
			Host:     r.required("DB_HOST"),
			Port:     r.str("DB_PORT", "5432"),
			User:     r.required("DB_USER"),
			Password: r.str("DB_PASSWORD", ""),
			Name:     r.required("DB_NAME"),
			SSLMode:  r.str("DB_SSLMODE", "disable"),
		},
		ViaCEPBaseURL:             r.str("VIACEP_BASE_URL", ""),
		GoogleMapsAPIKey:          r.required("GOOGLE_MAPS_API_KEY"),
		GoogleMapsBaseURL:         r.str("GOOGLE_MAPS_BASE_URL", ""),
		ResolverTimeout:           r.duration("RESOLVER_TIMEOUT", 5*time.Second),
		RatePerKm:                 r.decimal("RATE_PER_KM", services.DefaultRatePerKm),
		RatePerKg:                 r.decimal("RATE_PER_KG", services.DefaultRatePerKg),
		TrackingCodeMaxAttempts:   r.positiveInt("TRACKING_CODE_MAX_ATTEMPTS", commands.DefaultMaxTrackingCodeAttempts),
		NotificationWorkers:       r.positiveInt("NOTIFICATION_WORKERS", 2),
		NotificationQueueSize:     r.positiveInt("NOTIFICATION_QUEUE_SIZE", 256),
		NotificationMaxAttempts:   r.positiveInt("NOTIFICATION_MAX_ATTEMPTS", 5),
		NotificationRetrySchedule: r.str("NOTIFICATION_RETRY_SCHEDULE", ""),
		KafkaBrokers:              r.list("KAFKA_BROKERS"),
		KafkaTopic:                r.str("KAFKA_TOPIC", "shipment-events"),
		RabbitMQURL:               r.str("RABBITMQ_URL", ""),
		RabbitMQQueue:             r.str("RABBITMQ_QUEUE", "email-jobs"),
		JWTSecret:                 r.required("JWT_SECRET"),
	}

	if err := r.err(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) fail(key, format string, args ...any) {
	r.errs = append(r.errs, fmt.Errorf("%s: "+format, append([]any{key}, args...)...))
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) required(key string) string {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		r.fail(key, "is required")
	}
	return v
}

func (r *envReader) positiveInt(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		r.fail(key, "must be a positive integer, got %q", raw)
		return fallback
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		r.fail(key, "must be a positive duration, got %q", raw)
		return fallback
	}
	return v
}

func (r *envReader) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		r.fail(key, "must be a non-negative decimal, got %q", raw)
		return fallback
	}
	return v
}

func (r *envReader) level(key string, fallback slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	var v slog.Level
	if err := v.UnmarshalText([]byte(raw)); err != nil {
		r.fail(key, "unknown log level %q", raw)
		return fallback
	}
	return v
}

func (r *envReader) list(key string) []string {
	var out []string
	for _, item := range strings.Split(r.getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
