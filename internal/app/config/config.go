// Package config loads the application configuration from environment variables.
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

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Config is the root configuration of the server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Mail     MailConfig
	AI       AIConfig
	Answers  AnswerStoreConfig
	Vision   VisionConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	// RateLimit is the number of requests allowed per RateWindow and client IP.
	RateLimit  int
	RateWindow time.Duration
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
}

// IsProduction reports whether the server runs with production settings.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string
	DSN    string
	// RunMigrations enables AutoMigrate on start-up.
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OTPConfig struct {
	// TTL is the single window used for code reuse, verification and storage expiry.
	TTL time.Duration
	// SweepSchedule is the cron spec for purging expired rows from the SQL store.
	SweepSchedule string
}

type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	QueueSize int
}

// Enabled reports whether SMTP delivery is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type AIConfig struct {
	// Provider is "perplexity", "gemini" or "none".
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	// Timeout bounds every single completion call.
	Timeout time.Duration
	// RequestsPerMinute throttles outbound completion calls.
	RequestsPerMinute int
}

type AnswerStoreConfig struct {
	Capacity int
	TTL      time.Duration
}

type VisionConfig struct {
	Enabled bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file and builds the configuration from the environment.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Environment:    getEnv("APP_ENV", "development"),
			AllowedOrigins: splitList(getEnv("FRONTEND_URL", "http://localhost:3000")),
			RateLimit:      getInt("RATE_LIMIT_MAX", 100),
			RateWindow:     getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			MaxBodyBytes:   int64(getInt("MAX_BODY_BYTES", 10<<20)),
		},
		Database: DatabaseConfig{
			Driver:        getEnv("DB_DRIVER", "postgres"),
			DSN:           os.Getenv("DATABASE_URL"),
			RunMigrations: getBool("RUN_MIGRATIONS", false),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: os.Getenv(EnvKeyJWTSecret),
			TTL:    getDuration("JWT_TTL", 7*24*time.Hour),
		},
		OTP: OTPConfig{
			TTL:           getDuration("OTP_TTL", 15*time.Minute),
			SweepSchedule: getEnv("OTP_SWEEP_SCHEDULE", "@every 10m"),
		},
		Mail: MailConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getInt("SMTP_PORT", 587),
			Username:  os.Getenv("EMAIL_USER"),
			Password:  os.Getenv("EMAIL_PASS"),
			From:      getEnv("EMAIL_FROM", os.Getenv("EMAIL_USER")),
			QueueSize: getInt("MAIL_QUEUE_SIZE", 256),
		},
		AI: AIConfig{
			Provider:          strings.ToLower(getEnv("AI_PROVIDER", "perplexity")),
			APIKey:            os.Getenv("AI_API_KEY"),
			BaseURL:           getEnv("AI_BASE_URL", "https://api.perplexity.ai"),
			Model:             getEnv("AI_MODEL", "sonar"),
			Timeout:           getDuration("AI_TIMEOUT", 30*time.Second),
			RequestsPerMinute: getInt("AI_REQUESTS_PER_MINUTE", 30),
		},
		Answers: AnswerStoreConfig{
			Capacity: getInt("ANSWER_STORE_CAPACITY", 10000),
			TTL:      getDuration("ANSWER_STORE_TTL", 24*time.Hour),
		},
		Vision: VisionConfig{
			Enabled: getBool("VISION_OCR_ENABLED", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.IsProduction() && c.JWT.Secret == "" {
		errs = append(errs, fmt.Errorf("%s is required in production", EnvKeyJWTSecret))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.OTP.TTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	switch c.AI.Provider {
	case "perplexity", "gemini", "none":
	default:
		errs = append(errs, fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getDuration accepts Go durations ("15m") or plain seconds ("900").
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
