package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr           = ":5000"
	defaultDatabaseURL        = "file:theroom.db?_pragma=foreign_keys(1)"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultSessionTTL         = "168h"
	defaultVerifyTokenTTL     = "24h"
	defaultResetTokenTTL      = "1h"
	defaultTrialPeriod        = "336h"
	defaultClientURL          = "http://localhost:3000"
	defaultUploadDir          = "./uploads"
	defaultUploadURLBase      = "/uploads"
	defaultMailPort           = "587"
	defaultMailFrom           = "The Room <no-reply@theroom.local>"
	defaultSupportedLanguages = "tr,en,ru,ar"
	defaultLanguage           = "tr"
	defaultReminderDaysBefore = "5"
	defaultReminderHour       = "9"
	defaultAuthRateLimit      = "30"
	defaultReminderEnabled    = "true"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret      string
	SessionTTL     time.Duration
	VerifyTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	TrialPeriod    time.Duration

	ClientURL     string
	UploadDir     string
	UploadURLBase string

	Mail  MailConfig
	Redis RedisConfig

	MetricsAddr        string
	SupportedLanguages []string
	DefaultLanguage    string

	ReminderEnabled    bool
	ReminderDaysBefore int
	ReminderHour       int

	AuthRateLimit      int
	CORSAllowedOrigins []string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether an SMTP relay is configured.
func (m MailConfig) Enabled() bool { return m.Host != "" }

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.ClientURL = strings.TrimRight(strings.TrimSpace(getEnv("CLIENT_URL", defaultClientURL)), "/")
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.UploadURLBase = strings.TrimRight(strings.TrimSpace(getEnv("UPLOAD_URL_BASE", defaultUploadURLBase)), "/")
	cfg.MetricsAddr = strings.TrimSpace(os.Getenv("METRICS_ADDR"))
	cfg.SupportedLanguages = splitList(getEnv("SUPPORTED_LANGUAGES", defaultSupportedLanguages))
	cfg.DefaultLanguage = strings.TrimSpace(getEnv("DEFAULT_LANGUAGE", defaultLanguage))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.ReminderEnabled = parseBoolEnv("REMINDER_ENABLED", defaultReminderEnabled)

	var err error
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.VerifyTokenTTL, err = parseDurationEnv("VERIFY_TOKEN_TTL", defaultVerifyTokenTTL); err != nil {
		return nil, err
	}
	if cfg.ResetTokenTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL); err != nil {
		return nil, err
	}
	if cfg.TrialPeriod, err = parseDurationEnv("TRIAL_PERIOD", defaultTrialPeriod); err != nil {
		return nil, err
	}
	if cfg.ReminderDaysBefore, err = parseIntEnv("REMINDER_DAYS_BEFORE", defaultReminderDaysBefore); err != nil {
		return nil, err
	}
	if cfg.ReminderHour, err = parseIntEnv("REMINDER_HOUR", defaultReminderHour); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = parseIntEnv("AUTH_RATE_LIMIT", defaultAuthRateLimit); err != nil {
		return nil, err
	}

	cfg.Mail = MailConfig{
		Host:     strings.TrimSpace(os.Getenv("MAIL_HOST")),
		User:     strings.TrimSpace(os.Getenv("MAIL_USER")),
		Password: os.Getenv("MAIL_PASS"),
		From:     strings.TrimSpace(getEnv("MAIL_FROM", defaultMailFrom)),
	}
	if cfg.Mail.Port, err = parseIntEnv("MAIL_PORT", defaultMailPort); err != nil {
		return nil, err
	}

	cfg.Redis = RedisConfig{
		Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Redis.DB, err = parseIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDev reports whether the service runs in a local development environment.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development" || c.AppEnv == "local"
}

func validateConfig(cfg *Config) error {
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.VerifyTokenTTL <= 0 {
		return fmt.Errorf("VERIFY_TOKEN_TTL must be > 0")
	}
	if cfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if cfg.TrialPeriod <= 0 {
		return fmt.Errorf("TRIAL_PERIOD must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if len(cfg.SupportedLanguages) == 0 {
		return fmt.Errorf("SUPPORTED_LANGUAGES must list at least one language")
	}
	if !contains(cfg.SupportedLanguages, cfg.DefaultLanguage) {
		return fmt.Errorf("DEFAULT_LANGUAGE %q must be one of SUPPORTED_LANGUAGES", cfg.DefaultLanguage)
	}
	if cfg.ReminderDaysBefore < 0 {
		return fmt.Errorf("REMINDER_DAYS_BEFORE must be >= 0")
	}
	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		return fmt.Errorf("REMINDER_HOUR must be between 0 and 23")
	}
	if cfg.AuthRateLimit <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.Mail.Enabled() {
			return fmt.Errorf("in prod/release MAIL_HOST must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
