package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer      string // Required: expected issuer claim on bearer tokens
	TrustedKeys string // Required in prod: comma-separated kid:base64url(ed25519-pub) entries

	DatabaseFile string // Optional: path to SQLite database file (default: ./huddle.db)
	PepperFile   string // Optional: path to pepper file for password hashing (default: ./pepper)

	AppURL       string // Optional: public base URL used in invitation email links
	SMTPAddr     string // Optional: host:port of the SMTP relay; empty logs emails instead
	SMTPFrom     string // Optional: From address for invitation emails
	SMTPUsername string // Optional: SMTP auth username
	SMTPPassword string // Optional: SMTP auth password

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	InvitationRetention  time.Duration // How long expired pending invitations are kept (default: 30 days)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:      getEnvOrDefault("HUDDLE_ISSUER", "huddle-identity"),
		TrustedKeys: os.Getenv("HUDDLE_TRUSTED_KEYS"),

		DatabaseFile: getEnvOrDefault("HUDDLE_DATABASE_FILE", "huddle.db"),
		PepperFile:   getEnvOrDefault("HUDDLE_PEPPER_FILE", "pepper"),

		AppURL:       getEnvOrDefault("HUDDLE_APP_URL", "http://localhost:8080"),
		SMTPAddr:     os.Getenv("HUDDLE_SMTP_ADDR"),
		SMTPFrom:     getEnvOrDefault("HUDDLE_SMTP_FROM", "noreply@huddle.local"),
		SMTPUsername: os.Getenv("HUDDLE_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("HUDDLE_SMTP_PASSWORD"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InvitationRetention:  getEnvDurationOrDefault("HUDDLE_INVITATION_RETENTION", 30*24*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
