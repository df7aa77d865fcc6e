// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	AppEnv     string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	WebDir       string

	// MongoDB (appointment store)
	MongoURI string
	MongoDB  string

	// PostgreSQL (delivery log)
	PostgresURI string

	// Gmail sender
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	SenderEmail       string

	// Booking
	OperatorEmail  string
	NotifyOperator bool

	// Reminder sweep
	ReminderInterval time.Duration
	ReminderLead     time.Duration
	ReminderWindow   time.Duration
}

// LoadConfig loads configuration from environment variables. A local .env
// file is consulted everywhere except production deployments.
func LoadConfig() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		godotenv.Load()
	}

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AppEnv:     getEnv("APP_ENV", "development"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		WebDir:       getEnv("WEB_DIR", "web"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "bookcast"),

		PostgresURI: getEnv("POSTGRES_URI", "postgres://localhost:5432/bookcast"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", ""),

		OperatorEmail:  getEnv("OPERATOR_EMAIL", ""),
		NotifyOperator: getEnvAsBool("NOTIFY_OPERATOR", true),

		ReminderInterval: time.Duration(getEnvAsInt("REMINDER_INTERVAL_MINUTES", 60)) * time.Minute,
		ReminderLead:     time.Duration(getEnvAsInt("REMINDER_LEAD_HOURS", 24)) * time.Hour,
		ReminderWindow:   time.Duration(getEnvAsInt("REMINDER_WINDOW_MINUTES", 30)) * time.Minute,
	}

	// The operator notification falls back to the sending identity,
	// matching the "email yourself" setup of a single-operator calendar.
	if config.OperatorEmail == "" {
		config.OperatorEmail = config.SenderEmail
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
