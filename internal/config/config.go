package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Authorizer configuration
	AuthzURL      string
	AuthzClientID string

	// Trello configuration
	TrelloBaseURL string
	TrelloAPIKey  string
	TrelloToken   string

	// Mail configuration
	SendGridAPIKey string
	MailFrom       string

	// Reminder scheduler, HH:MM in the server's local time zone
	ReminderTime string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
		TrelloBaseURL:     getEnv("TRELLO_BASE_URL", "https://api.trello.com/1"),
		TrelloAPIKey:      getEnv("TRELLO_API_KEY", ""),
		TrelloToken:       getEnv("TRELLO_TOKEN", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		MailFrom:          getEnv("MAIL_FROM", "reminders@techieblitz.com"),
		ReminderTime:      getEnv("REMINDER_TIME", "08:00"),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.AuthzURL == "" {
		return nil, fmt.Errorf("AUTHZ_URL is required")
	}
	if cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}
	if cfg.TrelloAPIKey == "" {
		return nil, fmt.Errorf("TRELLO_API_KEY is required")
	}
	if cfg.TrelloToken == "" {
		return nil, fmt.Errorf("TRELLO_TOKEN is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
