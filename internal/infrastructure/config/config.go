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

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresURI string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Airline retrieval
	AirlineBaseURL  string
	RetrieveTimeout time.Duration

	// Check-in worker
	CheckinServiceURL   string
	CheckinServiceToken string
	CheckinLeadTime     time.Duration
	SweepInterval       time.Duration

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	NotificationFrom  string
	NotificationTo    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/checkin?sslmode=disable"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "checkin"),

		AirlineBaseURL:  getEnv("AIRLINE_BASE_URL", "https://mobile.southwest.com/middleware/MWServlet"),
		RetrieveTimeout: time.Duration(getEnvAsInt("RETRIEVE_TIMEOUT", 20)) * time.Second,

		CheckinServiceURL:   getEnv("CHECKIN_SERVICE_URL", ""),
		CheckinServiceToken: getEnv("CHECKIN_SERVICE_TOKEN", ""),
		CheckinLeadTime:     time.Duration(getEnvAsInt("CHECKIN_LEAD_TIME", 24*60)) * time.Minute,
		SweepInterval:       time.Duration(getEnvAsInt("SWEEP_INTERVAL", 300)) * time.Second,

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		NotificationFrom:  getEnv("NOTIFICATION_FROM", ""),
		NotificationTo:    getEnv("NOTIFICATION_TO", ""),
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
