package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Notification log backends.
const (
	LogBackendFirestore = "firestore"
	LogBackendPostgres  = "postgres"
)

type Config struct {
	Port     string
	LogLevel string

	GoogleProjectID     string
	FirebaseCredentials string

	// Pub/Sub trigger transport; disabled when PubSubSubscription is empty.
	PubSubSubscription   string
	PubSubCredentials    string
	PubSubMaxOutstanding int
	PubSubNumGoroutines  int

	UsersCollection         string
	PostsCollection         string
	NotificationsCollection string

	NotificationLogBackend string
	DatabaseURL            string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSSLMode              string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),

		PubSubSubscription:   getEnv("PUBSUB_SUBSCRIPTION", ""),
		PubSubCredentials:    getEnv("PUBSUB_CREDENTIALS", ""),
		PubSubMaxOutstanding: getEnvInt("PUBSUB_MAX_OUTSTANDING", 10),
		PubSubNumGoroutines:  getEnvInt("PUBSUB_NUM_GOROUTINES", 1),

		UsersCollection:         getEnv("USERS_COLLECTION", "users"),
		PostsCollection:         getEnv("POSTS_COLLECTION", "communityPosts"),
		NotificationsCollection: getEnv("NOTIFICATIONS_COLLECTION", "notifications"),

		NotificationLogBackend: getEnv("NOTIFICATION_LOG_BACKEND", LogBackendFirestore),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "notifications"),
		DBSSLMode:              getEnv("DB_SSLMODE", "disable"),
	}
}

// PostgresDSN returns DATABASE_URL when set, otherwise a DSN built from
// the DB_* variables.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
