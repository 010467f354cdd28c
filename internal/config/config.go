package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for translation records
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	StorageBackend string
	BotToken       string
	BotPassword    string
	LogDevelopment bool
	Database       DatabaseConfig
	Mongo          MongoConfig
	HTTP           HTTPConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MigrationsPath string
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	AuthDB     string
	Database   string
	Collection string
}

// HTTPConfig holds REST server settings
type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		StorageBackend: getEnv("STORAGE_BACKEND", BackendPostgres),
		BotToken:       os.Getenv("BOT_TOKEN"),
		BotPassword:    os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", "voci"),
			User:           getEnv("DB_USER", "voci"),
			Password:       os.Getenv("DB_PASSWORD"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		},
		Mongo: MongoConfig{
			Host:       os.Getenv("MONGO_HOST"),
			Port:       os.Getenv("MONGO_PORT"),
			User:       os.Getenv("MONGO_USER"),
			Password:   os.Getenv("MONGO_PASSWORD"),
			AuthDB:     getEnv("MONGO_AUTH_DB", "admin"),
			Database:   getEnv("MONGO_DATABASE", "voci"),
			Collection: getEnv("MONGO_COLLECTION", "translations"),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", "127.0.0.1:8080"),
		},
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.HTTP.ShutdownTimeout = timeout

	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_DEVELOPMENT: %w", err)
		}
		cfg.LogDevelopment = dev
	}

	// Validate backend specific fields
	switch cfg.StorageBackend {
	case BackendPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case BackendMongo:
		if cfg.Mongo.Host == "" {
			return nil, fmt.Errorf("MONGO_HOST is required")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// ValidateBot checks the fields the Telegram bot needs.
// The bot keeps its users in PostgreSQL whatever the translation backend is.
func (c *Config) ValidateBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.BotPassword == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// MongoURI returns MongoDB connection string
func (c *Config) MongoURI() string {
	host := c.Mongo.Host
	if c.Mongo.Port != "" {
		host = net.JoinHostPort(c.Mongo.Host, c.Mongo.Port)
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   host,
		Path:   "/" + c.Mongo.AuthDB,
	}
	if c.Mongo.User != "" {
		u.User = url.UserPassword(c.Mongo.User, c.Mongo.Password)
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
