package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultHTTPPort         = "8080"
	DefaultPollTimeout      = 30
	DefaultNotificationHour = 9
)

type Config struct {
	HTTPPort string

	DBUsername string
	DBPassword string
	DBHost     string
	DBPort     string
	DBDatabase string

	SecretKey string

	BotToken    string
	PollTimeout int

	NotificationHour   int
	NotificationMinute int
}

// LoadEnv tries the same candidate paths the binaries are started from.
// Missing .env is not fatal: system environment variables still apply.
func LoadEnv() {
	possiblePaths := []string{
		".env",
		"./.env",
		"../.env",
		"../../.env",
	}

	for _, path := range possiblePaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded .env from: %s", path)
			return
		}
	}

	log.Println("No .env file found, continuing with system environment variables")
}

func New() *Config {
	return &Config{
		HTTPPort:           envOrDefault("HTTP_PORT", DefaultHTTPPort),
		DBUsername:         os.Getenv("DB_USERNAME"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBHost:             envOrDefault("DB_HOST", "localhost"),
		DBPort:             envOrDefault("DB_PORT", "3306"),
		DBDatabase:         os.Getenv("DB_DATABASE"),
		SecretKey:          os.Getenv("SECRET_KEY"),
		BotToken:           os.Getenv("BOT_TOKEN"),
		PollTimeout:        envIntOrDefault("BOT_POLL_TIMEOUT", DefaultPollTimeout),
		NotificationHour:   envIntOrDefault("GOAL_NOTIFICATION_HOUR", DefaultNotificationHour),
		NotificationMinute: envIntOrDefault("GOAL_NOTIFICATION_MINUTE", 0),
	}
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUsername,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBDatabase,
	)
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
