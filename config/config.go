package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the server and the terminal clients read from the
// environment. main loads .env first (godotenv), so plain env vars win.
type Config struct {
	AppEnv   string
	LogLevel string

	Port     string
	MongoURI string

	ShopEmail   string
	EmailSender string

	// Client side.
	APIBaseURL    string
	OperatorToken string
	PollInterval  time.Duration
	CartFile      string
	RedisURL      string
}

func Load() Config {
	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Port:          getEnv("PORT", "8000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		ShopEmail:     getEnv("SHOP_EMAIL", ""),
		EmailSender:   getEnv("EMAIL_SENDER", "orders@tacotown.example"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000/api"),
		OperatorToken: getEnv("OPERATOR_TOKEN", ""),
		PollInterval:  getEnvDuration("POLL_INTERVAL", 15*time.Second),
		CartFile:      getEnv("CART_FILE", "tacocart.json"),
		RedisURL:      getEnv("REDIS_URL", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
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
