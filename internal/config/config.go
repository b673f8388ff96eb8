package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port       string
	DBConn     string
	LogLevel   string
	JWTSecret  string
	CORSOrigin string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	_ = godotenv.Load() // ignore error if no .env

	cfg := &Config{
		Port:       getEnv("PORT", "5000"),
		DBConn:     getEnv("DB_CONN", "host=localhost port=5432 user=easydrop password=easydrop dbname=easydrop sslmode=disable"),
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
