package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port       string
	BackendURL string
	CookieKey  string // base64 key for cookie encryption, generated when empty
	ViewsDir   string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:       getEnv("PORT", "3000"),
		BackendURL: getEnv("BACKEND_URL", "http://localhost:8000"),
		CookieKey:  getEnv("COOKIE_KEY", ""),
		ViewsDir:   getEnv("VIEWS_DIR", "./views"),
	}

	return AppConfig
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
