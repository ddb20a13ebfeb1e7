package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP server configuration
	ListenAddr  string
	CORSOrigins []string

	// Storage configuration
	DataDir string

	// Matching configuration
	MinKeywordTokenLen int

	// OpenAI configuration (optional; suggestions are disabled without a key)
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ListenAddr = getEnvWithDefault("LISTEN_ADDR", ":8080")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")
	cfg.CORSOrigins = strings.Split(getEnvWithDefault("CORS_ORIGINS", "*"), ",")

	minLen := getEnvWithDefault("MIN_KEYWORD_TOKEN_LEN", "1")
	n, err := strconv.Atoi(minLen)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid MIN_KEYWORD_TOKEN_LEN %q", minLen)
	}
	cfg.MinKeywordTokenLen = n

	// Optional LLM configuration
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.OpenAIAPIKey) > 8 {
		logCfg.OpenAIAPIKey = logCfg.OpenAIAPIKey[:8] + "...REDACTED..."
	}
	log.Printf("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
