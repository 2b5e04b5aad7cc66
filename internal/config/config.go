package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every environment-driven setting the server needs.
type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	TokenExpiry time.Duration

	// AI analysis backend (Gemini-compatible REST API).
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	FrontendOrigin string
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first when one is present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	expiryHours := 72
	if v := os.Getenv("TOKEN_EXPIRY_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			expiryHours = parsed
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB", "finmate"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenExpiry:    time.Duration(expiryHours) * time.Hour,
		AIBaseURL:      getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AIAPIKey:       os.Getenv("GEMINI_API_KEY"),
		AIModel:        getEnv("AI_MODEL", "gemini-2.0-flash"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
