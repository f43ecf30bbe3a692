package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string
	OpenAIAPIKey     string
	SendgridAPIKey   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system ENV")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	OpenAIAPIKey = GetEnv("OPENAI_API_KEY")
	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")

	if JWTSecret == "" {
		log.Println("[WARNING] JWT_SECRET is not set")
	}
	if JWTRefreshSecret == "" {
		log.Println("[WARNING] JWT_REFRESH_SECRET is not set")
	}
	if OpenAIAPIKey == "" {
		log.Println("[WARNING] OPENAI_API_KEY is not set, AI generation will fail closed")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
