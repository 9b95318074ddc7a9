package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	STORAGE_ROOT string
	PUBLIC_URL   string

	DEFAULT_LOCALE    string
	SUPPORTED_LOCALES []string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	STORAGE_ROOT = getEnv("STORAGE_ROOT", "./uploads")
	PUBLIC_URL = getEnv("PUBLIC_URL", "http://localhost:"+PORT)

	DEFAULT_LOCALE = getEnv("DEFAULT_LOCALE", "en")
	SUPPORTED_LOCALES = strings.Split(getEnv("SUPPORTED_LOCALES", "en,tr,de,ru"), ",")

	// Google sign-in is optional for local development
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

// IsSupportedLocale reports whether the given locale is served by the site.
func IsSupportedLocale(locale string) bool {
	for _, l := range SUPPORTED_LOCALES {
		if strings.TrimSpace(l) == locale {
			return true
		}
	}
	return false
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
