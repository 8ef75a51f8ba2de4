package config

import (
	"fmt"
	"os"
)

// Config holds everything the process reads from its environment. It is
// built once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	Port        string
	DatabaseURL string

	AdminUsername string
	AdminPassword string
	JWTSecret     string

	UploadDir string

	MailgunDomain string
	MailgunAPIKey string
	EmailFrom     string
}

// Load reads the process environment into a Config. DATABASE_URL is the
// only hard requirement; everything else has a workable default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("APP_PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret-do-not-use"),
		UploadDir:     getenv("UPLOAD_DIR", "public/uploads"),
		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
		EmailFrom:     getenv("EMAIL_FROM", "Mugna Account Services <no-reply@mugna.shop>"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
