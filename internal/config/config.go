package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is loaded once at startup and
// never mutated afterwards.
type Config struct {
	Addr   string
	DBPath string

	// Session settings for the staff login gate.
	SessionSecret     string
	AdminUsername     string
	AdminPasswordHash string

	// Cloudinary credentials. If CloudName is empty the server falls back
	// to storing processed images locally under UploadDir.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadDir           string
}

// Load reads configuration from the environment, after loading a .env file
// if one exists in the working directory.
func Load() (*Config, error) {
	// Missing .env is fine; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "catalog.sqlite3"),
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		AdminUsername:       envOr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		UploadDir:           envOr("UPLOAD_DIR", "uploads"),
	}

	if cfg.CloudinaryCloudName != "" {
		if cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME is set but CLOUDINARY_API_KEY or CLOUDINARY_API_SECRET is missing")
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
