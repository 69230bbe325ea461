// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the service together.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// StorageDriver selects the persistence backend: "sqlite" or "file".
	StorageDriver string
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string
	// DataDir is the directory used by the file driver.
	DataDir string
}

// Load reads configuration from the environment. Missing keys fall back to
// defaults suitable for running locally.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}
	return Config{
		Addr:          getEnv("SERVER_ADDR", ":8081"),
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "pickleball.db"),
		DataDir:       getEnv("DATA_DIR", "."),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
