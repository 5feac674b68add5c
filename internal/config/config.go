package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for our application
type Config struct {
	Environment   string
	DataDir       string
	DatabaseFile  string
	SessionFile   string
	ArtifactDir   string
	DiagnosticLog string
}

const appDirName = "health-records"

// LoadConfig loads configuration from environment variables and resolves
// the application-private data directory all backing paths live under.
func LoadConfig() (*Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:   getEnv("APP_ENV", "development"),
		DataDir:       dataDir,
		DatabaseFile:  filepath.Join(dataDir, getEnv("HEALTH_DB_FILE", "health_records.db")),
		SessionFile:   filepath.Join(dataDir, getEnv("HEALTH_SESSION_FILE", "session.json")),
		ArtifactDir:   filepath.Join(dataDir, getEnv("HEALTH_ARTIFACT_DIR", "qrcodes")),
		DiagnosticLog: filepath.Join(dataDir, getEnv("HEALTH_LOG_FILE", "diagnostic.log")),
	}, nil
}

// resolveDataDir picks a writable base directory: an explicit override via
// HEALTH_DATA_DIR, the platform config dir, or a dot-directory in the
// user's home as the last fallback.
func resolveDataDir() (string, error) {
	base := getEnv("HEALTH_DATA_DIR", "")
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			base = filepath.Join(dir, appDirName)
		} else if home, herr := os.UserHomeDir(); herr == nil {
			base = filepath.Join(home, "."+appDirName)
		} else {
			return "", fmt.Errorf("no writable data directory available: %v", err)
		}
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", fmt.Errorf("cannot create data directory %s: %w", base, err)
	}
	return base, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
