package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

const (
	defaultThumbnailQueueSize  = 200
	defaultNumThumbnailWorkers = 4
	defaultThumbnailMaxSize    = 300
	defaultTokenTTLHours       = 24
)

type Config struct {
	// listen port for the HTTP server
	AppPort string

	// database path
	DatabasePath string

	// upload storage configuration
	StorageDriver string // "local" or "minio"
	UploadsPath   string // local driver: directory that contains the "uploads" tree

	// minio driver settings
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// auth
	SecretKey     string
	TokenTTLHours int

	// thumbnail worker settings
	ThumbnailMaxSize    int
	ThumbnailQueueSize  int
	NumThumbnailWorkers int

	CORSOrigin string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "clinic.db")

	uploads := getEnvOrDefault("UPLOADS_PATH", filepath.Join(".", "storage"))
	absUploads, err := filepath.Abs(uploads)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for uploads storage '%s': %w", uploads, err)
	}

	driver := getEnvOrDefault("STORAGE_DRIVER", StorageDriverLocal)
	if driver != StorageDriverLocal && driver != StorageDriverMinio {
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER '%s' (expected local or minio)", driver)
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is not set")
	}

	cfg := Config{
		AppPort:             getEnvOrDefault("APP_PORT", "8080"),
		DatabasePath:        dbPath,
		StorageDriver:       driver,
		UploadsPath:         absUploads,
		MinioEndpoint:       os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:      os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:      os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:         getEnvOrDefault("MINIO_BUCKET", "clinic-media"),
		MinioUseSSL:         os.Getenv("MINIO_USE_SSL") == "true",
		SecretKey:           secret,
		TokenTTLHours:       getEnvIntOrDefault("TOKEN_TTL_HOURS", defaultTokenTTLHours),
		ThumbnailMaxSize:    getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize),
		ThumbnailQueueSize:  getEnvIntOrDefault("THUMBNAIL_QUEUE_SIZE", defaultThumbnailQueueSize),
		NumThumbnailWorkers: getEnvIntOrDefault("NUM_THUMBNAIL_WORKERS", defaultNumThumbnailWorkers),
		CORSOrigin:          getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.StorageDriver == StorageDriverMinio && cfg.MinioEndpoint == "" {
		return Config{}, fmt.Errorf("STORAGE_DRIVER is minio but MINIO_ENDPOINT is not set")
	}

	return cfg, nil
}
