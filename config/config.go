package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

type Config struct {
	ApiURL        string
	AccessKey     string
	SecretKey     string
	BucketName    string
	Region        string
	ACL           string
	Concurrency   int
	StorageDriver string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	config := &Config{
		ApiURL:        getEnv("API_URL", ""),
		AccessKey:     getEnv("ACCESS_KEY", ""),
		SecretKey:     getEnv("SECRET_KEY", ""),
		BucketName:    getEnv("BUCKET_NAME", ""),
		Region:        getEnv("REGION", ""),
		ACL:           getEnv("ACL", "public-read"),
		Concurrency:   getEnvInt("CONCURRENCY", 3),
		StorageDriver: getEnv("STORAGE_DRIVER", DriverS3),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring invalid integer in environment", "key", key, "value", value)
		return defaultValue
	}
	return n
}
