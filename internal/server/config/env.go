package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/travelmate/internal/timex"
	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first if present; variables already set in
// the environment win over the file.
//
// Recognised variables:
//
//	PORT, HTTP_ADDR, GRPC_HEALTH_ADDR, DATABASE_URL, JWT_SECRET, JWT_EXPIRE,
//	BCRYPT_COST, CLIENT_URL, LOG_LEVEL, STORAGE_BACKEND, UPLOAD_DIR,
//	MAX_UPLOAD_MB, S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION,
//	S3_BASE_ENDPOINT
//
// Malformed numeric or duration values panic.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.HTTPAddr = ":" + v
	}
	envString(&config.HTTPAddr, "HTTP_ADDR")
	if v, ok := os.LookupEnv("GRPC_HEALTH_ADDR"); ok {
		config.GRPCHealthAddr = v
	}
	envString(&config.DatabaseDSN, "DATABASE_URL")
	envString(&config.SecretKey, "JWT_SECRET")

	if v := os.Getenv("JWT_EXPIRE"); v != "" {
		d, err := timex.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("JWT_EXPIRE: %w", err))
		}
		config.TokenLifetime = d
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		config.BcryptCost = mustAtoi("BCRYPT_COST", v)
	}

	envString(&config.ClientURL, "CLIENT_URL")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.StorageBackend, "STORAGE_BACKEND")
	envString(&config.UploadDir, "UPLOAD_DIR")

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		config.MaxUploadBytes = int64(mustAtoi("MAX_UPLOAD_MB", v)) << 20
	}

	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func mustAtoi(key, v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return n
}
