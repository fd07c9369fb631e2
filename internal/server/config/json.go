package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/travelmate/internal/flagx"
	"github.com/dmitrijs2005/travelmate/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "168h"/"7d" strings and integer nanoseconds work.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	GRPCHealthAddr string         `json:"grpc_health_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	TokenLifetime  timex.Duration `json:"token_lifetime"`
	BcryptCost     int            `json:"bcrypt_cost"`
	ClientURL      string         `json:"client_url"`
	LogLevel       string         `json:"log_level"`
	StorageBackend string         `json:"storage_backend"`
	UploadDir      string         `json:"upload_dir"`
	MaxUploadBytes int64          `json:"max_upload_bytes"`
	S3RootUser     string         `json:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the file named by -c/-config. Only keys
// present with a non-zero value override the current configuration. An
// unreadable or invalid file panics: the server must not start half-configured.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenLifetime.Duration > 0 {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	setString(&config.ClientURL, c.ClientURL)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UploadDir, c.UploadDir)
	if c.MaxUploadBytes > 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
