package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docusage/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations use timex.Duration so
// both "168h" and integer nanoseconds are accepted. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	SigningAlgorithm string         `json:"signing_algorithm"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	TokenIssuer      string         `json:"token_issuer"`
	ArgonTime        uint32         `json:"argon_time"`
	ArgonMemory      uint32         `json:"argon_memory_kib"`
	ArgonThreads     uint8          `json:"argon_threads"`
	StorageBackend   string         `json:"storage_backend"`
	UploadDir        string         `json:"upload_dir"`
	MaxUploadBytes   int64          `json:"max_upload_bytes"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	AuthRateLimit    float64        `json:"auth_rate_limit"`
	AuthRateBurst    int            `json:"auth_rate_burst"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads path (if non-empty) and copies every non-zero field into config.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SigningAlgorithm, c.SigningAlgorithm)
	setString(&config.TokenIssuer, c.TokenIssuer)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ArgonTime != 0 {
		config.ArgonTime = c.ArgonTime
	}
	if c.ArgonMemory != 0 {
		config.ArgonMemory = c.ArgonMemory
	}
	if c.ArgonThreads != 0 {
		config.ArgonThreads = c.ArgonThreads
	}
	if c.MaxUploadBytes != 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.AuthRateLimit != 0 {
		config.AuthRateLimit = c.AuthRateLimit
	}
	if c.AuthRateBurst != 0 {
		config.AuthRateBurst = c.AuthRateBurst
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
