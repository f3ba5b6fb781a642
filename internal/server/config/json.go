package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/wastecms/internal/flagx"
	"github.com/dmitrijs2005/wastecms/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for the token lifetime, which allows parsing both
// string values such as "12h" and integer nanoseconds.
//
// Missing keys leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AdminEmail                  string         `json:"admin_email"`
	AdminPassword               string         `json:"admin_password"`
	StorageBackend              string         `json:"storage_backend"`
	UploadDir                   string         `json:"upload_dir"`
	MaxUploadSize               int64          `json:"max_upload_size"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	LoginRateLimit              int            `json:"login_rate_limit"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing is loaded. If the file
// cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UploadDir, c.UploadDir)
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.LoginRateLimit > 0 {
		config.LoginRateLimit = c.LoginRateLimit
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
