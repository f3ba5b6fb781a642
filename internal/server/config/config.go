// Package config handles configuration for the content API server,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Storage backends for uploaded images.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// MemoryDSN selects the in-memory repositories instead of PostgreSQL.
const MemoryDSN = "memory"

// Config holds runtime settings for the wastecms server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx), or "memory" for the in-memory store.
//   - SecretKey: HMAC secret for signing admin JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: admin token lifetime.
//   - AdminEmail / AdminPassword: the admin account seeded at start.
//   - StorageBackend: "local" (UploadDir) or "s3".
//   - MaxUploadSize: limit for a whole multipart request, in bytes.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - CORSAllowedOrigins: origins of the public site allowed to call the API.
//   - LoginRateLimit: login attempts per minute per client IP.
type Config struct {
	EndpointAddr                string        `env:"WASTECMS_ADDR"`
	DatabaseDSN                 string        `env:"WASTECMS_DATABASE_DSN"`
	SecretKey                   string        `env:"WASTECMS_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"WASTECMS_TOKEN_TTL"`
	AdminEmail                  string        `env:"WASTECMS_ADMIN_EMAIL"`
	AdminPassword               string        `env:"WASTECMS_ADMIN_PASSWORD"`
	StorageBackend              string        `env:"WASTECMS_STORAGE"`
	UploadDir                   string        `env:"WASTECMS_UPLOAD_DIR"`
	MaxUploadSize               int64         `env:"WASTECMS_MAX_UPLOAD_SIZE"`
	S3RootUser                  string        `env:"WASTECMS_S3_USER"`
	S3RootPassword              string        `env:"WASTECMS_S3_PASSWORD"`
	S3Bucket                    string        `env:"WASTECMS_S3_BUCKET"`
	S3Region                    string        `env:"WASTECMS_S3_REGION"`
	S3BaseEndpoint              string        `env:"WASTECMS_S3_ENDPOINT"`
	CORSAllowedOrigins          []string      `env:"WASTECMS_CORS_ORIGINS" envSeparator:","`
	LoginRateLimit              int           `env:"WASTECMS_LOGIN_RATE_LIMIT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = MemoryDSN
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 12 * time.Hour
	c.AdminEmail = "admin@example.com"
	c.AdminPassword = "admin"
	c.StorageBackend = StorageLocal
	c.UploadDir = "uploads"
	c.MaxUploadSize = 10 << 20
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "wastecms"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.CORSAllowedOrigins = []string{"*"}
	c.LoginRateLimit = 5
}

// UsesMemory reports whether the in-memory repositories are selected.
func (c *Config) UsesMemory() bool {
	return c.DatabaseDSN == "" || c.DatabaseDSN == MemoryDSN
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
