package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr":                  "www.example:9000",
		"database_dsn":                   "postgres://cms",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "1m",
		"admin_email":                    "ops@example.com",
		"admin_password":                 "pw",
		"storage_backend":                "s3",
		"upload_dir":                     "/srv/uploads",
		"max_upload_size":                2048,
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "base_endpoint",
		"cors_allowed_origins":           []string{"https://site.example"},
		"login_rate_limit":               3,
	})

	t.Run("loads from json", func(t *testing.T) {
		withArgs(t, "-config", pathFlag)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "postgres://cms", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "ops@example.com", cfg.AdminEmail)
		assert.Equal(t, "pw", cfg.AdminPassword)
		assert.Equal(t, StorageS3, cfg.StorageBackend)
		assert.Equal(t, "/srv/uploads", cfg.UploadDir)
		assert.Equal(t, int64(2048), cfg.MaxUploadSize)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, []string{"https://site.example"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 3, cfg.LoginRateLimit)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		withArgs(t)

		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg
		parseJson(cfg)

		assert.Equal(t, want, *cfg)
	})

	t.Run("missing keys keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "only"})
		withArgs(t, "-c", partial)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "only", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.EndpointAddr)
		assert.Equal(t, 12*time.Hour, cfg.AccessTokenValidityDuration)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		withArgs(t, "-config", bad)

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
