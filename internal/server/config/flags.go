package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN, or "memory"
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   admin email
//	-p string   admin password
//	-b string   storage backend: local or s3
//	-e string   upload directory of the local backend
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The token validity is given in minutes and only applied when the flag
//     is present, so finer values from JSON or env survive.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.AdminEmail, "u", config.AdminEmail, "admin email")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "admin password")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "image storage backend (local|s3)")
	fs.StringVar(&config.UploadDir, "e", config.UploadDir, "upload directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
