// Package config loads runtime configuration for the wastecms terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv); a .env file in the working
//     directory is loaded first if present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the content API
//	-w string   public site URL used in blog share links (defaults to -a)
//	-d string   path of the local sqlite file holding the session
//	-t int      request timeout (seconds)
//	-i int      testimonial carousel interval (seconds)
//	-v          verbose (debug) logging to stderr
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "site_url": "https://www.example.com",
//	  "database_path": "wastecms.db",
//	  "request_timeout": "15s",
//	  "carousel_interval": "5s",
//	  "verbose": false
//	}
//
// # Environment
//
//	WASTECMS_API_URL, WASTECMS_SITE_URL, WASTECMS_DB_PATH, WASTECMS_REQUEST_TIMEOUT,
//	WASTECMS_CAROUSEL_INTERVAL, WASTECMS_VERBOSE
package config
