package config

import "time"

// Config holds runtime settings for the terminal client.
type Config struct {
	APIBaseURL       string        `env:"WASTECMS_API_URL"`
	SiteURL          string        `env:"WASTECMS_SITE_URL"`
	DatabasePath     string        `env:"WASTECMS_DB_PATH"`
	RequestTimeout   time.Duration `env:"WASTECMS_REQUEST_TIMEOUT"`
	CarouselInterval time.Duration `env:"WASTECMS_CAROUSEL_INTERVAL"`
	Verbose          bool          `env:"WASTECMS_VERBOSE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "wastecms.db"
	c.RequestTimeout = 15 * time.Second
	c.CarouselInterval = 5 * time.Second
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// ShareBaseURL is the public site origin used in share links. It falls back
// to the API base URL when no site URL is configured.
func (c *Config) ShareBaseURL() string {
	if c.SiteURL != "" {
		return c.SiteURL
	}
	return c.APIBaseURL
}
