package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/wastecms/internal/flagx"
	"github.com/dmitrijs2005/wastecms/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Missing keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	SiteURL          string         `json:"site_url"`
	DatabasePath     string         `json:"database_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	CarouselInterval timex.Duration `json:"carousel_interval"`
	Verbose          *bool          `json:"verbose"`
}

// parseJson overlays cfg with values loaded from the file named by -c/-config.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SiteURL != "" {
		cfg.SiteURL = jc.SiteURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CarouselInterval.Duration > 0 {
		cfg.CarouselInterval = jc.CarouselInterval.Duration
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
