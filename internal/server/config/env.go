package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays config with WASTECMS_* variables, reading a .env file in
// the working directory first when there is one.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
