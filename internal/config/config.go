package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config holds ambient settings for a conversion run. Values come from
// environment variables, optionally seeded from a .env file in the working
// directory. Per-run inputs (file paths, inductance) stay on the CLI.
type Config struct {
	OutputDir string
	Workers   int
	LogLevel  string
}

// Load reads configuration from the environment and .env file.
func Load() (*Config, error) {
	viper.SetDefault("CS2CG_OUTPUT_DIR", ".")
	viper.SetDefault("CS2CG_WORKERS", runtime.NumCPU())
	viper.SetDefault("CS2CG_LOG_LEVEL", "info")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // file is optional

	viper.AutomaticEnv()
	viper.BindEnv("CS2CG_OUTPUT_DIR")
	viper.BindEnv("CS2CG_WORKERS")
	viper.BindEnv("CS2CG_LOG_LEVEL")

	cfg := &Config{
		OutputDir: viper.GetString("CS2CG_OUTPUT_DIR"),
		Workers:   viper.GetInt("CS2CG_WORKERS"),
		LogLevel:  viper.GetString("CS2CG_LOG_LEVEL"),
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
