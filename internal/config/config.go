package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a lodestone run.
// Values are populated from .lodestone.yaml, LODESTONE_* env vars, and
// CLI flags.
type Config struct {
	PackwizPath   string        `mapstructure:"packwiz_path"`
	GhPath        string        `mapstructure:"gh_path"`
	ModrinthAPI   string        `mapstructure:"modrinth_api"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	ToolTimeout   time.Duration `mapstructure:"tool_timeout"`
	APITimeout    time.Duration `mapstructure:"api_timeout"`
	Verbose       bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("packwiz_path", "packwiz")
	viper.SetDefault("gh_path", "gh")
	viper.SetDefault("modrinth_api", "https://api.modrinth.com/v2")
	viper.SetDefault("max_attempts", 20)
	viper.SetDefault("retry_interval", 60*time.Second)
	viper.SetDefault("tool_timeout", 120*time.Second)
	viper.SetDefault("api_timeout", 10*time.Second)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
