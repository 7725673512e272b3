package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	// Not parallel: viper state is process-global.
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()
	if cfg.PackwizPath != "packwiz" {
		t.Errorf("PackwizPath = %q, want packwiz", cfg.PackwizPath)
	}
	if cfg.MaxAttempts != 20 {
		t.Errorf("MaxAttempts = %d, want 20", cfg.MaxAttempts)
	}
	if cfg.RetryInterval != 60*time.Second {
		t.Errorf("RetryInterval = %s, want 60s", cfg.RetryInterval)
	}
	if cfg.ToolTimeout != 120*time.Second {
		t.Errorf("ToolTimeout = %s, want 120s", cfg.ToolTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("max_attempts", 3)
	viper.Set("retry_interval", "5s")

	cfg := Load()
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.RetryInterval != 5*time.Second {
		t.Errorf("RetryInterval = %s, want 5s", cfg.RetryInterval)
	}
}
