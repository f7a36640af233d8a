package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/vimaze.yaml
var defaultYAML []byte

// Default returns the built-in tuning.
func Default() Config {
	return Config{
		TickRate:        20,
		FlashMs:         400,
		DetectionRadius: 1,
	}
}

// Load reads the game config.
// Search order: customPath -> ~/.vimaze/config.yaml -> ./vimaze.yaml ->
// embedded default. Only an explicit customPath failure is an error;
// the fallbacks fail silently into the next candidate.
func Load(customPath string) (Config, error) {
	var cfg Config

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalize(), nil
	}

	if userCfg := userConfigPath(); userCfg != "" {
		if data, err := os.ReadFile(userCfg); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.normalize(), nil
			}
		}
	}

	if data, err := os.ReadFile("vimaze.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.normalize(), nil
		}
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalize(), nil
}

// userConfigPath returns ~/.vimaze/config.yaml, or empty when the home
// directory is unknown.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vimaze", "config.yaml")
}
