package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".cowdodge"

// LoadCowDodge loads the game configuration.
// Search order: customPath -> ~/.cowdodge/configs/cowdodge.yaml -> ./configs/cowdodge.yaml -> embedded default.
// Files only need to set the keys they change; the rest keep their defaults.
func LoadCowDodge(customPath string) (CowDodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CowDodgeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CowDodgeConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cowdodge.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "cowdodge.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCowDodgeYAML)
	if err != nil {
		return DefaultCowDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
func Parse(data []byte) (CowDodgeConfig, error) {
	cfg := DefaultCowDodgeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CowDodgeConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return CowDodgeConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML, e.g. to store it next to a replay.
func Marshal(cfg CowDodgeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}
