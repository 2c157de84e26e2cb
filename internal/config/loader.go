package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMemory loads the memory game configuration.
// Search order: customPath -> ~/.memory/configs/memory.yaml -> ./configs/memory.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadMemory(customPath string) (MemoryConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MemoryConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultMemoryConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return MemoryConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return MemoryConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("memory.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "memory.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultMemoryConfig()
	if err := yaml.Unmarshal(defaultMemoryYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultMemoryConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unreadable or invalid
// files are skipped so the next location in the search order is used.
func tryLoad(path string) (MemoryConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MemoryConfig{}, false
	}
	cfg := DefaultMemoryConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MemoryConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return MemoryConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memory", "configs", filename)
}
