package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultMemoryConfig returns the default memory game configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Board: BoardConfig{
			TotalCards: 24,
			Columns:    6,
		},
		Timing: TimingConfig{
			MismatchDelayMS: 900,
		},
		Symbols: []string{"🐶", "🐱", "🦊", "🐼", "🦁", "🐵", "🐸", "🐨", "🐯", "🐷", "🐔", "🐻"},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMemoryYAML
}
