package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	DefaultLevel  string            `yaml:"defaultLevel"`
	PackageLevels map[string]string `yaml:"packageLevels"`
	OutputPath    string            `yaml:"outputPath"`
	ConsoleFormat bool              `yaml:"consoleFormat"`
}

// LoadConfigFile reads a YAML logging configuration and applies it globally
// via Configure.
func LoadConfigFile(path string) error {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read logger config file: %w", err)
	}
	var parsed fileConfig
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("failed to unmarshal logger config: %w", err)
	}
	return Configure(Config{
		DefaultLevel:  parsed.DefaultLevel,
		PackageLevels: parsed.PackageLevels,
		OutputPath:    parsed.OutputPath,
		ConsoleFormat: parsed.ConsoleFormat,
	})
}
