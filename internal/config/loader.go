package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound indicates no config file was found in the standard
// search locations.
var ErrConfigNotFound = errors.New("configuration file not found")

// Load loads configuration from explicitPath, or from the standard search
// locations if explicitPath is empty, and validates the result.
func Load(explicitPath string) (Config, error) {
	var configPath string
	var err error

	if explicitPath != "" {
		configPath = explicitPath
		if _, statErr := os.Stat(configPath); statErr != nil {
			if os.IsNotExist(statErr) {
				return Config{}, fmt.Errorf("specified config file does not exist: %s", configPath)
			}
			return Config{}, fmt.Errorf("cannot access config file %s: %w", configPath, statErr)
		}
	} else {
		configPath, err = findConfigFile()
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrConfigNotFound, err)
		}
	}

	file, err := os.Open(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file %s: %w", configPath, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// findConfigFile searches for a treecached.yaml in the current directory
// and the user config directory.
func findConfigFile() (string, error) {
	names := []string{"treecached.yaml", "treecached.yml"}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		dir := filepath.Join(userConfigDir, "treecached")
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf(`configuration file not found. Create one of:
  - ./treecached.yaml (current directory)
  - %s (user config directory)`, filepath.Join(userConfigDir, "treecached", "treecached.yaml"))
}
