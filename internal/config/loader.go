package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "cubefall.yaml"

// LoadCubefall loads the game configuration.
// Search order: customPath -> ~/.cubefall/configs/cubefall.yaml ->
// ./configs/cubefall.yaml -> embedded default -> hardcoded default.
// Files are decoded over the defaults, so they may set only some keys.
// An explicit customPath that cannot be read or parsed is an error; the
// implicit locations are skipped when unusable.
func LoadCubefall(customPath string) (CubefallConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CubefallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return CubefallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultCubefallYAML); err == nil {
		return cfg, nil
	}
	return DefaultCubefallConfig(), nil
}

// parse decodes data over the hardcoded defaults.
func parse(data []byte) (CubefallConfig, error) {
	cfg := DefaultCubefallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CubefallConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(configFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", configFile))
}

// userConfigPath returns the path under the user config directory, or empty
// if the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cubefall", "configs", filename)
}

// WriteDefault writes the embedded default file to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, defaultCubefallYAML, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath is where WriteDefault puts the per-user file.
func UserConfigPath() string {
	return userConfigPath(configFile)
}
