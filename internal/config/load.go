package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.Import.Workers < 1 {
		return fmt.Errorf("import.workers must be positive, got %d", c.Import.Workers)
	}
	if c.Sphere.Radius <= 0 {
		return fmt.Errorf("sphere.radius must be positive, got %g", c.Sphere.Radius)
	}
	if c.Sphere.Subdivision < 0 {
		return fmt.Errorf("sphere.subdivision must not be negative, got %d", c.Sphere.Subdivision)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Meshweld")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Meshweld")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshweld")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshweld")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A relative import.material_dir set by the file is taken relative to the
// file's directory, so a project config works from any working directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	if dir := file.Import.MaterialDir; dir != "" && !filepath.IsAbs(dir) {
		cfg.Import.MaterialDir = filepath.Join(filepath.Dir(path), dir)
	}
	return nil
}
