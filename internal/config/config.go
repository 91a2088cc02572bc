// Package config handles meshtool configuration loading and management.
package config

// Config holds all meshtool settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Sphere  SphereConfig  `yaml:"sphere"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds model loading settings.
type ImportConfig struct {
	MaterialDir string `yaml:"material_dir"` // Empty = next to each model file
	Workers     int    `yaml:"workers"`      // Concurrent loads for batch commands
}

// SphereConfig holds defaults for procedurally generated spheres.
type SphereConfig struct {
	Center      [3]float32 `yaml:"center"`
	Radius      float32    `yaml:"radius"`
	Subdivision int        `yaml:"subdivision"`
	Diffuse     [3]float32 `yaml:"diffuse"`
	Analytic    bool       `yaml:"analytic"` // Attach the exact sphere for ray tracing
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			MaterialDir: "",
			Workers:     4,
		},
		Sphere: SphereConfig{
			Center:      [3]float32{0, 0, 0},
			Radius:      1,
			Subdivision: 3,
			Diffuse:     [3]float32{0.7, 0.7, 0.7},
			Analytic:    true,
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
