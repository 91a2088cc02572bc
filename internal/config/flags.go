package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Also write logs to this file")
	flagWorkers     = flag.Int("workers", 0, "Concurrent model loads")
	flagMaterialDir = flag.String("material-dir", "", "Directory to resolve material libraries in")
	flagOutputDir   = flag.String("out-dir", "", "Directory for exported files")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments (the command and its arguments).
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWorkers > 0 {
		cfg.Import.Workers = *flagWorkers
	}
	if *flagMaterialDir != "" {
		cfg.Import.MaterialDir = *flagMaterialDir
	}
	if *flagOutputDir != "" {
		cfg.Export.OutputDir = *flagOutputDir
	}
}
