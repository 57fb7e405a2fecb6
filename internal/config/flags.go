package config

import "flag"

// Flags holds the command-line overrides for a culling run.
var Flags = flag.NewFlagSet("cull", flag.ContinueOnError)

var (
	flagConfig   = Flags.String("config", "", "Path to config file")
	flagDebug    = Flags.Bool("debug", false, "Enable debug logging")
	flagWorkers  = Flags.Int("workers", -1, "Culling workers (0 = one per CPU)")
	flagCellSize = Flags.Float64("cell-size", 0, "Grid cell edge length")
	flagLogFile  = Flags.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in the command.
func ParseFlags(args []string) error {
	return Flags.Parse(args)
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
	if *flagWorkers >= 0 {
		cfg.Culling.Workers = *flagWorkers
	}
	if *flagCellSize > 0 {
		cfg.Grid.CellSize = *flagCellSize
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
