package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("logfile", "", "Write logs to file")
	flagWeld      = flag.Float64("weld", 0, "UV weld epsilon (0 = config default)")
	flagTolerance = flag.Float64("tolerance", 0, "Pick tolerance (0 = config default)")
)

// ParseFlags parses command-line flags. Call this early in main(); flags
// precede the subcommand.
func ParseFlags() {
	flag.Parse()
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
	if *flagWeld > 0 {
		cfg.Analyzer.WeldEpsilon = float32(*flagWeld)
	}
	if *flagTolerance > 0 {
		cfg.Picking.Tolerance = float32(*flagTolerance)
	}
}
