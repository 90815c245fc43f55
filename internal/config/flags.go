package config

import "github.com/spf13/pflag"

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"
	flagDebug    = "debug"
)

// RegisterFlags adds the configuration flags shared by every command.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "Path to config file")
	fs.String(flagLogLevel, "", "Log level (debug, info, warn, error)")
	fs.String(flagLogFile, "", "Write logs to this file as well")
	fs.Bool(flagDebug, false, "Enable debug logging")
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(flagConfig) == nil {
		return ""
	}
	path, _ := fs.GetString(flagConfig)
	return path
}

// applyFlags applies flags the user actually set on top of cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed(flagLogLevel) {
		cfg.Logging.Level, _ = fs.GetString(flagLogLevel)
	}
	if fs.Changed(flagLogFile) {
		cfg.Logging.LogFile, _ = fs.GetString(flagLogFile)
	}
	if debug, _ := fs.GetBool(flagDebug); debug {
		cfg.Logging.Level = "debug"
	}
}
