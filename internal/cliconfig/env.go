package cliconfig

import "os"

// Environment variable names
const (
	EnvConfig      = "NASDECK_CONFIG"
	EnvBackend     = "NASDECK_BACKEND"
	EnvDataDir     = "NASDECK_DATA_DIR"
	EnvReadOnly    = "NASDECK_READ_ONLY"
	EnvResources   = "NASDECK_RESOURCES"
	EnvFilter      = "NASDECK_FILTER"
	EnvSyncOnApply = "NASDECK_SYNC_ON_APPLY"
	EnvAudit       = "NASDECK_AUDIT"
	EnvView        = "NASDECK_VIEW"
	EnvLogLevel    = "NASDECK_LOG_LEVEL"
	EnvLogFormat   = "NASDECK_LOG_FORMAT"
	EnvLogFile     = "NASDECK_LOG_FILE"
)

// envKeys maps environment variables to config keys.
var envKeys = []struct{ env, key string }{
	{EnvBackend, "backend"},
	{EnvDataDir, "dataDir"},
	{EnvReadOnly, "readOnly"},
	{EnvResources, "resources"},
	{EnvFilter, "filter"},
	{EnvSyncOnApply, "syncOnApply"},
	{EnvAudit, "audit"},
	{EnvView, "view"},
	{EnvLogLevel, "logLevel"},
	{EnvLogFormat, "logFormat"},
	{EnvLogFile, "logFile"},
}

// LoadEnvConfig applies environment variables that are set and not empty.
// Malformed booleans are reported and leave the previous value.
func LoadEnvConfig(cfg *CLIConfig) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := cfg.Set(e.key, v, SourceEnv); err != nil {
			return &ConfigError{Path: e.env, Message: err.Error()}
		}
	}
	return nil
}
