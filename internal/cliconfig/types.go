package cliconfig

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nasdeck/nasdeck/pkg/logging"
	"github.com/nasdeck/nasdeck/pkg/store"
)

// CLIConfig represents the complete configuration for the nasdeck CLI.
type CLIConfig struct {
	// Storage
	Backend  string `yaml:"backend" json:"backend"`
	DataDir  string `yaml:"dataDir" json:"dataDir"`
	ReadOnly bool   `yaml:"readOnly" json:"readOnly"`

	// Resource provider
	Resources   string `yaml:"resources,omitempty" json:"resources,omitempty"`
	Filter      string `yaml:"filter,omitempty" json:"filter,omitempty"`
	SyncOnApply bool   `yaml:"syncOnApply" json:"syncOnApply"`

	// Audit keeps a journal of changes next to the organizer file
	Audit bool `yaml:"audit" json:"audit"`

	// View used by commands that do not name one
	View string `yaml:"view" json:"view"`

	// Logging
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys a config file set explicitly, so that an
	// explicit false can override a true default.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Keys lists the settable keys in display order.
var Keys = []string{
	"backend", "dataDir", "readOnly",
	"resources", "filter", "syncOnApply",
	"audit", "view",
	"logLevel", "logFormat", "logFile",
}

// NewDefault returns the default configuration.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Backend:   string(store.BackendFile),
		DataDir:   store.DefaultDataDir(),
		Audit:     true,
		View:      "default",
		LogLevel:  "warn",
		LogFormat: string(logging.FormatText),
		Sources:   make(map[string]string),
	}
	for _, k := range Keys {
		cfg.Sources[k] = SourceDefault
	}
	return cfg
}

// Set assigns value to key and records its source.
func (c *CLIConfig) Set(key, value, source string) error {
	switch key {
	case "backend":
		c.Backend = value
	case "dataDir":
		c.DataDir = value
	case "resources":
		c.Resources = value
	case "filter":
		c.Filter = value
	case "view":
		c.View = value
	case "logLevel":
		c.LogLevel = value
	case "logFormat":
		c.LogFormat = value
	case "logFile":
		c.LogFile = value
	case "readOnly", "syncOnApply", "audit":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "readOnly":
			c.ReadOnly = b
		case "syncOnApply":
			c.SyncOnApply = b
		default:
			c.Audit = b
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = source
	return nil
}

// Get returns the value of key formatted for display.
func (c *CLIConfig) Get(key string) string {
	switch key {
	case "backend":
		return c.Backend
	case "dataDir":
		return c.DataDir
	case "readOnly":
		return strconv.FormatBool(c.ReadOnly)
	case "resources":
		return c.Resources
	case "filter":
		return c.Filter
	case "syncOnApply":
		return strconv.FormatBool(c.SyncOnApply)
	case "audit":
		return strconv.FormatBool(c.Audit)
	case "view":
		return c.View
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	case "logFile":
		return c.LogFile
	}
	return ""
}

// Source returns where key's value came from.
func (c *CLIConfig) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Validate checks values that cannot be checked while parsing.
func (c *CLIConfig) Validate() error {
	backends := []string{string(store.BackendFile), string(store.BackendMemory)}
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("backend %q is not one of %s", c.Backend, strings.Join(backends, ", "))
	}
	if c.Backend == string(store.BackendFile) && c.DataDir == "" {
		return fmt.Errorf("dataDir is required for the file backend")
	}
	if c.View == "" {
		return fmt.Errorf("view cannot be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}
