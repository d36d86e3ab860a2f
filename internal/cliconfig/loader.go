package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nasdeck/nasdeck/pkg/store"
)

// GlobalConfigFileNames are the names searched in the config directory (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindGlobalConfig returns the path to the global config file, or an empty
// string when none exists.
func FindGlobalConfig() string {
	dir := store.DefaultConfigDir()
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file. SetFields records the
// top-level keys present in the file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	var cfg CLIConfig
	if doc.Kind != 0 {
		if err := doc.Decode(&cfg); err != nil {
			return nil, &ConfigError{Path: path, Message: err.Error()}
		}
	}

	cfg.SetFields = make(map[string]bool)
	if len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
		m := doc.Content[0]
		for i := 0; i+1 < len(m.Content); i += 2 {
			key := m.Content[i]
			if !isKey(key.Value) {
				return nil, &ConfigError{Path: path, Line: key.Line, Column: key.Column,
					Message: fmt.Sprintf("unknown key %q", key.Value)}
			}
			cfg.SetFields[key.Value] = true
		}
	}
	cfg.Sources = make(map[string]string)
	cfg.ConfigFile = path
	return &cfg, nil
}

func isKey(k string) bool {
	for _, key := range Keys {
		if key == k {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d): %s", e.Path, e.Line, e.Column, e.Message)
	}
	return e.Path + ": " + e.Message
}

// Load builds the configuration from defaults, a config file and the
// environment. explicitPath comes from --config; when it, or NASDECK_CONFIG,
// names a file that does not exist, Load fails. Flags are applied by the
// caller afterwards with Set.
func Load(explicitPath string) (*CLIConfig, error) {
	cfg := NewDefault()

	path, required := explicitPath, explicitPath != ""
	if path == "" {
		if v := os.Getenv(EnvConfig); v != "" {
			path, required = v, true
		}
	}
	if path == "" {
		path = FindGlobalConfig()
	}

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		switch {
		case err == nil:
			MergeConfig(cfg, fileCfg, SourceFile)
			cfg.ConfigFile = path
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, err
		}
	}

	if err := LoadEnvConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
