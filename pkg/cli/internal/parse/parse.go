// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyValue parses a "key=value" string. The key is trimmed and must not be
// empty.
func KeyValue(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", false
	}
	return key, value, true
}

// Scalar interprets a command-line value the way YAML would, so that
// "true", "3" and "[a, b]" become a bool, an int and a list. Anything that
// does not parse stays a string.
func Scalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}
	return v
}

// SplitTrim splits a string by separator and trims each part, dropping
// empty parts.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
