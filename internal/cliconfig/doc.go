// Package cliconfig provides configuration types and loading for the nasdeck CLI.
//
// Configuration is layered with the following precedence (highest first):
//
//  1. Command-line flags
//  2. Environment variables (NASDECK_* prefix)
//  3. Config file (--config, NASDECK_CONFIG, or ~/.config/nasdeck/config.yaml)
//  4. Default values
//
// The source of every value is tracked so that `nasdeck config` can show
// where each setting came from.
package cliconfig
