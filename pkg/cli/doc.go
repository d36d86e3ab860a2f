// Package cli implements the nasdeck command line. Every command loads the
// layered configuration, opens the configured store and runs through a
// service.Service, so the CLI never mutates an organizer directly.
package cli
