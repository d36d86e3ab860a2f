package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/internal/cliconfig"
	"github.com/nasdeck/nasdeck/pkg/audit"
	"github.com/nasdeck/nasdeck/pkg/logging"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/provider"
	"github.com/nasdeck/nasdeck/pkg/service"
	"github.com/nasdeck/nasdeck/pkg/store"
	"github.com/nasdeck/nasdeck/pkg/store/file"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// errSilent signals a failure that the command already reported.
var errSilent = errors.New("silent failure")

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"data-dir":   "dataDir",
	"view":       "view",
	"log-level":  "logLevel",
	"log-format": "logFormat",
	"log-file":   "logFile",
	"resources":  "resources",
	"filter":     "filter",
	"backend":    "backend",
	"read-only":  "readOnly",
	"audit":      "audit",
}

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	jsonOutput bool

	cfg     *cliconfig.CLIConfig
	log     *slog.Logger
	closer  io.Closer
	journal audit.Logger
	svc     *service.Service
	store   store.OrganizerStore
}

// NewRootCmd builds the command tree. Output goes to the command's
// configured writers so the tree can be driven from tests.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nasdeck",
		Short: "nasdeck arranges NAS resources into folders and views",
		Long: `nasdeck keeps user-defined folder trees over the resources a NAS reports
(containers, shares, VMs). Each view is an independent arrangement; resources
are never moved or changed, only organized.

Configuration can be provided via flags, environment variables (NASDECK_*),
or a configuration file at ~/.config/nasdeck/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Main()
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file path (default: ~/.config/nasdeck/config.yaml)")
	pf.BoolVar(&a.jsonOutput, "json", false, "Output command results in JSON format")
	pf.String("data-dir", "", "Directory holding organizer.json")
	pf.String("view", "", "View to operate on (default: default)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("log-file", "", "Also write debug logs as JSON to this file")
	pf.String("resources", "", "YAML or JSON file listing the NAS resources")
	pf.String("filter", "", `Expression selecting resources, e.g. 'type == "container"'`)
	pf.String("backend", "", "Storage backend: file or memory")
	pf.Bool("read-only", false, "Refuse to save changes")
	pf.Bool("audit", true, "Record changes in the audit journal")

	rootCmd.AddCommand(
		newSyncCmd(a),
		newTreeCmd(a),
		newFolderCmd(a),
		newMoveCmd(a),
		newViewCmd(a),
		newValidateCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup resolves configuration and opens logging. The store and service are
// created on first use.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := cliconfig.Load(a.configPath)
	if err != nil {
		return err
	}
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := cfg.Set(key, f.Value.String(), cliconfig.SourceFlag); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Format = logging.ParseFormat(cfg.LogFormat)
	logCfg.Output = cmd.ErrOrStderr()
	a.log, a.closer, err = logging.Open(logCfg, cfg.LogFile)
	if err != nil {
		return err
	}
	a.log.Debug("configuration loaded", "file", cfg.ConfigFile, "dataDir", cfg.DataDir, "backend", cfg.Backend)
	return nil
}

func (a *app) close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil && a.log != nil {
			a.log.Warn("closing audit journal", "error", err)
		}
		a.journal = nil
	}
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

// service returns the service for this invocation, opening the store and
// resource provider the configuration names.
func (a *app) service() (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	cfg := a.cfg

	switch store.Backend(cfg.Backend) {
	case store.BackendMemory:
		ms := store.NewMemoryStore(nil)
		ms.SetReadOnly(cfg.ReadOnly)
		a.store = ms
	default:
		sc := store.DefaultConfig()
		sc.DataDir = cfg.DataDir
		sc.ReadOnly = cfg.ReadOnly
		a.store = file.New(sc, file.WithLogger(a.log))
	}

	a.journal = audit.NewSlogLogger(a.log)
	if path := a.journalPath(); path != "" && !cfg.ReadOnly {
		fl, err := audit.NewFileLogger(path)
		if err != nil {
			return nil, err
		}
		a.journal = audit.NewMultiWriter(fl, a.journal)
	}

	opts := []service.Option{
		service.WithLogger(a.log),
		service.WithAudit(a.journal),
		service.WithSyncOnApply(cfg.SyncOnApply),
	}
	if cfg.Resources != "" {
		var p provider.Provider = provider.NewFile(cfg.Resources, provider.WithLogger(a.log))
		if cfg.Filter != "" {
			f, err := provider.NewFilter(p, cfg.Filter)
			if err != nil {
				return nil, err
			}
			a.log.Debug("filtering resources", "expression", f.Expression())
			p = f
		}
		opts = append(opts, service.WithProvider(p))
	} else if cfg.Filter != "" {
		a.log.Warn("filter ignored without a resources file", "filter", cfg.Filter)
	}

	a.svc = service.New(a.store, opts...)
	return a.svc, nil
}

// journalPath returns the audit journal file, or "" when auditing is off or
// the store keeps nothing on disk.
func (a *app) journalPath() string {
	if !a.cfg.Audit || store.Backend(a.cfg.Backend) != store.BackendFile {
		return ""
	}
	return filepath.Join(a.cfg.DataDir, audit.DefaultFile)
}

// view returns the view selected by --view or the configuration.
func (a *app) view() string {
	if a.cfg == nil || a.cfg.View == "" {
		return organizer.DefaultViewID
	}
	return a.cfg.View
}

// apply runs one action through the service.
func (a *app) apply(ctx context.Context, act service.Action) (*organizer.Organizer, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	return svc.Apply(ctx, act)
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// Execute runs the CLI and exits. This is called by main.main().
func Execute() {
	os.Exit(Main())
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errSilent) {
		reportError(stdout, stderr, err, a.jsonOutput)
	}
	return 1
}
