package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/internal/cliconfig"
	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
)

// ConfigEntry is one resolved setting and where it came from.
type ConfigEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show every setting after flags, environment variables (NASDECK_*) and the
config file have been applied, together with where each value came from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := make([]ConfigEntry, 0, len(cliconfig.Keys))
			for _, key := range cliconfig.Keys {
				entries = append(entries, ConfigEntry{Key: key, Value: a.cfg.Get(key), Source: a.cfg.Source(key)})
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return output.JSON(w, map[string]any{"configFile": a.cfg.ConfigFile, "settings": entries})
			}
			if a.cfg.ConfigFile != "" {
				fmt.Fprintf(w, "# Config file: %s\n", a.cfg.ConfigFile)
			} else {
				fmt.Fprintln(w, "# No config file")
			}
			tw := output.Table(w)
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
			}
			return tw.Flush()
		},
	}
}
