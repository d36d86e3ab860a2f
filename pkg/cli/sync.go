package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
)

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the default view with the current resource list",
		Long: `Fetch the resource list from --resources, append resources not yet placed in
any folder to the root of the default view, and save.

Resources that disappeared stay where they were and are reported as orphans.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			report, err := svc.Sync(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), report)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Synced %d resources\n", report.Resources)
			if len(report.Added) > 0 {
				fmt.Fprintf(w, "  added:   %s\n", strings.Join(report.Added, ", "))
			}
			if len(report.Orphans) > 0 {
				fmt.Fprintf(w, "  orphans: %s\n", strings.Join(report.Orphans, ", "))
			}
			if !report.Saved {
				fmt.Fprintln(w, "  no changes")
			}
			return nil
		},
	}
}
