package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/audit"
	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes from the audit journal",
		Long: `Show the most recent entries of the audit journal kept next to
organizer.json: applied and rejected actions and syncs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.journalPath()
			if path == "" {
				return errors.New("the audit journal is disabled or the backend keeps no files")
			}
			entries, err := audit.ReadFile(path, limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []audit.Entry{}
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return output.JSON(w, entries)
			}
			tw := output.Table(w)
			fmt.Fprintln(tw, "SEQ\tTIME\tEVENT\tDETAIL")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Event, detail(e))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	return cmd
}

// detail summarizes an entry in one line.
func detail(e audit.Entry) string {
	var parts []string
	if e.Action != nil {
		parts = append(parts, e.Action.Op)
	}
	if e.Sync != nil {
		parts = append(parts, fmt.Sprintf("%d resources", e.Sync.Resources))
		if len(e.Sync.Added) > 0 {
			parts = append(parts, "added "+strings.Join(e.Sync.Added, ","))
		}
		if len(e.Sync.Orphans) > 0 {
			parts = append(parts, "orphans "+strings.Join(e.Sync.Orphans, ","))
		}
	}
	if e.Error != nil {
		msg := e.Error.Message
		if e.Error.Kind != "" {
			msg = e.Error.Kind + ": " + msg
		}
		if len(e.Error.IDs) > 0 {
			msg += " [" + strings.Join(e.Error.IDs, ",") + "]"
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
