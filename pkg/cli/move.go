package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/service"
)

// MoveOutput is the JSON shape of a completed move.
type MoveOutput struct {
	View     string   `json:"view"`
	IDs      []string `json:"ids"`
	Dest     string   `json:"dest"`
	Position *int     `json:"position,omitempty"`
	Children []string `json:"children"`
}

func newMoveCmd(a *app) *cobra.Command {
	var (
		dest     string
		position int
		pattern  string
	)
	cmd := &cobra.Command{
		Use:   "move [ID...] --to FOLDER",
		Short: "Move folders and resources into a folder",
		Long: `Move entries into the folder given by --to. Without --position they are
appended in the order given; with --position they are inserted as one block
at that index, counted after the moved entries are taken out. Out of range
positions are clamped.

--match selects additional entries whose name or id matches a glob pattern.`,
		Example: `  nasdeck move plex jellyfin --to fld_1a2b3c4d5e6f
  nasdeck move backup-vm --to root --position 0
  nasdeck move --match 'media-*' --to fld_1a2b3c4d5e6f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			ids := args
			if pattern != "" {
				o, err := svc.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				matched, err := service.MatchNames(o, a.view(), pattern)
				if err != nil {
					return err
				}
				for _, id := range matched {
					// the destination cannot move into itself
					if id != dest && !slices.Contains(ids, id) {
						ids = append(ids, id)
					}
				}
			}
			if len(ids) == 0 {
				if pattern != "" {
					return fmt.Errorf("no entries match %q", pattern)
				}
				return errors.New("no ids given")
			}

			var act service.Action = &service.MoveToFolder{View: a.view(), IDs: ids, Dest: dest}
			var pos *int
			if cmd.Flags().Changed("position") {
				act = &service.MoveToPosition{View: a.view(), IDs: ids, Dest: dest, Position: position}
				pos = &position
			}
			o, err := svc.Apply(cmd.Context(), act)
			if err != nil {
				return err
			}

			v, _ := o.View(a.view())
			f, _ := v.Folder(dest)
			out := MoveOutput{View: v.ID, IDs: ids, Dest: dest, Position: pos, Children: f.Children}
			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", strings.Join(ids, ", "), dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "to", organizer.RootID, "Destination folder id")
	cmd.Flags().IntVar(&position, "position", 0, "Insert at this index instead of appending")
	cmd.Flags().StringVar(&pattern, "match", "", "Also move entries whose name or id matches this glob")
	return cmd
}
