package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
	"github.com/nasdeck/nasdeck/pkg/cli/internal/parse"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/service"
)

// FolderOutput is the JSON shape of a single folder.
type FolderOutput struct {
	View     string   `json:"view"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

func newFolderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Create, rename, reorder and remove folders",
	}
	cmd.AddCommand(
		newFolderCreateCmd(a),
		newFolderRenameCmd(a),
		newFolderChildrenCmd(a),
		newFolderRmCmd(a),
	)
	return cmd
}

// printFolder shows folder id of view in o.
func (a *app) printFolder(cmd *cobra.Command, o *organizer.Organizer, id string) error {
	v, ok := o.View(a.view())
	if !ok {
		return fmt.Errorf("view %s: %w", a.view(), organizer.ErrNotFound)
	}
	f, ok := v.Folder(id)
	if !ok {
		return fmt.Errorf("folder %s: %w", id, organizer.ErrNotFound)
	}
	out := FolderOutput{View: v.ID, ID: f.ID, Name: f.Name, Children: f.Children}
	if out.Children == nil {
		out.Children = []string{}
	}
	w := cmd.OutOrStdout()
	if a.jsonOutput {
		return output.JSON(w, out)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", out.ID, out.Name, strings.Join(out.Children, ","))
	return nil
}

func newFolderCreateCmd(a *app) *cobra.Command {
	var (
		parent   string
		id       string
		children string
	)
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder",
		Long: `Create a folder under --parent (the root by default). Entries listed in
--children are moved into the new folder in the given order.`,
		Example: `  nasdeck folder create Media
  nasdeck folder create Backups --parent fld_1a2b3c4d5e6f --children plex,jellyfin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act := &service.CreateFolder{
				View:     a.view(),
				Parent:   parent,
				ID:       id,
				Name:     args[0],
				Children: parse.SplitTrim(children, ","),
			}
			o, err := a.apply(cmd.Context(), act)
			if err != nil {
				return err
			}
			return a.printFolder(cmd, o, act.ID)
		},
	}
	cmd.Flags().StringVar(&parent, "parent", organizer.RootID, "Parent folder id")
	cmd.Flags().StringVar(&id, "id", "", "Folder id (generated when empty)")
	cmd.Flags().StringVar(&children, "children", "", "Comma-separated ids to move into the folder")
	return cmd
}

func newFolderRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.apply(cmd.Context(), &service.RenameFolder{View: a.view(), Folder: args[0], Name: args[1]})
			if err != nil {
				return err
			}
			return a.printFolder(cmd, o, args[0])
		},
	}
}

func newFolderChildrenCmd(a *app) *cobra.Command {
	var set string
	cmd := &cobra.Command{
		Use:   "children ID",
		Short: "Show or replace the children of a folder",
		Long: `Without --set, print the folder's children. With --set, replace them with
the given comma-separated ids. Ids taken from other folders are removed
there. Subfolders may be reordered but not dropped; resources that are
dropped are placed back at the root by the next sync.`,
		Example: `  nasdeck folder children root
  nasdeck folder children fld_1a2b3c4d5e6f --set jellyfin,plex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("set") {
				svc, err := a.service()
				if err != nil {
					return err
				}
				o, err := svc.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				return a.printFolder(cmd, o, args[0])
			}
			kids := parse.SplitTrim(set, ",")
			if kids == nil {
				kids = []string{}
			}
			o, err := a.apply(cmd.Context(), &service.SetChildren{View: a.view(), Folder: args[0], Children: kids})
			if err != nil {
				return err
			}
			return a.printFolder(cmd, o, args[0])
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "Comma-separated ids that become the folder's children")
	return cmd
}

func newFolderRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete"},
		Short:   "Remove folders or resource references",
		Long: `Remove entries from the view. A folder is removed together with every
folder below it. Resources are never deleted, only unreferenced; the next
sync places them back at the root.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.apply(cmd.Context(), &service.DeleteEntries{View: a.view(), IDs: args}); err != nil {
				return err
			}
			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), map[string]any{"view": a.view(), "deleted": args})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", strings.Join(args, ", "))
			return nil
		},
	}
}
