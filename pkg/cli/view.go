package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/flags"
	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
	"github.com/nasdeck/nasdeck/pkg/cli/internal/parse"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/service"
)

// ViewOutput is the JSON shape of a view summary.
type ViewOutput struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Folders int            `json:"folders"`
	Prefs   map[string]any `json:"prefs,omitempty"`
}

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Manage views",
		Long: `A view is an independent folder arrangement over the same resources. The
default view always exists and is the one sync keeps up to date.`,
	}
	cmd.AddCommand(
		newViewListCmd(a),
		newViewCreateCmd(a),
		newViewRmCmd(a),
		newViewPrefsCmd(a),
	)
	return cmd
}

func summarize(v *organizer.View) ViewOutput {
	// the root folder is not counted
	n := len(v.Entries)
	if _, ok := v.Folder(v.Root); ok {
		n--
	}
	return ViewOutput{ID: v.ID, Name: v.Name, Folders: n, Prefs: v.Prefs}
}

func newViewListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List views",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			o, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]ViewOutput, 0, len(o.Views))
			for _, id := range o.ViewIDs() {
				if v, ok := o.View(id); ok {
					views = append(views, summarize(v))
				}
			}

			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), views)
			}
			tw := output.Table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tFOLDERS")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", v.ID, v.Name, v.Folders)
			}
			return tw.Flush()
		},
	}
}

func newViewCreateCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act := &service.AddView{ID: id, Name: args[0]}
			o, err := a.apply(cmd.Context(), act)
			if err != nil {
				return err
			}
			v, _ := o.View(act.ID)
			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), summarize(v))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created view %s (%s)\n", v.ID, v.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "View id (generated when empty)")
	return cmd
}

func newViewRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Remove a view",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.apply(cmd.Context(), &service.RemoveView{ID: args[0]}); err != nil {
				return err
			}
			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), map[string]string{"removed": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed view %s\n", args[0])
			return nil
		},
	}
}

func newViewPrefsCmd(a *app) *cobra.Command {
	var (
		set   flags.StringSlice
		unset flags.StringSlice
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "prefs [ID]",
		Short: "Show or change a view's display preferences",
		Long: `Preferences are free-form settings a front end keeps per view. Values given
with --set are read as YAML scalars, so numbers and booleans keep their type.`,
		Example: `  nasdeck view prefs
  nasdeck view prefs work --set sort=name --set compact=true
  nasdeck view prefs work --unset sort`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID := a.view()
			if len(args) == 1 {
				viewID = args[0]
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			o, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			v, ok := o.View(viewID)
			if !ok {
				return fmt.Errorf("view %s: %w", viewID, organizer.ErrNotFound)
			}

			prefs := v.Prefs
			if reset || len(set) > 0 || len(unset) > 0 {
				next := map[string]any{}
				if !reset {
					maps.Copy(next, v.Prefs)
				}
				for _, kv := range set {
					key, value, ok := parse.KeyValue(kv)
					if !ok {
						return fmt.Errorf("invalid --set %q (want key=value)", kv)
					}
					next[key] = parse.Scalar(value)
				}
				for _, key := range unset {
					delete(next, key)
				}
				o, err = svc.Apply(cmd.Context(), &service.SetPrefs{View: viewID, Prefs: next})
				if err != nil {
					return err
				}
				v, _ = o.View(viewID)
				prefs = v.Prefs
			}

			if prefs == nil {
				prefs = map[string]any{}
			}
			if a.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), prefs)
			}
			for _, key := range slices.Sorted(maps.Keys(prefs)) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", key, prefs[key])
			}
			return nil
		},
	}
	cmd.Flags().Var(&set, "set", "Set a preference (key=value, repeatable)")
	cmd.Flags().Var(&unset, "unset", "Remove a preference (repeatable)")
	cmd.Flags().BoolVar(&reset, "clear", false, "Remove all preferences before applying --set")
	return cmd
}
