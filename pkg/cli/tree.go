package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
	"github.com/nasdeck/nasdeck/pkg/organizer"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		format string
		sel    string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the resolved folder tree of a view",
		Long: `Print the folder tree of a view with resources in place of their ids.

Ids that name neither a folder nor a known resource are shown as orphans.

--select evaluates a JSONPath expression against the resolved view and prints
the matches as JSON.`,
		Example: `  nasdeck tree
  nasdeck tree --view work -o yaml
  nasdeck tree --select "$..children[?(@.kind == 'orphan')].id"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ctx := cmd.Context()

			if sel != "" {
				matches, err := svc.Select(ctx, a.view(), sel)
				if err != nil {
					return err
				}
				if matches == nil {
					matches = []any{}
				}
				return output.JSON(w, matches)
			}

			if a.jsonOutput {
				format = "json"
			}
			switch format {
			case "text", "json", "yaml":
			case "":
				format = "text"
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
			}

			if all {
				tree, err := svc.ResolveAll(ctx)
				if err != nil {
					return err
				}
				switch format {
				case "json":
					return output.JSON(w, tree)
				case "yaml":
					return output.YAML(w, tree)
				}
				for i, id := range tree.ViewIDs() {
					if i > 0 {
						fmt.Fprintln(w)
					}
					printTree(w, tree.Views[id])
				}
				return nil
			}

			rv, err := svc.Resolve(ctx, a.view())
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return output.JSON(w, rv)
			case "yaml":
				return output.YAML(w, rv)
			}
			printTree(w, rv)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&sel, "select", "", "JSONPath expression evaluated against the resolved view")
	cmd.Flags().BoolVar(&all, "all", false, "Print every view")
	return cmd
}

// printTree renders a resolved view as an indented tree.
func printTree(w io.Writer, rv *organizer.ResolvedView) {
	fmt.Fprintf(w, "%s (%s)\n", rv.Name, rv.ID)
	printChildren(w, rv.Root.Children, "")
}

func printChildren(w io.Writer, nodes []*organizer.Node, prefix string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(n))
		printChildren(w, n.Children, prefix+next)
	}
}

func nodeLabel(n *organizer.Node) string {
	switch n.Kind {
	case organizer.NodeFolder:
		return fmt.Sprintf("%s/ [%s]", n.Name, n.ID)
	case organizer.NodeResource:
		if n.Resource != nil && n.Resource.Type != "" {
			return fmt.Sprintf("%s (%s) [%s]", n.Name, n.Resource.Type, n.ID)
		}
		return fmt.Sprintf("%s [%s]", n.Name, n.ID)
	case organizer.NodeCycle:
		return fmt.Sprintf("%s/ [%s] (cycle)", n.Name, n.ID)
	case organizer.NodeShared:
		return fmt.Sprintf("%s/ [%s] (listed again)", n.Name, n.ID)
	default:
		return fmt.Sprintf("? [%s] (orphan)", n.ID)
	}
}
