package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
	"github.com/nasdeck/nasdeck/pkg/store/file"
	"github.com/nasdeck/nasdeck/pkg/validation"
)

// ValidateOutput is the JSON shape of a validation run.
type ValidateOutput struct {
	File string `json:"file"`
	*validation.Result
}

func newValidateCmd(a *app) *cobra.Command {
	var schema bool
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check an organizer file without changing it",
		Long: `Validate an organizer document against the schema and the structural
invariants. Without FILE the store's organizer.json is checked.

Errors make the command fail. Warnings describe what loading would repair.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if schema {
				_, err := w.Write(validation.Schema())
				return err
			}

			path := filepath.Join(a.cfg.DataDir, file.DataFile)
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			_, result := validation.Validate(raw)

			if a.jsonOutput {
				if err := output.JSON(w, ValidateOutput{File: path, Result: result}); err != nil {
					return err
				}
			} else {
				printValidation(cmd, path, result)
			}
			if result.HasErrors() {
				return errSilent
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&schema, "schema", false, "Print the JSON Schema instead of validating")
	return cmd
}

func printValidation(cmd *cobra.Command, path string, result *validation.Result) {
	w := cmd.OutOrStdout()
	for _, e := range result.Errors {
		fmt.Fprintf(w, "error: %s\n", e.Error())
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.Error())
	}
	switch {
	case result.HasErrors():
		fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n", path, len(result.Errors), len(result.Warnings))
	case result.HasWarnings():
		fmt.Fprintf(w, "%s: valid, %d warning(s)\n", path, len(result.Warnings))
	default:
		fmt.Fprintf(w, "%s: valid\n", path)
	}
}
