package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nasdeck/nasdeck/pkg/cli/internal/output"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/store"
)

// ErrorOutput is the JSON shape of a failed command.
type ErrorOutput struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Action string   `json:"action,omitempty"`
	View   string   `json:"view,omitempty"`
	IDs    []string `json:"ids,omitempty"`
}

// reportError prints err. Rejected actions are shown with their kind and
// the ids that caused the rejection.
func reportError(stdout, stderr io.Writer, err error, jsonOut bool) {
	out := ErrorOutput{Error: err.Error()}
	var me *organizer.MutationError
	if errors.As(err, &me) {
		out.Error = me.Err.Error()
		out.Kind = me.Kind()
		out.Action = me.Op
		out.View = me.View
		out.IDs = me.IDs
	}

	if jsonOut {
		_ = output.JSON(stdout, out)
		return
	}
	if me == nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, store.ErrReadOnly) {
			fmt.Fprintln(stderr, "  (the store was opened with --read-only)")
		}
		return
	}
	fmt.Fprintf(stderr, "Rejected: %s (%s)\n", out.Action, out.Kind)
	if out.View != "" {
		fmt.Fprintf(stderr, "  view: %s\n", out.View)
	}
	if len(out.IDs) > 0 {
		fmt.Fprintf(stderr, "  ids:  %s\n", strings.Join(out.IDs, ", "))
	}
	fmt.Fprintf(stderr, "  %s\n", out.Error)
}
