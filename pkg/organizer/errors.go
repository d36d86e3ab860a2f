package organizer

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the mutators. Test with errors.Is.
var (
	ErrReservedName = errors.New("reserved root id")
	ErrSelfParent   = errors.New("folder cannot be its own parent")
	ErrNotFound     = errors.New("not found")
	ErrNotAFolder   = errors.New("not a folder")
	ErrCycle        = errors.New("folder cannot move into its own descendant")
	ErrEmptyName    = errors.New("folder name is required")
	ErrInvalidID    = errors.New("invalid id")
	ErrDuplicateID  = errors.New("id already in use")
	ErrInvariant    = errors.New("invariant violated")
)

// MutationError describes a rejected mutation: the operation, the view it
// targeted and the offending ids.
type MutationError struct {
	Op   string
	View string
	IDs  []string
	Err  error
}

func (e *MutationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.View != "" {
		fmt.Fprintf(&b, " (view %s)", e.View)
	}
	if len(e.IDs) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.IDs, ", "))
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *MutationError) Unwrap() error { return e.Err }

// Kind returns a stable short name for the wrapped error kind, suitable for
// API responses and CLI output.
func (e *MutationError) Kind() string {
	return ErrorKind(e.Err)
}

// ErrorKind maps an error to its kind name. Unknown errors map to "Internal".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrReservedName):
		return "ReservedNameViolation"
	case errors.Is(err, ErrSelfParent):
		return "SelfParentViolation"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrNotAFolder):
		return "NotAFolder"
	case errors.Is(err, ErrCycle):
		return "CycleViolation"
	case errors.Is(err, ErrEmptyName):
		return "EmptyName"
	case errors.Is(err, ErrInvalidID):
		return "InvalidID"
	case errors.Is(err, ErrDuplicateID):
		return "DuplicateID"
	case errors.Is(err, ErrInvariant):
		return "InvariantViolation"
	default:
		return "Internal"
	}
}

func mutationErr(op, view string, err error, ids ...string) error {
	return &MutationError{Op: op, View: view, IDs: ids, Err: err}
}
