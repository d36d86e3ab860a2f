package audit

import (
	"encoding/json"
	"time"

	"github.com/nasdeck/nasdeck/internal/id"
)

// Event constants define the types of events that can be logged.
const (
	EventActionApplied   = "action.applied"
	EventActionRejected  = "action.rejected"
	EventActionUnchanged = "action.unchanged"
	EventSyncCompleted   = "sync.completed"
	EventError           = "error"
)

// DefaultFile is the journal's file name inside the data directory.
const DefaultFile = "audit.jsonl"

// Entry is a single journal record.
type Entry struct {
	// Sequence is a monotonically increasing sequence number for ordering entries.
	Sequence int64 `json:"sequence"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Event is the type of event being logged (e.g., "action.applied").
	Event string `json:"event"`

	Action *ActionInfo `json:"action,omitempty"`
	Sync   *SyncInfo   `json:"sync,omitempty"`
	Error  *ErrorInfo  `json:"error,omitempty"`
}

// ActionInfo describes the action an entry is about.
type ActionInfo struct {
	// Op is the action's short name, e.g. "create folder".
	Op string `json:"op"`

	// Params is the action as it was applied, including generated ids.
	Params json.RawMessage `json:"params,omitempty"`
}

// SyncInfo summarizes a reconciliation with the resource provider.
type SyncInfo struct {
	Resources int      `json:"resources"`
	Added     []string `json:"added,omitempty"`
	Orphans   []string `json:"orphans,omitempty"`
	Saved     bool     `json:"saved"`
}

// ErrorInfo captures why an action failed.
type ErrorInfo struct {
	// Kind is the mutation error kind, e.g. "CycleViolation". Empty for
	// failures that are not rejections.
	Kind    string   `json:"kind,omitempty"`
	Message string   `json:"message"`
	View    string   `json:"view,omitempty"`
	IDs     []string `json:"ids,omitempty"`
}

// NewEntry creates a new Entry with the current timestamp and a fresh id.
func NewEntry(event string) *Entry {
	return &Entry{
		Timestamp: time.Now().UTC(),
		ID:        id.UUID(),
		Event:     event,
	}
}

// WithAction adds action information. params is marshaled to JSON; a value
// that cannot be marshaled is left out.
func (e *Entry) WithAction(op string, params any) *Entry {
	info := &ActionInfo{Op: op}
	if params != nil {
		if raw, err := json.Marshal(params); err == nil {
			info.Params = raw
		}
	}
	e.Action = info
	return e
}

// WithSync adds sync information.
func (e *Entry) WithSync(info *SyncInfo) *Entry {
	e.Sync = info
	return e
}

// WithError adds error information.
func (e *Entry) WithError(info *ErrorInfo) *Entry {
	e.Error = info
	return e
}
