package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger defines the interface for audit logging implementations.
type Logger interface {
	// Log records an audit entry. Implementations must be thread-safe.
	Log(entry Entry) error

	// Close releases any resources held by the logger.
	Close() error
}

// NoOpLogger is a Logger that discards all entries.
// Use this when audit logging is disabled.
type NoOpLogger struct{}

// Log discards the entry. Always returns nil.
func (l *NoOpLogger) Log(_ Entry) error {
	return nil
}

// Close is a no-op. Always returns nil.
func (l *NoOpLogger) Close() error {
	return nil
}

// Ensure NoOpLogger implements Logger.
var _ Logger = (*NoOpLogger)(nil)

// FileLogger writes audit entries as JSON lines to a file. The file is
// opened on the first Log, so a logger that never records anything leaves
// no trace on disk.
type FileLogger struct {
	path     string
	file     *os.File
	encoder  *json.Encoder
	sequence int64
	closed   bool
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to the specified path.
// The file and its directory are created when needed; an existing file is
// appended to and its last sequence number is continued.
func NewFileLogger(path string) (*FileLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("audit: log file path is required")
	}
	return &FileLogger{path: path}, nil
}

// Path returns the journal file.
func (l *FileLogger) Path() string { return l.path }

func (l *FileLogger) open() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("audit: failed to create log directory: %w", err)
	}
	last, err := lastSequence(l.path)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("audit: failed to open log file: %w", err)
	}
	l.file = file
	l.encoder = json.NewEncoder(file)
	l.sequence = last
	return nil
}

// Log writes an audit entry to the file as a JSON line.
// The entry's Sequence field is set automatically.
func (l *FileLogger) Log(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("audit: logger is closed")
	}
	if l.file == nil {
		if err := l.open(); err != nil {
			return err
		}
	}

	l.sequence++
	entry.Sequence = l.sequence

	if err := l.encoder.Encode(entry); err != nil {
		return fmt.Errorf("audit: failed to encode entry: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.file == nil {
		return nil
	}

	// Best effort: the close below reports the error that matters.
	_ = l.file.Sync()

	err := l.file.Close()
	l.file = nil
	return err
}

// Ensure FileLogger implements Logger.
var _ Logger = (*FileLogger)(nil)

// SlogLogger forwards entries to a structured logger at debug level.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger creates a SlogLogger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{log: l.With("component", "audit")}
}

// Log emits the entry as one debug record.
func (l *SlogLogger) Log(entry Entry) error {
	attrs := []slog.Attr{slog.String("id", entry.ID)}
	if entry.Action != nil {
		attrs = append(attrs, slog.String("op", entry.Action.Op))
	}
	if entry.Sync != nil {
		attrs = append(attrs, slog.Int("resources", entry.Sync.Resources), slog.Bool("saved", entry.Sync.Saved))
	}
	if entry.Error != nil {
		attrs = append(attrs, slog.String("kind", entry.Error.Kind), slog.String("error", entry.Error.Message))
	}
	l.log.LogAttrs(context.Background(), slog.LevelDebug, entry.Event, attrs...)
	return nil
}

// Close is a no-op.
func (l *SlogLogger) Close() error {
	return nil
}

var _ Logger = (*SlogLogger)(nil)

// ReadFile returns the last limit entries of the journal at path, oldest
// first. A limit of zero or less returns every entry. A missing file yields
// no entries.
func ReadFile(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("audit: failed to open log file: %w", err)
	}
	defer f.Close()
	return Read(f, limit)
}

// Read decodes JSON-lines entries from r. See ReadFile.
func Read(r io.Reader, limit int) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("audit: line %d: %w", line, err)
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("audit: reading log: %w", err)
	}
	return entries, nil
}

// lastSequence returns the highest sequence number in the journal at path.
func lastSequence(path string) (int64, error) {
	entries, err := ReadFile(path, 0)
	if err != nil {
		return 0, err
	}
	var last int64
	for _, e := range entries {
		last = max(last, e.Sequence)
	}
	return last, nil
}
