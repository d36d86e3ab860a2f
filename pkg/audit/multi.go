package audit

import (
	"errors"
	"sync"
)

// MultiWriter writes audit entries to multiple outputs simultaneously.
// It implements the Logger interface and fans out log entries to all
// configured writers.
type MultiWriter struct {
	writers []Logger
	mu      sync.RWMutex
}

// NewMultiWriter creates a new MultiWriter that writes to all provided
// loggers. Nil loggers are skipped.
func NewMultiWriter(writers ...Logger) *MultiWriter {
	m := &MultiWriter{writers: make([]Logger, 0, len(writers))}
	for _, w := range writers {
		m.Add(w)
	}
	return m
}

// Log writes an audit entry to all configured writers.
// All writers receive the entry even if some fail; the errors are joined.
func (m *MultiWriter) Log(entry Entry) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	for _, w := range m.writers {
		if err := w.Log(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes all underlying writers, even if some fail to close.
func (m *MultiWriter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Add adds a writer to the MultiWriter.
// This is safe to call concurrently with Log.
func (m *MultiWriter) Add(w Logger) {
	if w == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.writers = append(m.writers, w)
}

// Len returns the number of writers.
func (m *MultiWriter) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.writers)
}

// Ensure MultiWriter implements Logger.
var _ Logger = (*MultiWriter)(nil)
