package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
)

// WriterSecurityEventsLog writes one CEF line per event to an io.Writer.
type WriterSecurityEventsLog struct {
	mu             sync.Mutex
	w              io.Writer
	closer         io.Closer
	productVersion string
}

// NewSecurityEventsLog writes events to w.
func NewSecurityEventsLog(w io.Writer, productVersion string) *WriterSecurityEventsLog {
	return &WriterSecurityEventsLog{w: w, productVersion: productVersion}
}

// OpenSecurityEventsLog appends events to the file at path, or to stdout when path is empty.
func OpenSecurityEventsLog(path, productVersion string) (*WriterSecurityEventsLog, error) {
	if path == "" {
		return NewSecurityEventsLog(os.Stdout, productVersion), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open security events log: %w", err)
	}

	l := NewSecurityEventsLog(f, productVersion)
	l.closer = f
	return l, nil
}

// Log writes event as a single line.
func (l *WriterSecurityEventsLog) Log(event *auditDomain.SecurityEventAuditRecord) error {
	line := event.CEF(l.productVersion) + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := io.WriteString(l.w, line); err != nil {
		return fmt.Errorf("failed to write security event: %w", err)
	}
	return nil
}

// Close closes the underlying file, if one was opened.
func (l *WriterSecurityEventsLog) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// NoOpSecurityEventsLog discards every event.
type NoOpSecurityEventsLog struct{}

// NewNoOpSecurityEventsLog creates a log that discards events.
func NewNoOpSecurityEventsLog() SecurityEventsLog {
	return &NoOpSecurityEventsLog{}
}

// Log does nothing.
func (n *NoOpSecurityEventsLog) Log(event *auditDomain.SecurityEventAuditRecord) error {
	return nil
}
