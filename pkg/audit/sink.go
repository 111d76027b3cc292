package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Sink persists audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Write(event *Event) error
	Close() error
}

// writerSink streams events as JSON lines to an io.Writer
type writerSink struct {
	mu      sync.Mutex
	encoder *json.Encoder
	closer  io.Closer
}

// NewWriterSink creates a sink that writes JSON lines to w
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{encoder: json.NewEncoder(w)}
}

func (s *writerSink) Write(event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encoder.Encode(event)
}

func (s *writerSink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// NewFileSink appends JSON lines to the given file, creating parent
// directories as needed.
func NewFileSink(path string) (Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	return &writerSink{encoder: json.NewEncoder(file), closer: file}, nil
}

// multiSink fans events out to several sinks
type multiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that writes each event to every given sink.
// The first error is returned but all sinks are attempted.
func NewMultiSink(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (s *multiSink) Write(event *Event) error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Write(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *multiSink) Close() error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// nopSink discards every event
type nopSink struct{}

// NewNopSink creates a sink that discards all events, for disabled audit
// and for tests.
func NewNopSink() Sink { return nopSink{} }

func (nopSink) Write(event *Event) error { return nil }
func (nopSink) Close() error             { return nil }
