// Package eventlog provides an append-only, file-backed log of typed
// items. The runner streams every scenario result into one as it is
// produced, so when a mode's process dies mid-suite the log still shows
// which scenario it died on.
package eventlog

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// FileLog is a generic interface for appending items of type T to disk
// and reading them back in order.
type FileLog[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type fileLogImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// New creates a FileLog at the given path, truncating any previous log.
func New[T any](path string) (FileLog[T], error) {
	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create event log", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	slog.Debug("created event log", "path", path)

	return &fileLogImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements FileLog.
func (f *fileLogImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	// Flush through to the OS so the entry survives a process crash.
	if err := f.file.Sync(); err != nil {
		slog.Error("failed to sync event log", "path", f.path, "error", err)
		return fmt.Errorf("failed to sync event log: %w", err)
	}

	f.length++
	slog.Debug("appended item", "path", f.path, "index", f.length-1)

	return nil
}

// Len implements FileLog.
func (f *fileLogImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Path implements FileLog.
func (f *fileLogImpl[T]) Path() string {
	return f.path
}

// Range implements FileLog.
func (f *fileLogImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open event log for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open event log: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close event log", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < f.length; i++ {
		// gob skips zero-value fields on encode, so a reused value would
		// carry fields over from the previous entry.
		var item T

		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileLog.
func (f *fileLogImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file != nil {
		if err := f.file.Close(); err != nil {
			slog.Error("failed to close event log", "path", f.path, "error", err)
			return err
		}

		slog.Debug("closed event log", "path", f.path, "length", f.length)
	}

	return nil
}
