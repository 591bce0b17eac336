package logging

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// RotatingFile is an append-only log file that rolls over to numbered
// backups (<path>.1 is the newest) once it would reach maxBytes.
// Rollover is disabled when maxBytes or maxBackups is not positive.
type RotatingFile struct {
	mu         sync.Mutex
	path       string
	maxBytes   int64
	maxBackups int

	file   *os.File
	size   int64
	closed bool
}

// OpenRotatingFile opens path for appending, creating it if needed.
func OpenRotatingFile(path string, maxBytes int64, maxBackups int) (*RotatingFile, error) {
	r := &RotatingFile{
		path:       path,
		maxBytes:   maxBytes,
		maxBackups: maxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// BackupName returns the name of the n-th backup of path.
func BackupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

// Write appends p, rolling the file over first when p would not fit.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, os.ErrClosed
	}
	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.shouldRotate(len(p)) {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Sync commits the current file to stable storage.
func (r *RotatingFile) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	return r.file.Sync()
}

// Close closes the current file. Later writes fail with os.ErrClosed.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *RotatingFile) open() error {
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return err
	}

	r.file = file
	r.size = info.Size()
	return nil
}

// shouldRotate never rolls an empty file, so an oversized record still lands somewhere.
func (r *RotatingFile) shouldRotate(n int) bool {
	if r.maxBytes <= 0 || r.maxBackups <= 0 || r.size == 0 {
		return false
	}
	return r.size+int64(n) >= r.maxBytes
}

func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", r.path, err)
	}
	r.file = nil

	for i := r.maxBackups - 1; i > 0; i-- {
		src := BackupName(r.path, i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, BackupName(r.path, i+1)); err != nil {
			return fmt.Errorf("shift backup: %w", err)
		}
	}

	if err := os.Rename(r.path, BackupName(r.path, 1)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("roll over %s: %w", r.path, err)
	}

	return r.open()
}
