package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockSuffix = ".lock"

// InUseError is returned when another live rex process holds the data file.
type InUseError struct {
	Path string
	PID  int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s is in use by another rex session (PID %d)", e.Path, e.PID)
}

// Lock is a PID lock file kept next to a data file so that two rex processes
// never load and save the same list.
type Lock struct {
	dataPath string
	path     string
}

// NewLock returns the lock guarding dataPath.
func NewLock(dataPath string) *Lock {
	return &Lock{
		dataPath: dataPath,
		path:     dataPath + lockSuffix,
	}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock. A lock left behind by a dead process, or one whose
// content is not a PID, is removed and taken over once.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	err := l.create()
	if err == nil || !errors.Is(err, os.ErrExist) {
		return err
	}

	pid, ok, err := l.holder()
	if err != nil {
		return err
	}
	if ok && processExists(pid) {
		return &InUseError{Path: l.dataPath, PID: pid}
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lock file: %w", err)
	}

	if err := l.create(); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("lock acquired by another process during retry")
		}
		return err
	}
	return nil
}

// Release removes the lock file. Releasing a lock that is not held is not an
// error.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// create writes our PID into a new lock file. It fails with an error wrapping
// os.ErrExist when the file is already present.
func (l *Lock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return err
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	closeErr := f.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// holder reads the PID recorded in the lock file. ok is false when the
// content is not a PID.
func (l *Lock) holder() (pid int, ok bool, err error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read existing lock file: %w", err)
	}
	pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if parseErr != nil {
		return 0, false, nil
	}
	return pid, true, nil
}

// processExists checks if a process with the given PID is running.
// Signal 0 checks for existence without delivering anything.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
