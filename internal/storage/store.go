package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pablasso/rex/internal/task"
	"github.com/pablasso/rex/internal/tasklist"
)

const maxLineSize = 1024 * 1024

// ReadTasks decodes every non-blank line of r through f. Lines that fail to
// decode are returned as CorruptLineErrors and never stop the read; the final
// error is only set when r itself fails.
func ReadTasks(r io.Reader, f *task.Factory) ([]task.Task, []*CorruptLineError, error) {
	var (
		tasks   []task.Task
		corrupt []*CorruptLineError
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || line == "\r" {
			continue
		}

		t, err := Decode(f, lineNo, line)
		if err != nil {
			var lineErr *CorruptLineError
			if errors.As(err, &lineErr) {
				corrupt = append(corrupt, lineErr)
				continue
			}
			return nil, nil, err
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, corrupt, nil
}

// WriteTasks writes one encoded, newline-terminated line per task.
func WriteTasks(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(Encode(t) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Store is the task file on disk.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load appends the tasks in the data file to list, building them through the
// list's factory. A missing file loads nothing. Corrupt lines are returned for
// the caller to report or reject; the valid lines are loaded regardless.
func (s *Store) Load(list *tasklist.List) ([]*CorruptLineError, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer f.Close()

	tasks, corrupt, err := ReadTasks(f, list.Factory())
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		list.Add(t)
	}
	return corrupt, nil
}

// Save atomically replaces the data file with tasks.
// Uses a temp file + rename so a failed write never truncates the old file.
func (s *Store) Save(tasks []task.Task) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := WriteTasks(tmp, tasks); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Backup copies the current data file to <path>.bak and returns the backup
// path. It is used before overwriting a file that had corrupt lines.
func (s *Store) Backup() (string, error) {
	src, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to open task file: %w", err)
	}
	defer src.Close()

	backupPath := s.path + ".bak"
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup: %w", err)
	}
	return backupPath, nil
}
