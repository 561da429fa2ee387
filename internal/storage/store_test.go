package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pablasso/rex/internal/task"
	"github.com/pablasso/rex/internal/tasklist"
)

func TestReadTasks_IsolatesCorruptLines(t *testing.T) {
	input := strings.Join([]string{
		"T | 0 | read book",
		"D | 1 | submit report | 2024-12-01",
		"this line is garbage",
		"E | 0 | team meeting | 2024-12-01 | 2024-12-03",
	}, "\n")

	f, c := newFactory()
	tasks, corrupt, err := ReadTasks(strings.NewReader(input), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if len(corrupt) != 1 {
		t.Fatalf("expected 1 corrupt line, got %d", len(corrupt))
	}
	if corrupt[0].Line != 3 || corrupt[0].Content != "this line is garbage" {
		t.Errorf("unexpected corrupt line report: %+v", corrupt[0])
	}
	if c.Value() != 3 {
		t.Errorf("counter: got %d, want 3", c.Value())
	}
	if tasks[2].Description() != "team meeting" {
		t.Errorf("tasks after the corrupt line should still load, got %q", tasks[2].Description())
	}
}

func TestReadTasks_SkipsBlankLinesAndKeepsNumbering(t *testing.T) {
	input := "T | 0 | a\n\r\n\nT | 0 | b\nbad\n"

	f, _ := newFactory()
	tasks, corrupt, err := ReadTasks(strings.NewReader(input), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
	if len(corrupt) != 1 || corrupt[0].Line != 5 {
		t.Errorf("expected corrupt line 5, got %+v", corrupt)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReadTasks_ReaderError(t *testing.T) {
	f, _ := newFactory()
	_, _, err := ReadTasks(failingReader{}, f)
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("expected reader error, got %v", err)
	}
}

func TestWriteTasks(t *testing.T) {
	f, _ := newFactory()
	d, _ := f.NewDeadline("submit report", "2024-12-01")
	done := f.NewTodo("read book")
	done.MarkDone()

	var b strings.Builder
	if err := WriteTasks(&b, []task.Task{done, d}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "T | 1 | read book\nD | 0 | submit report | 2024-12-01\n"
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", "tasks.txt"))
	list := tasklist.New()

	corrupt, err := s.Load(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corrupt) != 0 || list.Size() != 0 {
		t.Errorf("expected empty load, got %d tasks, %d corrupt", list.Size(), len(corrupt))
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rex", "tasks.txt")
	s := NewStore(path)

	src := tasklist.New()
	f := src.Factory()
	src.Add(f.NewTodo("read book"))
	meeting, _ := f.NewEvent("team meeting", "2024-12-01", "2024-12-03")
	src.Add(meeting)
	src.MarkDone(2)

	if err := s.Save(src.Tasks()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	want := "T | 0 | read book\nE | 1 | team meeting | 2024-12-01 | 2024-12-03\n"
	if string(data) != want {
		t.Errorf("saved content:\n got %q\nwant %q", data, want)
	}

	dst := tasklist.New()
	corrupt, err := s.Load(dst)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(corrupt) != 0 {
		t.Errorf("unexpected corrupt lines: %v", corrupt)
	}
	if dst.Size() != 2 || dst.Counter() != 2 {
		t.Errorf("expected 2 tasks and counter 2, got %d and %d", dst.Size(), dst.Counter())
	}
	second, _ := dst.Get(2)
	if second.String() != "[E][X] team meeting (from: Dec 1 2024 to: Dec 3 2024)" {
		t.Errorf("unexpected task: %q", second.String())
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "tasks.txt"))

	if err := s.Save(nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.txt" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only tasks.txt, got %v", names)
	}
}

func TestStore_LoadWithCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "T | 0 | a\nD | 0 | b | 2024-12-01\nD | 0 | c | someday\nT | 1 | d\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	list := tasklist.New()
	corrupt, err := NewStore(path).Load(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Size() != 3 {
		t.Errorf("expected 3 tasks, got %d", list.Size())
	}
	if len(corrupt) != 1 || corrupt[0].Line != 3 {
		t.Errorf("expected corrupt line 3, got %v", corrupt)
	}
}

func TestStore_Backup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "T | 0 | a\nbroken\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	backupPath, err := NewStore(path).Backup()
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if backupPath != path+".bak" {
		t.Errorf("backup path: got %q", backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != content {
		t.Errorf("backup content: got %q, want %q", data, content)
	}
}
