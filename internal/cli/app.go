package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pablasso/rex/internal/command"
	"github.com/pablasso/rex/internal/config"
	"github.com/pablasso/rex/internal/storage"
	"github.com/pablasso/rex/internal/tasklist"
)

// app is an open task file: the lock is held until Close.
type app struct {
	store   *storage.Store
	lock    *storage.Lock
	list    *tasklist.List
	handler *command.Handler
	logger  *log.Logger

	// skipped is the number of unreadable lines dropped during load and
	// backup is where the original file was copied to, if any.
	skipped int
	backup  string
}

// openApp locks the configured task file and loads it. Unreadable lines are
// logged and skipped after the file is backed up, unless strict loading is
// on, in which case nothing is loaded.
func openApp(cfg *config.Config, logger *log.Logger) (*app, error) {
	lock := storage.NewLock(cfg.DataFile)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	logger.Debug("lock acquired", "path", lock.Path())

	a, err := load(cfg, logger)
	if err != nil {
		lock.Release()
		return nil, err
	}
	a.lock = lock
	return a, nil
}

func load(cfg *config.Config, logger *log.Logger) (*app, error) {
	store := storage.NewStore(cfg.DataFile)
	list := tasklist.New()

	corrupt, err := store.Load(list)
	if err != nil {
		return nil, err
	}

	a := &app{store: store, list: list, logger: logger, skipped: len(corrupt)}
	if len(corrupt) > 0 {
		if cfg.StrictLoad {
			return nil, &storage.CorruptFileError{Path: store.Path(), Lines: corrupt}
		}
		for _, c := range corrupt {
			logger.Warn("skipping unreadable line", "line", c.Line, "content", c.Content, "err", c.Err)
		}
		backup, err := store.Backup()
		if err != nil {
			return nil, err
		}
		a.backup = backup
		logger.Warn("task file backed up before rewriting", "backup", backup)
	}
	logger.Debug("tasks loaded", "path", store.Path(), "count", list.Size())

	a.handler = command.NewHandler(list, store, logger)
	return a, nil
}

// notice describes what was skipped during load, or returns "".
func (a *app) notice() string {
	if a.skipped == 0 {
		return ""
	}
	return fmt.Sprintf("I skipped %d unreadable line(s) in %s. The original file was copied to %s.",
		a.skipped, a.store.Path(), a.backup)
}

// Close releases the task file lock.
func (a *app) Close() {
	if err := a.lock.Release(); err != nil {
		a.logger.Warn("failed to release lock", "path", a.lock.Path(), "err", err)
	}
}
