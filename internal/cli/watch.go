package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/script"
)

// reloadDelay batches the burst of events an editor save produces.
const reloadDelay = 150 * time.Millisecond

// watchScript calls onChange with the reloaded script whenever the file at
// path changes, until ctx is done. Invalid edits are logged and skipped.
//
// The parent directory is watched because editors often replace the file
// by renaming a temporary one over it.
func watchScript(ctx context.Context, path string, logger *log.Logger, onChange func(*script.Script)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
	}
	logger.Debug("watching script", "path", abs)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			s, err := script.Load(abs)
			if err != nil {
				logger.Warn("script not reloaded", "path", path, "err", errors.UserMessage(err))
				continue
			}
			logger.Debug("script reloaded", "path", path)
			onChange(s)
		}
	}
}
