package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/glyphterm/glyph/internal/logging"
	"github.com/glyphterm/glyph/internal/safego"
)

// Watcher watches a config file for changes and invokes onChange with the
// freshly reloaded Config. It plays the external "config file loading
// and hot-reload notifications" collaborator (spec §1); it emits no
// TerminalEvent, so a reload reaches the rest of the program only through
// onChange.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// Watch starts watching path's parent directory (fsnotify does not reliably
// notice in-place atomic renames if the file itself, rather than its
// directory, is watched) and calls onChange whenever path is written or
// recreated. The returned Watcher must be closed by the caller.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw}
	safego.Go("config-watch", func() {
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logging.Warn("config reload failed: %v", err)
					continue
				}
				onChange(cfg)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logging.Warn("config watcher error: %v", err)
			}
		}
	})
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
