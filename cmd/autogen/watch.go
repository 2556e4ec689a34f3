package main

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("autogen.watch")

// watchAndRegenerate blocks, rerunning regen whenever the catalog file is
// written, created or renamed. Editors and package managers usually replace
// the file rather than write it in place, so the parent directory is
// watched and events are filtered by name. A failed regeneration pass is
// logged and the watcher keeps running.
func watchAndRegenerate(path string, regen func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	watchLog.Noticef("watching %s", abs)

	// Debounce bursts of events from a single save.
	const settle = 200 * time.Millisecond
	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watch error: %s", err.Error())
		case <-timer.C:
			if err := regen(); err != nil {
				watchLog.Errorf("regeneration failed: %s", err.Error())
			} else {
				watchLog.Noticef("regenerated from %s", path)
			}
		}
	}
}
