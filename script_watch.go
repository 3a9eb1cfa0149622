// script_watch.go - Restart a performance script whenever its file changes

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BreathEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const SCRIPT_RELOAD_DEBOUNCE = 100 * time.Millisecond

// ScriptWatcher watches the script's directory, since editors often replace
// a file rather than write it in place, and restarts the host after a short
// quiet period.
type ScriptWatcher struct {
	host    *ScriptHost
	path    string
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
}

// WatchScript starts the script and keeps it in sync with the file.
func WatchScript(host *ScriptHost, path string) (*ScriptWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	sw := &ScriptWatcher{
		host:    host,
		path:    abs,
		watcher: w,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	host.Start(abs)
	go sw.loop()
	return sw, nil
}

func (sw *ScriptWatcher) loop() {
	defer close(sw.done)
	reload := time.NewTimer(SCRIPT_RELOAD_DEBOUNCE)
	reload.Stop()
	defer reload.Stop()

	for {
		select {
		case <-sw.stopCh:
			return
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != sw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				reload.Reset(SCRIPT_RELOAD_DEBOUNCE)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "script_watch: %v\n", err)
		case <-reload.C:
			fmt.Fprintf(os.Stderr, "script_watch: reloading %s\n", sw.path)
			sw.host.Start(sw.path)
		}
	}
}

// Close stops watching and stops the running script.
func (sw *ScriptWatcher) Close() error {
	var err error
	sw.stopped.Do(func() {
		close(sw.stopCh)
		<-sw.done
		err = sw.watcher.Close()
		sw.host.Stop()
	})
	return err
}
