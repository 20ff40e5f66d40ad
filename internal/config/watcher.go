package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config file for changes and sends the reloaded
// config on the returned channel. Reload errors are swallowed; the
// previous config stays in effect.
func Watch(path string) (<-chan *Config, func(), error) {
	if path == "" {
		path = ConfigPath()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// Watch the directory: editors replace the file on save, which
	// would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	updates := make(chan *Config, 1)

	go func() {
		defer close(updates)

		var debounceTimer *time.Timer
		debounceDelay := 100 * time.Millisecond

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				// Debounce rapid events
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					cfg, err := LoadFrom(path)
					if err != nil {
						return
					}
					select {
					case updates <- cfg:
					default:
						// Channel full, drop; next change re-sends
					}
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return updates, func() { watcher.Close() }, nil
}
