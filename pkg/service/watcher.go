// Reelparse
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Reelparse.
//
// Reelparse is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reelparse is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reelparse.  If not, see <http://www.gnu.org/licenses/>.

package service

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const watchDebounce = 250 * time.Millisecond

// fileWatcher calls onChange once a burst of writes to one file settles.
// The parent directory is watched so editors that replace the file on
// save are still seen.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	stop     chan struct{}
	path     string
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func watchFile(path string, onChange func()) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	fw := &fileWatcher{
		watcher:  watcher,
		onChange: onChange,
		stop:     make(chan struct{}),
		path:     filepath.Clean(path),
	}
	fw.wg.Add(1)
	go fw.run()

	log.Debug().Str("path", path).Msg("watching file for changes")
	return fw, nil
}

func (fw *fileWatcher) run() {
	defer fw.wg.Done()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-fw.stop:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(watchDebounce)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")
		case <-debounce.C:
			fw.onChange()
		}
	}
}

func (fw *fileWatcher) Close() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stop)
		err = fw.watcher.Close()
		fw.wg.Wait()
	})
	if err != nil {
		return fmt.Errorf("failed to close file watcher: %w", err)
	}
	return nil
}
