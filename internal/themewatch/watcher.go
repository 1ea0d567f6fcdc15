// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package themewatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/jeranaias/cipherchart/internal/dom"
)

// =============================================================================
// PREFERENCES WATCHER
// =============================================================================

// Watcher keeps a document's root classes in sync with a preferences file.
// Reloads are immediate; there is no debounce.
type Watcher struct {
	path     string
	doc      *dom.Document
	detector Detector
	logger   zerolog.Logger

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}

	mu      sync.Mutex
	current Preferences
	reloads int
	started bool
	running bool
}

// NewWatcher creates a watcher for the preferences file at path.
func NewWatcher(path string, doc *dom.Document, detector Detector, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     abs,
		doc:      doc,
		detector: detector,
		logger:   logger.With().Str("component", "themewatch").Str("path", abs).Logger(),
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		current:  DefaultPreferences(),
	}, nil
}

// Watch applies the file once and starts following it. A missing or
// invalid file leaves the default preferences in place.
func (w *Watcher) Watch() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return errors.New("watcher already started")
	}
	w.started = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.cancel()
		if cerr := w.watcher.Close(); cerr != nil {
			w.logger.Debug().Err(cerr).Msg("failed to close file watcher")
		}
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	if err := w.Reload(); err != nil {
		w.logger.Warn().Err(err).Msg("using default theme preferences")
		w.apply(w.Current())
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()
	go w.processEvents()
	return nil
}

// Run watches until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Watch(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-w.ctx.Done():
	}
	return w.Close()
}

// Reload reads the file and applies it. On error the last good preferences
// stay in effect.
func (w *Watcher) Reload() error {
	p, err := LoadPreferences(w.path)
	if err != nil {
		return err
	}
	w.apply(p)
	return nil
}

// Current returns the preferences in effect.
func (w *Watcher) Current() Preferences {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Reloads counts successful applications, the initial one included.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()

	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		<-w.done
	}
	return err
}

func (w *Watcher) apply(p Preferences) {
	classes := ClassesFor(p, w.detector)

	w.mu.Lock()
	w.current = p
	w.reloads++
	w.mu.Unlock()

	Apply(w.doc, classes)
	w.logger.Debug().Str("theme", p.Theme).Strs("classes", classes).Msg("theme preferences applied")
}

func (w *Watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := w.Reload(); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					w.logger.Debug().Msg("preferences file moved away")
					continue
				}
				w.logger.Warn().Err(err).Msg("keeping previous theme preferences")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}
