// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"errors"
	"io"
	"sync"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
)

// ErrEmptyID is returned when registering a canvas without an id.
var ErrEmptyID = errors.New("canvas id is empty")

// Canvas is a drawable chart addressed by an element id.
type Canvas interface {
	ID() string
	SetTheme(theme chartstyle.Defaults)
	Render(w io.Writer) error
}

// Board is the set of live chart instances on a page.
type Board struct {
	mu       sync.RWMutex
	canvases map[string]Canvas
	order    []string

	theme  chartstyle.Defaults
	cancel func()
}

// NewBoard creates an empty board using the light theme until attached.
func NewBoard() *Board {
	return &Board{
		canvases: make(map[string]Canvas),
		theme:    chartstyle.LightDefaults(),
	}
}

// Register adds c, replacing any canvas with the same id. The canvas is
// themed with the board's current defaults before it becomes visible.
func (b *Board) Register(c Canvas) error {
	id := c.ID()
	if id == "" {
		return ErrEmptyID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c.SetTheme(b.theme)
	if _, exists := b.canvases[id]; !exists {
		b.order = append(b.order, id)
	}
	b.canvases[id] = c
	return nil
}

// Lookup returns the canvas registered under id.
func (b *Board) Lookup(id string) (Canvas, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.canvases[id]
	return c, ok
}

// Remove unregisters id and reports whether it was present.
func (b *Board) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.canvases[id]; !ok {
		return false
	}
	delete(b.canvases, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the registered ids in registration order.
func (b *Board) IDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Theme returns the defaults most recently applied to the board.
func (b *Board) Theme() chartstyle.Defaults {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.theme
}

// Attach subscribes the board to s. Any previous attachment is dropped.
func (b *Board) Attach(s *chartstyle.Styler) {
	b.Detach()
	cancel := s.Bind(b.applyTheme)

	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()
}

// Detach stops following the styler. Canvases keep their last theme.
func (b *Board) Detach() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (b *Board) applyTheme(theme chartstyle.Defaults) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.theme = theme
	for _, id := range b.order {
		b.canvases[id].SetTheme(theme)
	}
}
