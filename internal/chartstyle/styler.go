// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jeranaias/cipherchart/internal/dom"
)

// ThemeSource reports whether the dark-mode marker is currently present.
// *dom.Document satisfies it through its root class list.
type ThemeSource interface {
	IsDark() bool
}

// ThemeSourceFunc adapts a plain function to ThemeSource.
type ThemeSourceFunc func() bool

// IsDark calls f.
func (f ThemeSourceFunc) IsDark() bool { return f() }

type subscription struct {
	id uint64
	fn func(Defaults)
}

// Styler keeps the chart theme context in sync with a ThemeSource and
// publishes each recompute to its subscribers.
type Styler struct {
	source ThemeSource
	logger zerolog.Logger

	// pubMu serializes recompute+publish so subscribers observe updates in order.
	pubMu sync.Mutex

	mu      sync.Mutex
	current Defaults
	subs    []subscription
	nextID  uint64

	recomputes atomic.Uint64
}

// NewStyler creates a styler bound to source and computes the initial
// defaults. A nil source always reads as light.
func NewStyler(source ThemeSource, logger zerolog.Logger) *Styler {
	s := &Styler{
		source: source,
		logger: logger.With().Str("component", "chartstyle").Logger(),
	}
	s.UpdateChartColors()
	s.logger.Info().Str("mode", s.Defaults().Mode()).Msg("chart styler loaded")
	return s
}

// IsDarkMode reads the theme flag from the source. It has no side effects.
func (s *Styler) IsDarkMode() bool {
	if s.source == nil {
		return false
	}
	return s.source.IsDark()
}

// UpdateChartColors recomputes the defaults from the current theme flag and
// publishes them. Subscribers are notified on every call, changed or not.
//
// Subscribers must not call UpdateChartColors themselves.
func (s *Styler) UpdateChartColors() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	d := DefaultsFor(s.IsDarkMode())

	s.mu.Lock()
	s.current = d
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	n := s.recomputes.Add(1)
	s.logger.Debug().
		Uint64("recompute", n).
		Str("mode", d.Mode()).
		Str("text_color", d.TextColor).
		Str("border_color", d.BorderColor).
		Msg("chart colors updated")

	for _, sub := range subs {
		sub.fn(d)
	}
}

// Defaults returns the current theme context.
func (s *Styler) Defaults() Defaults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Recomputes returns how many times UpdateChartColors has run.
func (s *Styler) Recomputes() uint64 {
	return s.recomputes.Load()
}

// Subscribe registers fn for every future publish and returns a function
// that removes it. Subscribers run in registration order.
func (s *Styler) Subscribe(fn func(Defaults)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Bind is Subscribe followed by an immediate call of fn with the current
// defaults. No publish can land between the two.
func (s *Styler) Bind(fn func(Defaults)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	cancel = s.Subscribe(fn)
	fn(s.Defaults())
	return cancel
}

// Observe watches class-attribute changes on the document root and
// recomputes the defaults for every delivered record. Any class change
// triggers a recompute, not only toggles of the dark marker.
//
// The returned observer is live until Disconnect.
func (s *Styler) Observe(doc *dom.Document) (*dom.MutationObserver, error) {
	obs := dom.NewMutationObserver(func(records []dom.MutationRecord, _ *dom.MutationObserver) {
		for _, rec := range records {
			if rec.AttributeName == dom.ClassAttribute {
				s.UpdateChartColors()
			}
		}
	})

	err := obs.Observe(doc.Root(), dom.ObserveOptions{
		Attributes:      true,
		AttributeFilter: []string{dom.ClassAttribute},
	})
	if err != nil {
		return nil, err
	}
	return obs, nil
}
