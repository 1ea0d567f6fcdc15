// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const (
	// ClassAttribute is the attribute backing ClassList.
	ClassAttribute = "class"

	// DarkClass is the root class that marks dark mode.
	DarkClass = "dark"
)

// Document owns a root element and delivers mutation records to observers.
type Document struct {
	root *Element

	// mu guards every element's attributes, observer registrations and
	// pending record queues.
	mu        sync.Mutex
	observers []*MutationObserver

	wake     chan struct{}
	flushReq chan chan struct{}

	logger zerolog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for callback failures. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Document) {
		d.logger = logger.With().Str("component", "dom").Logger()
	}
}

// NewDocument creates an empty document whose root is an <html> element.
func NewDocument(opts ...Option) *Document {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Document{
		wake:     make(chan struct{}, 1),
		flushReq: make(chan chan struct{}),
		logger:   zerolog.Nop(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.root = &Element{doc: d, tag: "html", attrs: make(map[string]string)}
	return d
}

// Root returns the document element.
func (d *Document) Root() *Element {
	return d.root
}

// IsDark reports whether the root class list contains DarkClass.
func (d *Document) IsDark() bool {
	return d.root.ClassList().Contains(DarkClass)
}

// Flush blocks until every record queued before the call has been
// delivered. It must not be called from inside an observer callback.
func (d *Document) Flush() {
	if d.ctx.Err() != nil {
		return
	}
	d.start()

	done := make(chan struct{})
	select {
	case d.flushReq <- done:
	case <-d.ctx.Done():
		return
	}
	select {
	case <-done:
	case <-d.ctx.Done():
	}
}

// Close stops delivery. Attributes stay readable and writable afterwards but
// no further callbacks run.
func (d *Document) Close() {
	d.cancel()
}

func (d *Document) start() {
	d.startOnce.Do(func() {
		go d.dispatch()
	})
}

func (d *Document) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Document) dispatch() {
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-d.wake:
			d.deliver()
		case done := <-d.flushReq:
			d.deliver()
			close(done)
		}
	}
}

type batch struct {
	observer *MutationObserver
	records  []MutationRecord
}

// deliver hands each observer its pending records, in registration order,
// and repeats until callbacks stop producing new records.
func (d *Document) deliver() {
	for {
		if d.ctx.Err() != nil {
			return
		}

		d.mu.Lock()
		var batches []batch
		for _, o := range d.observers {
			if len(o.pending) == 0 {
				continue
			}
			batches = append(batches, batch{observer: o, records: o.pending})
			o.pending = nil
		}
		d.mu.Unlock()

		if len(batches) == 0 {
			return
		}
		for _, b := range batches {
			b.observer.invoke(b.records)
		}
	}
}

// enqueueLocked records an attribute change for every interested observer.
// Callers must hold d.mu.
func (d *Document) enqueueLocked(target *Element, name, oldValue string) bool {
	queued := false
	for _, o := range d.observers {
		opts, ok := o.targets[target]
		if !ok || !opts.wants(name) {
			continue
		}
		rec := MutationRecord{
			Type:          RecordAttributes,
			Target:        target,
			AttributeName: name,
		}
		if opts.AttributeOldValue {
			rec.OldValue = oldValue
		}
		o.pending = append(o.pending, rec)
		queued = true
	}
	return queued
}

func (d *Document) addObserverLocked(o *MutationObserver) {
	for _, existing := range d.observers {
		if existing == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

func (d *Document) removeObserverLocked(o *MutationObserver) {
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}
