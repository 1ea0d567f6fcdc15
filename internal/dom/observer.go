// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"errors"
	"slices"
)

// RecordAttributes is the only record type produced.
const RecordAttributes = "attributes"

var (
	// ErrNothingObserved is returned when ObserveOptions selects no mutations.
	ErrNothingObserved = errors.New("observe options select no mutations")
	// ErrNilTarget is returned when Observe is given a nil element.
	ErrNilTarget = errors.New("observe target is nil")
	// ErrForeignDocument is returned when one observer is used across documents.
	ErrForeignDocument = errors.New("observer already bound to another document")
)

// MutationRecord describes one attribute change.
type MutationRecord struct {
	Type          string
	Target        *Element
	AttributeName string
	// OldValue is set only when AttributeOldValue was requested.
	OldValue string
}

// ObserveOptions selects which mutations an observer receives. Setting
// AttributeFilter or AttributeOldValue implies Attributes.
type ObserveOptions struct {
	Attributes        bool
	AttributeFilter   []string
	AttributeOldValue bool
}

func (o ObserveOptions) normalized() ObserveOptions {
	if len(o.AttributeFilter) > 0 || o.AttributeOldValue {
		o.Attributes = true
	}
	o.AttributeFilter = slices.Clone(o.AttributeFilter)
	return o
}

func (o ObserveOptions) wants(name string) bool {
	if !o.Attributes {
		return false
	}
	return len(o.AttributeFilter) == 0 || slices.Contains(o.AttributeFilter, name)
}

// MutationCallback receives a batch of records.
type MutationCallback func(records []MutationRecord, observer *MutationObserver)

// MutationObserver collects records for the elements it observes and hands
// them to its callback in batches.
type MutationObserver struct {
	callback MutationCallback

	// Guarded by doc.mu once bound.
	doc     *Document
	targets map[*Element]ObserveOptions
	pending []MutationRecord
}

// NewMutationObserver creates an observer. It receives nothing until Observe.
func NewMutationObserver(cb MutationCallback) *MutationObserver {
	return &MutationObserver{
		callback: cb,
		targets:  make(map[*Element]ObserveOptions),
	}
}

// Observe starts (or reconfigures) observation of target.
func (o *MutationObserver) Observe(target *Element, opts ObserveOptions) error {
	if target == nil {
		return ErrNilTarget
	}
	opts = opts.normalized()
	if !opts.Attributes {
		return ErrNothingObserved
	}

	d := target.doc
	d.mu.Lock()
	if o.doc != nil && o.doc != d {
		d.mu.Unlock()
		return ErrForeignDocument
	}
	o.doc = d
	o.targets[target] = opts
	d.addObserverLocked(o)
	d.mu.Unlock()

	d.start()
	return nil
}

// Disconnect stops observation and discards undelivered records.
func (o *MutationObserver) Disconnect() {
	d := o.doc
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeObserverLocked(o)
	clear(o.targets)
	o.pending = nil
}

// TakeRecords returns and clears the records not yet delivered.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	d := o.doc
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	recs := o.pending
	o.pending = nil
	return recs
}

// invoke runs the callback. A panicking callback does not stop the dispatcher.
func (o *MutationObserver) invoke(records []MutationRecord) {
	if o.callback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && o.doc != nil {
			o.doc.logger.Warn().
				Interface("panic", r).
				Int("records", len(records)).
				Msg("mutation observer callback panicked")
		}
	}()
	o.callback(records, o)
}
