// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"slices"
	"strings"
)

// Element is a node with string attributes.
type Element struct {
	doc   *Document
	tag   string
	attrs map[string]string
}

// TagName returns the element's tag.
func (e *Element) TagName() string {
	return e.tag
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttribute sets name to value. Observers are notified even when the
// value does not change.
func (e *Element) SetAttribute(name, value string) {
	e.doc.mu.Lock()
	queued := e.setLocked(name, value)
	e.doc.mu.Unlock()
	if queued {
		e.doc.signal()
	}
}

// RemoveAttribute deletes name. Removing an absent attribute is a no-op and
// produces no record.
func (e *Element) RemoveAttribute(name string) {
	e.doc.mu.Lock()
	old, ok := e.attrs[name]
	if !ok {
		e.doc.mu.Unlock()
		return
	}
	delete(e.attrs, name)
	queued := e.doc.enqueueLocked(e, name, old)
	e.doc.mu.Unlock()
	if queued {
		e.doc.signal()
	}
}

// ClassList returns a live view of the element's class attribute.
func (e *Element) ClassList() *ClassList {
	return &ClassList{el: e}
}

func (e *Element) setLocked(name, value string) bool {
	old := e.attrs[name]
	e.attrs[name] = value
	return e.doc.enqueueLocked(e, name, old)
}

// =============================================================================
// CLASS LIST
// =============================================================================

// ClassList is an ordered, duplicate-free set of class tokens stored in the
// element's class attribute. Every mutating call rewrites the attribute, so
// adding a token that is already present still notifies observers.
type ClassList struct {
	el *Element
}

// Contains reports whether token is present.
func (c *ClassList) Contains(token string) bool {
	v, _ := c.el.Attribute(ClassAttribute)
	return slices.Contains(parseTokens(v), token)
}

// Values returns the tokens in order.
func (c *ClassList) Values() []string {
	v, _ := c.el.Attribute(ClassAttribute)
	return parseTokens(v)
}

// String returns the serialized class attribute.
func (c *ClassList) String() string {
	return strings.Join(c.Values(), " ")
}

// Add appends tokens that are not already present.
func (c *ClassList) Add(tokens ...string) {
	c.update(func(set []string) []string {
		for _, t := range tokens {
			if t != "" && !slices.Contains(set, t) {
				set = append(set, t)
			}
		}
		return set
	})
}

// Remove deletes tokens.
func (c *ClassList) Remove(tokens ...string) {
	c.update(func(set []string) []string {
		return slices.DeleteFunc(set, func(s string) bool {
			return slices.Contains(tokens, s)
		})
	})
}

// Toggle removes token if present, otherwise adds it. It returns whether the
// token is present afterwards.
func (c *ClassList) Toggle(token string) bool {
	present := false
	c.update(func(set []string) []string {
		if i := slices.Index(set, token); i >= 0 {
			return slices.Delete(set, i, i+1)
		}
		present = true
		return append(set, token)
	})
	return present
}

// Replace sets the whole token list in one attribute write.
func (c *ClassList) Replace(tokens []string) {
	c.update(func([]string) []string {
		var set []string
		for _, t := range tokens {
			if t != "" && !slices.Contains(set, t) {
				set = append(set, t)
			}
		}
		return set
	})
}

// update runs a read-modify-write of the class attribute under the document
// lock. An absent attribute with an empty result is left absent.
func (c *ClassList) update(fn func([]string) []string) {
	e := c.el
	e.doc.mu.Lock()
	current, present := e.attrs[ClassAttribute]
	next := fn(parseTokens(current))
	if !present && len(next) == 0 {
		e.doc.mu.Unlock()
		return
	}
	queued := e.setLocked(ClassAttribute, strings.Join(next, " "))
	e.doc.mu.Unlock()
	if queued {
		e.doc.signal()
	}
}

func parseTokens(v string) []string {
	var out []string
	for _, t := range strings.Fields(v) {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
