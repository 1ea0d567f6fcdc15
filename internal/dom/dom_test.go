// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects delivered batches for assertions.
type recorder struct {
	mu      sync.Mutex
	batches [][]MutationRecord
}

func (r *recorder) callback(recs []MutationRecord, _ *MutationObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, recs)
}

func (r *recorder) records() []MutationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []MutationRecord
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

// =============================================================================
// CLASS LIST TESTS
// =============================================================================

func TestClassList_AddRemoveToggle(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()
	cl := doc.Root().ClassList()

	cl.Add("dark", "compact", "dark")
	assert.Equal(t, []string{"dark", "compact"}, cl.Values())
	assert.True(t, cl.Contains("dark"))
	assert.True(t, doc.IsDark())

	cl.Remove("dark")
	assert.Equal(t, "compact", cl.String())
	assert.False(t, doc.IsDark())

	assert.True(t, cl.Toggle("dark"))
	assert.False(t, cl.Toggle("dark"))
	assert.Equal(t, []string{"compact"}, cl.Values())
}

func TestClassList_ParsesExistingAttribute(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	doc.Root().SetAttribute(ClassAttribute, "  theme-x   dark  dark ")
	assert.Equal(t, []string{"theme-x", "dark"}, doc.Root().ClassList().Values())
	assert.True(t, doc.IsDark())
}

func TestClassList_ReplaceDedupes(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	doc.Root().ClassList().Replace([]string{"dark", "", "dark", "wide"})
	v, ok := doc.Root().Attribute(ClassAttribute)
	require.True(t, ok)
	assert.Equal(t, "dark wide", v)
}

func TestClassList_RemoveOnAbsentAttributeLeavesItAbsent(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	doc.Root().ClassList().Remove("dark")
	_, ok := doc.Root().Attribute(ClassAttribute)
	assert.False(t, ok)
}

// =============================================================================
// OBSERVER TESTS
// =============================================================================

func TestObserver_DeliversFilteredAttributes(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	rec := &recorder{}
	obs := NewMutationObserver(rec.callback)
	require.NoError(t, obs.Observe(doc.Root(), ObserveOptions{
		AttributeFilter:   []string{ClassAttribute},
		AttributeOldValue: true,
	}))

	doc.Root().SetAttribute("lang", "en")
	doc.Root().ClassList().Add("dark")
	doc.Root().ClassList().Remove("dark")
	doc.Flush()

	got := rec.records()
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, RecordAttributes, r.Type)
		assert.Equal(t, ClassAttribute, r.AttributeName)
		assert.Same(t, doc.Root(), r.Target)
	}
	assert.Equal(t, "", got[0].OldValue)
	assert.Equal(t, "dark", got[1].OldValue)
}

func TestObserver_SameValueWriteStillNotifies(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	rec := &recorder{}
	obs := NewMutationObserver(rec.callback)
	require.NoError(t, obs.Observe(doc.Root(), ObserveOptions{Attributes: true}))

	doc.Root().SetAttribute(ClassAttribute, "dark")
	doc.Root().SetAttribute(ClassAttribute, "dark")
	doc.Root().ClassList().Add("dark")
	doc.Flush()

	assert.Len(t, rec.records(), 3)
}

func TestObserver_NoOptionsIsError(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	obs := NewMutationObserver(nil)
	assert.ErrorIs(t, obs.Observe(doc.Root(), ObserveOptions{}), ErrNothingObserved)
	assert.ErrorIs(t, obs.Observe(nil, ObserveOptions{Attributes: true}), ErrNilTarget)
}

func TestObserver_ForeignDocument(t *testing.T) {
	a, b := NewDocument(), NewDocument()
	defer a.Close()
	defer b.Close()

	obs := NewMutationObserver(nil)
	require.NoError(t, obs.Observe(a.Root(), ObserveOptions{Attributes: true}))
	assert.ErrorIs(t, obs.Observe(b.Root(), ObserveOptions{Attributes: true}), ErrForeignDocument)
}

func TestObserver_DisconnectStopsDelivery(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	rec := &recorder{}
	obs := NewMutationObserver(rec.callback)
	require.NoError(t, obs.Observe(doc.Root(), ObserveOptions{Attributes: true}))

	obs.Disconnect()
	doc.Root().ClassList().Add("dark")
	doc.Flush()

	assert.Empty(t, rec.records())
}

func TestObserver_TakeRecords(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	obs := NewMutationObserver(func([]MutationRecord, *MutationObserver) {
		t.Error("callback should not run after TakeRecords drained the queue")
	})
	require.NoError(t, obs.Observe(doc.Root(), ObserveOptions{Attributes: true}))

	// Queue a record without waking the dispatcher.
	doc.mu.Lock()
	doc.Root().setLocked(ClassAttribute, "dark")
	doc.mu.Unlock()

	recs := obs.TakeRecords()
	require.Len(t, recs, 1)
	assert.Equal(t, ClassAttribute, recs[0].AttributeName)
	doc.Flush()
}

func TestObserver_CallbacksDoNotInterleave(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	var mu sync.Mutex
	active := 0
	maxActive := 0
	cb := func([]MutationRecord, *MutationObserver) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()

		time.Sleep(100 * time.Microsecond)

		mu.Lock()
		active--
		mu.Unlock()
	}

	for i := 0; i < 4; i++ {
		obs := NewMutationObserver(cb)
		require.NoError(t, obs.Observe(doc.Root(), ObserveOptions{Attributes: true}))
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc.Root().ClassList().Toggle("dark")
		}()
	}
	wg.Wait()
	doc.Flush()

	assert.Equal(t, 1, maxActive)
}

func TestObserver_PanicDoesNotStopDispatcher(t *testing.T) {
	doc := NewDocument()
	defer doc.Close()

	bad := NewMutationObserver(func([]MutationRecord, *MutationObserver) {
		panic("boom")
	})
	require.NoError(t, bad.Observe(doc.Root(), ObserveOptions{Attributes: true}))

	rec := &recorder{}
	good := NewMutationObserver(rec.callback)
	require.NoError(t, good.Observe(doc.Root(), ObserveOptions{Attributes: true}))

	doc.Root().ClassList().Add("dark")
	doc.Flush()
	doc.Root().ClassList().Remove("dark")
	doc.Flush()

	assert.Len(t, rec.records(), 2)
}

func TestObserver_PanicIsLogged(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocument(WithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel)))
	defer doc.Close()

	bad := NewMutationObserver(func([]MutationRecord, *MutationObserver) {
		panic("render failed")
	})
	require.NoError(t, bad.Observe(doc.Root(), ObserveOptions{Attributes: true}))

	doc.Root().ClassList().Add("dark")
	doc.Flush()

	out := buf.String()
	assert.Contains(t, out, "mutation observer callback panicked")
	assert.Contains(t, out, "render failed")
	assert.Contains(t, out, `"component":"dom"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestDocument_FlushAfterCloseReturns(t *testing.T) {
	doc := NewDocument()
	doc.Close()
	doc.Root().ClassList().Add("dark")
	doc.Flush()
	assert.True(t, doc.IsDark())
}
