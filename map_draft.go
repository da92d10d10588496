// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/draft/internal/ordered"
	"github.com/cockroachdb/redact"
)

// MapDraft is the draft of a *Map.
type MapDraft struct {
	draftState
	base   *Map
	shadow *ordered.Map[any, any]
}

// Kind implements Draft.
func (d *MapDraft) Kind() Kind { return KindMap }

// String implements fmt.Stringer.
func (d *MapDraft) String() string { return redact.StringWithoutMarkers(d) }

// SafeFormat implements redact.SafeFormatter.
func (d *MapDraft) SafeFormat(w redact.SafePrinter, _ rune) { formatValue(w, d) }

func (d *MapDraft) baseValue() container { return d.base }

func (d *MapDraft) entries() *ordered.Map[any, any] {
	if d.copied {
		return d.shadow
	}
	return d.base.entries
}

func (d *MapDraft) prepare() {
	if !d.copied {
		d.shadow = d.base.entries.Clone()
		if d.children != nil {
			for i := range d.shadow.Len() {
				d.shadow.SetAt(i, d.resolve(d.shadow.At(i).Value))
			}
			d.children = nil
		}
		d.copied = true
		d.scope.copies++
	}
}

// Len returns the number of entries.
func (d *MapDraft) Len() int {
	d.check()
	return d.entries().Len()
}

// Has reports whether key is present.
func (d *MapDraft) Has(key any) bool {
	d.check()
	return d.entries().Has(key)
}

// Keys returns the keys in insertion order.
func (d *MapDraft) Keys() []any {
	d.check()
	return d.entries().Keys()
}

// Get returns the value stored under key. A container value is returned as
// its draft.
func (d *MapDraft) Get(key any) (any, bool) {
	d.check()
	v, ok := d.entries().Get(key)
	if !ok {
		return nil, false
	}
	child, drafted := d.wrap(v)
	if drafted && d.copied {
		d.shadow.Put(key, child)
	}
	return child, true
}

// Set stores v under key, appending the entry if the key is new. Drafts
// cannot be used as keys.
func (d *MapDraft) Set(key, v any) {
	d.check()
	if IsDraft(key) {
		throwf(ErrKindMismatch, "a %s draft cannot be a map key", KindOf(key))
	}
	d.checkValue(v)
	d.prepare()
	d.shadow.Put(key, v)
	d.markModified()
}

// Delete removes key and reports whether it was present. Deleting an absent
// key is not a modification.
func (d *MapDraft) Delete(key any) bool {
	d.check()
	if !d.entries().Has(key) {
		return false
	}
	d.prepare()
	d.shadow.Delete(key)
	d.markModified()
	return true
}

func (d *MapDraft) mustGet(key any) any {
	v, ok := d.Get(key)
	if !ok {
		throwf(ErrNotFound, "key %v", key)
	}
	return v
}

// Record returns the draft of the record stored under key.
func (d *MapDraft) Record(key any) *RecordDraft {
	v := d.mustGet(key)
	res, ok := v.(*RecordDraft)
	if !ok {
		throwf(ErrKindMismatch, "key %v holds a %s, not a record", key, KindOf(v))
	}
	return res
}

// Seq returns the draft of the sequence stored under key.
func (d *MapDraft) Seq(key any) *SeqDraft {
	v := d.mustGet(key)
	res, ok := v.(*SeqDraft)
	if !ok {
		throwf(ErrKindMismatch, "key %v holds a %s, not a seq", key, KindOf(v))
	}
	return res
}

// Map returns the draft of the map stored under key.
func (d *MapDraft) Map(key any) *MapDraft {
	v := d.mustGet(key)
	res, ok := v.(*MapDraft)
	if !ok {
		throwf(ErrKindMismatch, "key %v holds a %s, not a map", key, KindOf(v))
	}
	return res
}

func (d *MapDraft) finalize(f *finalizer) any {
	entries := d.entries()
	m := ordered.New[any, any](entries.Len())
	for k, v := range entries.All() {
		m.Put(k, f.value(d.resolve(v)))
	}
	return makeMap(m, false)
}
