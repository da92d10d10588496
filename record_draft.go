// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/draft/internal/ordered"
	"github.com/cockroachdb/redact"
)

// RecordDraft is the draft of a *Record.
type RecordDraft struct {
	draftState
	base *Record
	// shadow is the copy-on-write copy of base.fields, nil until copied.
	shadow *ordered.Map[string, any]
}

// Kind implements Draft.
func (d *RecordDraft) Kind() Kind { return KindRecord }

// String implements fmt.Stringer.
func (d *RecordDraft) String() string { return redact.StringWithoutMarkers(d) }

// SafeFormat implements redact.SafeFormatter.
func (d *RecordDraft) SafeFormat(w redact.SafePrinter, _ rune) { formatValue(w, d) }

func (d *RecordDraft) baseValue() container { return d.base }

func (d *RecordDraft) fields() *ordered.Map[string, any] {
	if d.copied {
		return d.shadow
	}
	return d.base.fields
}

func (d *RecordDraft) prepare() {
	if !d.copied {
		d.shadow = d.base.fields.Clone()
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

// Len returns the number of fields.
func (d *RecordDraft) Len() int {
	d.check()
	return d.fields().Len()
}

// Has reports whether the field key is present.
func (d *RecordDraft) Has(key string) bool {
	d.check()
	return d.fields().Has(key)
}

// Keys returns the field names in insertion order.
func (d *RecordDraft) Keys() []string {
	d.check()
	return d.fields().Keys()
}

// Get returns the value of the field key. A container value is returned as
// its draft.
func (d *RecordDraft) Get(key string) (any, bool) {
	d.check()
	v, ok := d.fields().Get(key)
	if !ok {
		return nil, false
	}
	child, drafted := d.wrap(v)
	if drafted && d.copied {
		d.shadow.Put(key, child)
	}
	return child, true
}

// Set stores v in the field key, appending the field if it is new. Setting a
// field always counts as a modification, even when v is the current value.
func (d *RecordDraft) Set(key string, v any) {
	d.check()
	d.checkValue(v)
	d.prepare()
	d.shadow.Put(key, v)
	d.markModified()
}

// Delete removes the field key and reports whether it was present. Deleting
// an absent field is not a modification.
func (d *RecordDraft) Delete(key string) bool {
	d.check()
	if !d.fields().Has(key) {
		return false
	}
	d.prepare()
	d.shadow.Delete(key)
	d.markModified()
	return true
}

func (d *RecordDraft) mustGet(key string) any {
	v, ok := d.Get(key)
	if !ok {
		throwf(ErrNotFound, "field %q", key)
	}
	return v
}

// Record returns the draft of the record in field key. It panics with
// ErrNotFound or ErrKindMismatch, which a produce call returns as its error.
func (d *RecordDraft) Record(key string) *RecordDraft {
	v := d.mustGet(key)
	res, ok := v.(*RecordDraft)
	if !ok {
		throwf(ErrKindMismatch, "field %q is a %s, not a record", key, KindOf(v))
	}
	return res
}

// Seq returns the draft of the sequence in field key.
func (d *RecordDraft) Seq(key string) *SeqDraft {
	v := d.mustGet(key)
	res, ok := v.(*SeqDraft)
	if !ok {
		throwf(ErrKindMismatch, "field %q is a %s, not a seq", key, KindOf(v))
	}
	return res
}

// Map returns the draft of the map in field key.
func (d *RecordDraft) Map(key string) *MapDraft {
	v := d.mustGet(key)
	res, ok := v.(*MapDraft)
	if !ok {
		throwf(ErrKindMismatch, "field %q is a %s, not a map", key, KindOf(v))
	}
	return res
}

func (d *RecordDraft) finalize(f *finalizer) any {
	fields := d.fields()
	m := ordered.New[string, any](fields.Len())
	for k, v := range fields.All() {
		m.Put(k, f.value(d.resolve(v)))
	}
	return makeRecord(m, false)
}
