// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"slices"

	"github.com/cockroachdb/redact"
)

// SeqDraft is the draft of a *Seq.
//
// Positions are not tracked per element: any change to the length or to the
// position of elements marks the whole sequence modified, and finalization
// always builds a full copy of a modified sequence. Reading elements does not
// copy the sequence.
type SeqDraft struct {
	draftState
	base   *Seq
	shadow []any
}

// Kind implements Draft.
func (d *SeqDraft) Kind() Kind { return KindSeq }

// String implements fmt.Stringer.
func (d *SeqDraft) String() string { return redact.StringWithoutMarkers(d) }

// SafeFormat implements redact.SafeFormatter.
func (d *SeqDraft) SafeFormat(w redact.SafePrinter, _ rune) { formatValue(w, d) }

func (d *SeqDraft) baseValue() container { return d.base }

func (d *SeqDraft) items() []any {
	if d.copied {
		return d.shadow
	}
	return d.base.items
}

func (d *SeqDraft) prepare() {
	if !d.copied {
		d.shadow = slices.Clone(d.base.items)
		if d.shadow == nil {
			d.shadow = []any{}
		}
		for i, v := range d.shadow {
			d.shadow[i] = d.resolve(v)
		}
		d.children = nil
		d.copied = true
		d.scope.copies++
	}
}

func (d *SeqDraft) checkIndex(i, n int) {
	if i < 0 || i >= n {
		throwf(ErrIndexOutOfRange, "index %d with length %d", i, n)
	}
}

// Len returns the number of elements.
func (d *SeqDraft) Len() int {
	d.check()
	return len(d.items())
}

// Get returns the i'th element. A container element is returned as its
// draft. Get panics with ErrIndexOutOfRange if i is out of range.
func (d *SeqDraft) Get(i int) any {
	d.check()
	items := d.items()
	d.checkIndex(i, len(items))
	v := items[i]
	child, drafted := d.wrap(v)
	if drafted && d.copied {
		d.shadow[i] = child
	}
	return child
}

// Set stores v at index i. Setting index Len() appends.
func (d *SeqDraft) Set(i int, v any) {
	d.check()
	n := len(d.items())
	if i == n {
		d.Append(v)
		return
	}
	d.checkIndex(i, n)
	d.checkValue(v)
	d.prepare()
	d.shadow[i] = v
	d.markModified()
}

// Append adds vs to the end of the sequence.
func (d *SeqDraft) Append(vs ...any) {
	d.Insert(len(d.items()), vs...)
}

// Prepend adds vs to the front of the sequence, shifting every element up.
func (d *SeqDraft) Prepend(vs ...any) {
	d.Insert(0, vs...)
}

// Insert adds vs before index i; 0 <= i <= Len().
func (d *SeqDraft) Insert(i int, vs ...any) {
	d.check()
	if n := len(d.items()); i < 0 || i > n {
		throwf(ErrIndexOutOfRange, "insert at %d with length %d", i, n)
	}
	if len(vs) == 0 {
		return
	}
	for _, v := range vs {
		d.checkValue(v)
	}
	d.prepare()
	d.shadow = slices.Insert(d.shadow, i, vs...)
	d.markModified()
}

// RemoveAt removes and returns the i'th element.
func (d *SeqDraft) RemoveAt(i int) any {
	d.check()
	d.checkIndex(i, len(d.items()))
	d.prepare()
	v := d.shadow[i]
	d.shadow = slices.Delete(d.shadow, i, i+1)
	d.markModified()
	return v
}

// Pop removes and returns the last element.
func (d *SeqDraft) Pop() (any, bool) {
	d.check()
	n := len(d.items())
	if n == 0 {
		return nil, false
	}
	return d.RemoveAt(n - 1), true
}

// Shift removes and returns the first element.
func (d *SeqDraft) Shift() (any, bool) {
	d.check()
	if len(d.items()) == 0 {
		return nil, false
	}
	return d.RemoveAt(0), true
}

// Splice removes deleteCount elements starting at start, inserts items in
// their place and returns the removed elements. A negative start counts back
// from the end; start and deleteCount are clamped to the sequence.
func (d *SeqDraft) Splice(start, deleteCount int, items ...any) []any {
	d.check()
	n := len(d.items())
	switch {
	case start < 0:
		start = max(n+start, 0)
	case start > n:
		start = n
	}
	deleteCount = max(0, min(deleteCount, n-start))
	if deleteCount == 0 && len(items) == 0 {
		return nil
	}
	for _, v := range items {
		d.checkValue(v)
	}
	d.prepare()
	removed := slices.Clone(d.shadow[start : start+deleteCount])
	d.shadow = slices.Replace(d.shadow, start, start+deleteCount, items...)
	d.markModified()
	return removed
}

// FindIndex returns the index of the first element for which pred returns
// true, or -1. Container elements are passed to pred as drafts.
func (d *SeqDraft) FindIndex(pred func(v any) bool) int {
	d.check()
	for i := 0; i < len(d.items()); i++ {
		if pred(d.Get(i)) {
			return i
		}
	}
	return -1
}

// Retain keeps the elements for which pred returns true, in order, and
// returns the number removed. Container elements are passed to pred as
// drafts.
func (d *SeqDraft) Retain(pred func(v any) bool) int {
	d.check()
	n := len(d.items())
	kept := make([]any, 0, n)
	for i := 0; i < n; i++ {
		if v := d.Get(i); pred(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == n {
		return 0
	}
	d.prepare()
	d.shadow = kept
	d.markModified()
	return n - len(kept)
}

// Values returns the elements in order, with containers returned as drafts.
func (d *SeqDraft) Values() []any {
	d.check()
	n := len(d.items())
	res := make([]any, n)
	for i := range res {
		res[i] = d.Get(i)
	}
	return res
}

// Record returns the draft of the record at index i.
func (d *SeqDraft) Record(i int) *RecordDraft {
	v := d.Get(i)
	res, ok := v.(*RecordDraft)
	if !ok {
		throwf(ErrKindMismatch, "index %d is a %s, not a record", i, KindOf(v))
	}
	return res
}

// Seq returns the draft of the sequence at index i.
func (d *SeqDraft) Seq(i int) *SeqDraft {
	v := d.Get(i)
	res, ok := v.(*SeqDraft)
	if !ok {
		throwf(ErrKindMismatch, "index %d is a %s, not a seq", i, KindOf(v))
	}
	return res
}

// Map returns the draft of the map at index i.
func (d *SeqDraft) Map(i int) *MapDraft {
	v := d.Get(i)
	res, ok := v.(*MapDraft)
	if !ok {
		throwf(ErrKindMismatch, "index %d is a %s, not a map", i, KindOf(v))
	}
	return res
}

func (d *SeqDraft) finalize(f *finalizer) any {
	cur := d.items()
	items := make([]any, len(cur))
	for i, v := range cur {
		items[i] = f.value(d.resolve(v))
	}
	return makeSeq(items, false)
}
