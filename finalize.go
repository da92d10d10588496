// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/draft/internal/invariants"
	"github.com/cockroachdb/draft/internal/ordered"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// finalizer turns drafts back into immutable values. It only descends into
// drafts and into containers carrying drafts; every other value is returned
// as is, which is what shares untouched subtrees with the base. Children are
// finalized before the container holding them.
type finalizer struct {
	scope *scope
	// snapshot is set for Current: results are not memoized on the drafts,
	// which stay usable.
	snapshot bool
	// rebuilt memoizes containers carrying drafts, by identity, so one that
	// is reachable twice finalizes to a single value.
	rebuilt swiss.Map[uint64, any]
}

func newFinalizer(s *scope, snapshot bool) *finalizer {
	f := &finalizer{scope: s, snapshot: snapshot}
	f.rebuilt.Init(0, nodeMapOptions[any]()...)
	return f
}

// value finalizes a slot value.
func (f *finalizer) value(v any) any {
	switch t := v.(type) {
	case Draft:
		return f.draft(t)
	case container:
		if t.carriesDrafts() {
			return f.rebuild(t)
		}
	}
	return v
}

// draft finalizes d. An unmodified draft finalizes to its base.
func (f *finalizer) draft(d Draft) any {
	h := d.header()
	if h.scope != f.scope {
		throwf(ErrForeignDraft, "finalizing a %s draft", d.Kind())
	}
	if h.finalized {
		return h.result
	}
	if h.visiting {
		throwf(ErrCycle, "%s draft contains itself", d.Kind())
	}
	h.visiting = true
	var res any
	if h.modified {
		res = d.finalize(f)
	} else {
		res = f.value(d.baseValue())
	}
	h.visiting = false
	if !f.snapshot {
		h.finalized = true
		h.result = res
	}
	return res
}

// rebuild copies a container built during the call, replacing the drafts it
// carries with their finalized values.
func (f *finalizer) rebuild(c container) any {
	id := c.nodeID()
	if v, ok := f.rebuilt.Get(id); ok {
		return v
	}
	var res any
	switch t := c.(type) {
	case *Record:
		m := ordered.New[string, any](t.Len())
		for k, v := range t.All() {
			m.Put(k, f.value(v))
		}
		res = makeRecord(m, false)
	case *Seq:
		items := make([]any, len(t.items))
		for i, v := range t.items {
			items[i] = f.value(v)
		}
		res = makeSeq(items, false)
	case *Map:
		m := ordered.New[any, any](t.Len())
		for k, v := range t.All() {
			m.Put(k, f.value(v))
		}
		res = makeMap(m, false)
	}
	f.rebuilt.Put(id, res)
	return res
}

// checkFinalized panics if a draft or a container carrying drafts is
// reachable from v. The walk visits shared subtrees too, so invariant builds
// only run it on a sample of calls.
func checkFinalized(v any) {
	if invariants.Sometimes(25) {
		walkFinalized(v)
	}
}

func walkFinalized(v any) {
	switch t := v.(type) {
	case Draft:
		panic(errors.AssertionFailedf("draft: %s draft escaped finalization", t.Kind()))
	case *Record:
		if t == nil {
			return
		}
		if t.drafts {
			panic(errors.AssertionFailedf("draft: finalized record carries drafts"))
		}
		for _, fv := range t.All() {
			walkFinalized(fv)
		}
	case *Seq:
		if t == nil {
			return
		}
		if t.drafts {
			panic(errors.AssertionFailedf("draft: finalized seq carries drafts"))
		}
		for _, ev := range t.items {
			walkFinalized(ev)
		}
	case *Map:
		if t == nil {
			return
		}
		if t.drafts {
			panic(errors.AssertionFailedf("draft: finalized map carries drafts"))
		}
		for _, ev := range t.All() {
			walkFinalized(ev)
		}
	}
}
