// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import "github.com/cockroachdb/swiss"

// Draft is a mutable-looking view over a container, valid only while the
// produce call (or Session) that created it is in progress. It is one of
// *RecordDraft, *SeqDraft or *MapDraft.
//
// Reads pass through to the base container until the draft is first written
// to; reading a nested container returns a nested draft, created on first
// access.
// The first write through a draft marks it and every draft above it as
// modified. Using a draft after its call completed panics with
// ErrRevokedDraft.
type Draft interface {
	// Kind returns the kind of the drafted container.
	Kind() Kind
	// Modified reports whether the draft, or any draft below it, was written
	// to.
	Modified() bool
	String() string

	header() *draftState
	baseValue() container
	// finalize builds a fresh container from the draft's shadow, finalizing
	// every slot. It is only called on modified drafts.
	finalize(f *finalizer) any
	// diff appends the patches that turn the base into the finalized value.
	// It is only called on modified drafts.
	diff(f *finalizer, path Path, ps *patchSet)
}

var (
	_ Draft = (*RecordDraft)(nil)
	_ Draft = (*SeqDraft)(nil)
	_ Draft = (*MapDraft)(nil)
)

// draftState is the write record kept for every drafted container: whether
// a copy-on-write shadow exists, whether it was written to, and the drafts
// that reached it.
type draftState struct {
	scope *scope
	// parents are the drafts through which this one was reached. A container
	// reachable along several paths has one draft with several parents.
	parents []*draftState
	// copied is set once the shadow exists, on the first write. A draft is
	// modified, but not copied, when only drafts below it were written to.
	copied   bool
	modified bool
	// children holds the drafts of nested containers read before the shadow
	// existed, by the identity of the nested container. prepare moves them
	// into the shadow.
	children *swiss.Map[uint64, Draft]

	// Finalization bookkeeping.
	visiting  bool
	finalized bool
	result    any
}

func (h *draftState) header() *draftState { return h }

// Modified implements Draft.
func (h *draftState) Modified() bool {
	h.check()
	return h.modified
}

// check fails fast when the owning call is no longer drafting.
func (h *draftState) check() {
	if h.scope.phase != phaseDrafting {
		throwf(ErrRevokedDraft, "call is %s", h.scope.phase)
	}
}

// checkValue rejects drafts of other calls being stored into this one.
func (h *draftState) checkValue(v any) {
	if d, ok := v.(Draft); ok && d.header().scope != h.scope {
		throwf(ErrForeignDraft, "storing a %s draft", d.Kind())
	}
}

func (h *draftState) addParent(p *draftState) {
	if p == h {
		return
	}
	for _, q := range h.parents {
		if q == p {
			return
		}
	}
	h.parents = append(h.parents, p)
	if h.modified {
		p.markModified()
	}
}

// markModified marks h and, transitively, every parent as modified.
func (h *draftState) markModified() {
	if h.modified {
		return
	}
	h.modified = true
	for _, p := range h.parents {
		p.markModified()
	}
}

// IsDraft reports whether v is a draft.
func IsDraft(v any) bool {
	_, ok := v.(Draft)
	return ok
}

// Original returns the container d was created over.
func Original(d Draft) any {
	d.header().check()
	return d.baseValue()
}

// Current returns an immutable snapshot of d as it is now, without ending the
// call. Unmodified subtrees are shared with the base.
func Current(d Draft) any {
	h := d.header()
	h.check()
	f := newFinalizer(h.scope, true /* snapshot */)
	return f.draft(d)
}
