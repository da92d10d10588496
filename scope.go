// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/swiss"
)

// phase is the state of a single produce call. A call moves
//
//	idle -> drafting -> finalizing -> done
//
// or from drafting (or finalizing) to failed. Phases are never revisited.
type phase uint8

const (
	phaseIdle phase = iota
	phaseDrafting
	phaseFinalizing
	phaseDone
	phaseFailed
)

var phaseNames = [...]string{
	phaseIdle:       "idle",
	phaseDrafting:   "drafting",
	phaseFinalizing: "finalizing",
	phaseDone:       "done",
	phaseFailed:     "failed",
}

func (p phase) String() string { return phaseNames[p] }

// SafeFormat implements redact.SafeFormatter.
func (p phase) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(p.String()))
}

// nodeHash is a fibonacci hash over container identities, which are dense
// sequential integers.
func nodeHash(id *uint64, seed uintptr) uintptr {
	const m = 11400714819323198485
	h := uint64(seed)
	h ^= *id * m
	return uintptr(h)
}

func nodeMapOptions[V any]() []swiss.Option[uint64, V] {
	return []swiss.Option[uint64, V]{
		swiss.WithHash[uint64, V](nodeHash),
	}
}

// scope is the change tracker of one produce call. It maps the identity of
// every container reached through a draft to that container's draft, so a
// container gets at most one shadow per call no matter how many paths lead
// to it. A scope is never shared between calls.
type scope struct {
	phase   phase
	tracker swiss.Map[uint64, Draft]

	// Counters reported through ProduceInfo.
	drafts int
	copies int
}

func newScope() *scope {
	s := &scope{}
	s.tracker.Init(8, nodeMapOptions[Draft]()...)
	return s
}

// transition moves the scope to the next phase.
func (s *scope) transition(from, to phase) {
	if s.phase != from {
		panic(errors.AssertionFailedf("draft: transition %s -> %s from %s", from, to, s.phase))
	}
	s.phase = to
}

// draftFor returns the draft of c, creating it on first access. parent is
// the draft c was reached through, or nil for the root.
func (s *scope) draftFor(c container, parent *draftState) Draft {
	if d, ok := s.tracker.Get(c.nodeID()); ok {
		if parent != nil {
			d.header().addParent(parent)
		}
		return d
	}
	var d Draft
	switch t := c.(type) {
	case *Record:
		d = &RecordDraft{draftState: draftState{scope: s}, base: t}
	case *Seq:
		d = &SeqDraft{draftState: draftState{scope: s}, base: t}
	case *Map:
		d = &MapDraft{draftState: draftState{scope: s}, base: t}
	default:
		panic(errors.AssertionFailedf("draft: cannot draft %T", c))
	}
	if parent != nil {
		d.header().parents = append(d.header().parents, parent)
	}
	s.tracker.Put(c.nodeID(), d)
	s.drafts++
	return d
}

// wrap returns the draft of v if v is a container, and v otherwise. A draft
// returned before h is copied is kept in h's side table.
func (h *draftState) wrap(v any) (_ any, drafted bool) {
	c, ok := v.(container)
	if !ok || isNilContainer(c) {
		return v, false
	}
	d := h.scope.draftFor(c, h)
	if !h.copied {
		if h.children == nil {
			h.children = &swiss.Map[uint64, Draft]{}
			h.children.Init(4, nodeMapOptions[Draft]()...)
		}
		h.children.Put(c.nodeID(), d)
	}
	return d, true
}

// resolve returns the draft read through h for the base slot value v, or v.
// It is the identity once h is copied.
func (h *draftState) resolve(v any) any {
	if h.children == nil {
		return v
	}
	if c, ok := v.(container); ok && !isNilContainer(c) {
		if d, ok := h.children.Get(c.nodeID()); ok {
			return d
		}
	}
	return v
}

func isNilContainer(c container) bool {
	switch t := c.(type) {
	case *Record:
		return t == nil
	case *Seq:
		return t == nil
	case *Map:
		return t == nil
	}
	return false
}
