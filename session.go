// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
)

var errAborted = errors.New("draft: session aborted")

// Session is a produce call driven by hand: Begin creates the draft, the
// caller mutates it, and Finish (or Abort) ends the call. Produce is a
// Session whose recipe runs to completion in between.
//
// A Session is not safe for concurrent use.
type Session struct {
	p     *Producer
	scope *scope
	base  any
	root  Draft
	start crtime.Mono
}

// Begin starts a session over base. A container base is drafted; for a
// scalar base Draft returns nil and the result is base.
func (p *Producer) Begin(base any) (*Session, error) {
	if IsDraft(base) {
		return nil, ErrDraftBase
	}
	if holdsDrafts(base) {
		return nil, errors.Wrap(ErrDraftBase, "base holds drafts")
	}
	s := &Session{p: p, scope: newScope(), base: base, start: crtime.NowMono()}
	if c, ok := base.(container); ok && !isNilContainer(c) {
		s.root = s.scope.draftFor(c, nil)
	}
	s.scope.transition(phaseIdle, phaseDrafting)
	p.opts.EventListener.ProduceBegin(ProduceBeginInfo{Kind: KindOf(base)})
	return s, nil
}

// Draft returns the root draft, or nil if the base is a scalar.
func (s *Session) Draft() Draft { return s.root }

// Finish ends the session and returns the produced value. The draft, and
// every draft reached through it, is revoked.
func (s *Session) Finish() (any, error) {
	res, _, _, err := s.finish(Keep, false /* withPatches */)
	return res, err
}

// FinishWithPatches is like Finish and also returns the patches that turn
// the base into the result, and the inverse patches that turn the result
// back into the base.
func (s *Session) FinishWithPatches() (result any, patches, inverse []Patch, err error) {
	return s.finish(Keep, true /* withPatches */)
}

// Abort ends the session without producing a value. It is a no-op on a
// session that has already ended.
func (s *Session) Abort() {
	if s.scope.phase == phaseDrafting {
		s.fail(errAborted, false /* panicked */)
	}
}

// run calls recipe on the root draft. Accessor panics are returned as
// errors; any other panic revokes the draft and propagates.
func (s *Session) run(recipe Recipe) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(accessError); ok {
				res, err = Keep, ae.err
				return
			}
			s.fail(errors.Newf("draft: recipe panicked: %v", r), true /* panicked */)
			panic(r)
		}
	}()
	return recipe(s.root)
}

func (s *Session) finish(
	res Result, withPatches bool,
) (result any, patches, inverse []Patch, err error) {
	if s.scope.phase != phaseDrafting {
		return nil, nil, nil, ErrSessionDone
	}
	s.scope.transition(phaseDrafting, phaseFinalizing)
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(accessError)
			if !ok {
				s.fail(errors.Newf("draft: finalization panicked: %v", r), true /* panicked */)
				panic(r)
			}
			result, patches, inverse, err = nil, nil, nil, ae.err
			s.fail(err, false /* panicked */)
		}
	}()

	f := newFinalizer(s.scope, false /* snapshot */)
	replaced := res.replace && (s.root == nil || res.value != any(s.root))
	switch {
	case replaced:
		if s.root != nil && s.root.header().modified {
			throw(ErrModifiedAndReplaced)
		}
		result = f.value(res.value)
		if withPatches {
			patches = []Patch{{Op: OpReplace, Path: Path{}, Value: result}}
			inverse = []Patch{{Op: OpReplace, Path: Path{}, Value: s.base}}
		}
	case s.root != nil:
		result = f.draft(s.root)
		if withPatches && s.root.header().modified {
			ps := patchSet{seqLimit: s.p.opts.SeqPatchLimit}
			s.root.diff(f, Path{}, &ps)
			patches, inverse = ps.forward, ps.inverse
		}
	default:
		result = s.base
	}
	checkFinalized(result)

	s.scope.transition(phaseFinalizing, phaseDone)
	s.p.recordEnd(s.info(replaced, len(patches), nil, false))
	return result, patches, inverse, nil
}

// fail moves the session to the failed phase, revoking its drafts.
func (s *Session) fail(err error, panicked bool) {
	if s.scope.phase == phaseDone || s.scope.phase == phaseFailed {
		return
	}
	s.scope.phase = phaseFailed
	s.p.recordEnd(s.info(false, 0, err, panicked))
}

func (s *Session) info(replaced bool, patches int, err error, panicked bool) ProduceInfo {
	return ProduceInfo{
		Kind:     KindOf(s.base),
		Drafts:   s.scope.drafts,
		Copies:   s.scope.copies,
		Modified: s.root != nil && s.root.header().modified,
		Replaced: replaced,
		Patches:  patches,
		Duration: s.start.Elapsed(),
		Err:      err,
		Panicked: panicked,
	}
}
