// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	base := todos()
	s, err := Begin(base)
	require.NoError(t, err)
	require.Equal(t, phaseDrafting, s.scope.phase)

	d := s.Draft().(*SeqDraft)
	d.Record(0).Set("done", false)
	d.Append("more")

	res, patches, inverse, err := s.FinishWithPatches()
	require.NoError(t, err)
	require.Equal(t, phaseDone, s.scope.phase)
	require.Equal(t, `[{todo: "Learn typescript", done: false}, {todo: "Try drafts", done: false}, "more"]`, Format(res))
	require.Same(t, base.Record(1), res.(*Seq).Record(1))
	require.Len(t, patches, 2)
	require.Len(t, inverse, 2)

	// The session can only be finished once, and its drafts are revoked.
	_, err = s.Finish()
	require.True(t, errors.Is(err, ErrSessionDone))
	require.Panics(t, func() { d.Len() })
	s.Abort()
	require.Equal(t, phaseDone, s.scope.phase)
}

func TestSessionAbort(t *testing.T) {
	var info ProduceInfo
	p := New(&Options{EventListener: &EventListener{
		ProduceEnd: func(i ProduceInfo) { info = i },
	}})
	s, err := p.Begin(todos())
	require.NoError(t, err)
	d := s.Draft().(*SeqDraft)
	d.Pop()
	s.Abort()
	require.Equal(t, phaseFailed, s.scope.phase)
	require.True(t, errors.Is(info.Err, errAborted))
	require.True(t, info.Modified)
	require.Panics(t, func() { d.Len() })

	_, err = s.Finish()
	require.True(t, errors.Is(err, ErrSessionDone))
	require.Equal(t, Metrics{Failed: 1, Drafts: 1, Copies: 1}, p.Metrics())
}

func TestSessionScalar(t *testing.T) {
	s, err := Begin(3.5)
	require.NoError(t, err)
	require.Nil(t, s.Draft())
	res, err := s.Finish()
	require.NoError(t, err)
	require.Equal(t, 3.5, res)
}

func TestSessionFinalizeError(t *testing.T) {
	s, err := Begin(MustParseValue(`[[]]`))
	require.NoError(t, err)
	d := s.Draft().(*SeqDraft)
	inner := d.Seq(0)
	inner.Append(inner)
	_, err = s.Finish()
	require.True(t, errors.Is(err, ErrCycle))
	require.Equal(t, phaseFailed, s.scope.phase)
}

func TestPhaseTransitions(t *testing.T) {
	sc := newScope()
	require.Equal(t, "idle", sc.phase.String())
	sc.transition(phaseIdle, phaseDrafting)
	require.Panics(t, func() { sc.transition(phaseIdle, phaseDrafting) })
	sc.transition(phaseDrafting, phaseFinalizing)
	sc.transition(phaseFinalizing, phaseDone)
	require.Equal(t, "done", sc.phase.String())
}
