// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkFinalized(t *testing.T) {
	require.NotPanics(t, func() {
		walkFinalized(MustParseValue(`{a: [1, map[2: {b: nil}]]}`))
	})

	s, err := Begin(MustParseValue(`[{}]`))
	require.NoError(t, err)
	d := s.Draft().(*SeqDraft)
	leaky := NewRecord(Field{Key: "d", Value: d.Record(0)})
	require.Panics(t, func() { walkFinalized(NewSeq(leaky)) })
	require.Panics(t, func() { walkFinalized(d) })
	s.Abort()
}

func TestFinalizeMemoizesRebuilt(t *testing.T) {
	// A caller-built container holding drafts, stored twice, finalizes to a
	// single value.
	base := MustParseValue(`{src: {n: 1}}`).(*Record)
	res, err := ProduceRecord(base, func(d *RecordDraft) error {
		box := NewSeq(d.Record("src"))
		d.Set("a", box)
		d.Set("b", box)
		return nil
	})
	require.NoError(t, err)
	require.Same(t, res.Seq("a"), res.Seq("b"))
	require.Same(t, base.Record("src"), res.Seq("a").Record(0))
	require.False(t, res.Seq("a").carriesDrafts())
}
