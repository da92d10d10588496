// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestFormatRoundTrip(t *testing.T) {
	for _, s := range []string{
		`nil`,
		`17`,
		`-2.5`,
		`"hello, world"`,
		`{}`,
		`[]`,
		`map[]`,
		`{a: 1, b: [true, false, nil], c: {d: "x y"}}`,
		`map["17": {name: "Michel", todos: [{title: "Get coffee", done: false}]}, 3: [map[]]]`,
		`[[[]], {}, "\"quoted\""]`,
	} {
		v, err := ParseValue(s)
		require.NoError(t, err, s)
		require.Equal(t, s, Format(v))
		if _, ok := v.(container); ok {
			require.Equal(t, s, fmt.Sprint(v))
		}
	}
}

func TestParseValueErrors(t *testing.T) {
	for _, s := range []string{
		``,
		`{a 1}`,
		`[1 2]`,
		`map[1]`,
		`{a: 1`,
		`[1], 2`,
		`bogus`,
	} {
		_, err := ParseValue(s)
		require.Error(t, err, "%q", s)
	}
	require.Panics(t, func() { MustParseValue(`[`) })
}

func TestFormatRedaction(t *testing.T) {
	v := MustParseValue(`{secret: "hunter2"}`)
	require.Equal(t, redact.RedactableString(`{‹secret›: ‹"hunter2"›}`), redact.Sprint(v))
	require.Equal(t, `{‹×›: ‹×›}`, string(redact.Sprint(v).Redact()))

	p := Patch{Op: OpReplace, Path: Path{"todos", 0, "done"}, Value: true}
	require.Equal(t, "replace /todos/0/done true", p.String())
	require.Equal(t, "remove /", Patch{Op: OpRemove, Path: Path{}}.String())
}

func TestEqual(t *testing.T) {
	a := MustParseValue(`{x: [1, {y: 2}], m: map[1: "a", 2: "b"]}`)
	require.True(t, Equal(a, MustParseValue(`{m: map[2: "b", 1: "a"], x: [1, {y: 2}]}`)))
	require.False(t, Equal(a, MustParseValue(`{x: [{y: 2}, 1], m: map[1: "a", 2: "b"]}`)))
	require.False(t, Equal(a, MustParseValue(`{x: [1, {y: 2}], m: map[1: "a"]}`)))
	require.False(t, Equal(MustParseValue(`[]`), MustParseValue(`{}`)))
	require.False(t, Equal(MustParseValue(`[]`), nil))
	require.True(t, Equal([]int{1}, []int{1}))
	require.False(t, Same([]int{1}, []int{1}))
	require.True(t, Same(1, 1))
	require.False(t, Same(1, int64(1)))
	require.False(t, Same(MustParseValue(`[]`), MustParseValue(`[]`)))
}

func TestKind(t *testing.T) {
	require.Equal(t, KindRecord, KindOf(NewRecord()))
	require.Equal(t, KindSeq, KindOf(NewSeq()))
	require.Equal(t, KindMap, KindOf(NewMap()))
	require.Equal(t, KindScalar, KindOf("x"))
	require.Equal(t, KindScalar, KindOf(nil))
	require.Equal(t, "map", KindMap.String())
	require.Equal(t, "unknown", Kind(9).String())

	_, err := ProduceMap(NewMap(), func(d *MapDraft) error {
		require.Equal(t, KindMap, KindOf(d))
		require.Equal(t, "map draft", d.String())
		require.Equal(t, "[map draft]", Format(NewSeq(d)))
		return nil
	})
	require.NoError(t, err)
}
