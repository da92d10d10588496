// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestApplyPatches(t *testing.T) {
	base := MustParseValue(`{todos: [{title: "a"}], meta: map[1: "x"]}`)
	res, err := ApplyPatches(base, []Patch{
		{Op: OpAdd, Path: Path{"todos", 1}, Value: MustParseValue(`{title: "b"}`)},
		{Op: OpReplace, Path: Path{"todos", 0, "title"}, Value: "A"},
		{Op: OpRemove, Path: Path{"meta", 1}},
		{Op: OpAdd, Path: Path{"meta", "2"}, Value: 2},
	})
	require.NoError(t, err)
	require.Equal(t, `{todos: [{title: "A"}, {title: "b"}], meta: map["2": 2]}`, Format(res))

	// A root replacement discards the patches before it.
	res, err = ApplyPatches(base, []Patch{
		{Op: OpRemove, Path: Path{"todos"}},
		{Op: OpReplace, Path: Path{}, Value: MustParseValue(`[1]`)},
		{Op: OpAdd, Path: Path{1}, Value: 2},
	})
	require.NoError(t, err)
	require.Equal(t, `[1, 2]`, Format(res))

	res, err = ApplyPatches(base, nil)
	require.NoError(t, err)
	require.True(t, Same(base, res))
}

func TestApplyPatchesErrors(t *testing.T) {
	base := MustParseValue(`{todos: [{title: "a"}], n: 1}`)
	for _, tc := range []struct {
		patch Patch
		msg   string
	}{
		{
			patch: Patch{Op: OpRemove, Path: Path{}},
			msg:   "remove at the root: draft: invalid patch",
		},
		{
			patch: Patch{Op: OpRemove, Path: Path{"zz"}},
			msg:   `remove /zz: no field "zz": draft: invalid patch`,
		},
		{
			patch: Patch{Op: OpReplace, Path: Path{"todos", 5}, Value: 1},
			msg:   "replace /todos/5 1: length 1: draft: invalid patch",
		},
		{
			patch: Patch{Op: OpAdd, Path: Path{"todos", "x"}, Value: 1},
			msg:   "add /todos/x 1: index x is not an int: draft: invalid patch",
		},
		{
			patch: Patch{Op: OpReplace, Path: Path{"n", "m"}, Value: 1},
			msg:   "replace /n/m 1: n is a scalar: draft: invalid patch",
		},
		{
			patch: Patch{Op: OpReplace, Path: Path{"missing", "m"}, Value: 1},
			msg:   "replace /missing/m 1: no value at missing: draft: invalid patch",
		},
	} {
		t.Run(tc.patch.String(), func(t *testing.T) {
			_, err := ApplyPatches(base, []Patch{tc.patch})
			require.True(t, errors.Is(err, ErrInvalidPatch), "%v", err)
			require.EqualError(t, err, tc.msg)
		})
	}

	_, err := ApplyPatches(7, []Patch{{Op: OpRemove, Path: Path{"a"}}})
	require.True(t, errors.Is(err, ErrInvalidPatch))
}

// box is a comparable type whose values may hold uncomparable contents.
type box struct{ X any }

func TestPatchesUncomparableScalars(t *testing.T) {
	require.True(t, Same(box{X: 1}, box{X: 1}))
	require.False(t, Same(box{X: []int{1}}, box{X: []int{1}}))
	require.False(t, Same([]int{1}, []int{1}))

	base := NewRecord(
		Field{Key: "a", Value: box{X: []int{1}}},
		Field{Key: "s", Value: NewSeq(box{X: []int{1}}, box{X: map[string]int{"k": 1}})},
	)
	res, patches, inverse, err := ProduceWithPatches(base, func(d Draft) (Result, error) {
		r := d.(*RecordDraft)
		r.Set("a", box{X: []int{2}})
		s := r.Seq("s")
		s.Set(1, box{X: map[string]int{"k": 2}})
		s.Append(box{X: []int{3}})
		return Keep, nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, patches)

	fwd, err := ApplyPatches(base, patches)
	require.NoError(t, err)
	require.True(t, Equal(res, fwd))
	back, err := ApplyPatches(res, inverse)
	require.NoError(t, err)
	require.True(t, Equal(base, back))
}
