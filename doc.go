// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package draft produces new versions of immutable trees by mutating a draft.
//
// A tree is built from three container types, *Record (string keys), *Seq
// and *Map (any comparable key), holding scalars or other containers.
// Containers are never modified once built. Produce hands a recipe a Draft
// of the base tree; the recipe reads and writes the draft as if it were
// mutable, and Produce returns a new tree in which every container the
// recipe did not change is shared with the base:
//
//	next, err := draft.ProduceSeq(todos, func(d *draft.SeqDraft) error {
//		d.Record(0).Set("done", true)
//		d.Append(draft.NewRecord(draft.Field{Key: "title", Value: "ship"}))
//		return nil
//	})
//
// Here next.Record(0) is a new record, next itself is a new sequence, and
// every other element of next is identical to the one in todos. A recipe
// that writes nothing produces the base itself.
//
// Drafts are only valid during the call that created them. Any use after
// the call returns panics with ErrRevokedDraft.
//
// ProduceWithPatches also describes the change as a list of Patches, and the
// inverse list that undoes it; ApplyPatches replays either list. Begin starts
// a Session, a produce call whose draft is driven by hand.
package draft
