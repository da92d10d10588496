// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Op is the operation of a Patch.
type Op uint8

const (
	// OpAdd adds a record field or map entry, or inserts a sequence element
	// at the path's index (an index equal to the length appends).
	OpAdd Op = iota + 1
	// OpReplace overwrites the value at the path. An empty path replaces the
	// whole value.
	OpReplace
	// OpRemove removes the field, entry or element at the path.
	OpRemove
)

// String implements fmt.Stringer.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpReplace:
		return "replace"
	case OpRemove:
		return "remove"
	}
	return "unknown"
}

// SafeFormat implements redact.SafeFormatter.
func (o Op) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(o.String()))
}

// Path addresses a value inside a tree. Each segment is a string record
// field, an int sequence index, or a map key.
type Path []any

// child returns a new path extending p by seg. It never aliases p.
func (p Path) child(seg any) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = seg
	return c
}

// String implements fmt.Stringer.
func (p Path) String() string { return redact.StringWithoutMarkers(p) }

// SafeFormat implements redact.SafeFormatter. Segments are user data.
func (p Path) SafeFormat(w redact.SafePrinter, _ rune) {
	if len(p) == 0 {
		w.SafeRune('/')
		return
	}
	for _, seg := range p {
		w.SafeRune('/')
		w.Print(seg)
	}
}

// Patch is one change between two values.
type Patch struct {
	Op   Op
	Path Path
	// Value is the new value for OpAdd and OpReplace. It is an immutable
	// value and is shared, not copied.
	Value any
}

// String implements fmt.Stringer.
func (p Patch) String() string { return redact.StringWithoutMarkers(p) }

// SafeFormat implements redact.SafeFormatter.
func (p Patch) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s %s", p.Op, p.Path)
	if p.Op != OpRemove {
		w.SafeRune(' ')
		formatValue(w, p.Value)
	}
}

// patchSet accumulates the forward and inverse patches of one call.
type patchSet struct {
	forward []Patch
	inverse []Patch
	// seqLimit is the largest number of index-level patches emitted for one
	// sequence before it is replaced as a whole. Negative means no limit.
	seqLimit int
}

func (ps *patchSet) add(forward, inverse Patch) {
	ps.forward = append(ps.forward, forward)
	ps.inverse = append(ps.inverse, inverse)
}

// nested reports whether slot value sv is a modified draft of the base value
// bv, whose changes are described by its own patches.
func nested(sv, bv any) (Draft, bool) {
	d, ok := sv.(Draft)
	if !ok || !d.header().modified || !identical(any(d.baseValue()), bv) {
		return nil, false
	}
	return d, true
}

// diffSlot emits the patches turning base value bv into slot value sv.
func diffSlot(f *finalizer, sv, bv any, path Path, ps *patchSet) {
	if d, ok := nested(sv, bv); ok {
		d.diff(f, path, ps)
		return
	}
	if nv := f.value(sv); !identical(nv, bv) {
		ps.add(Patch{Op: OpReplace, Path: path, Value: nv}, Patch{Op: OpReplace, Path: path, Value: bv})
	}
}

// diff emits removed fields, then changed fields, then added fields.
func (d *RecordDraft) diff(f *finalizer, path Path, ps *patchSet) {
	base, cur := d.base.fields, d.fields()
	for k, bv := range base.All() {
		if !cur.Has(k) {
			p := path.child(k)
			ps.add(Patch{Op: OpRemove, Path: p}, Patch{Op: OpAdd, Path: p, Value: bv})
		}
	}
	for k, sv := range cur.All() {
		if bv, ok := base.Get(k); ok {
			diffSlot(f, d.resolve(sv), bv, path.child(k), ps)
		}
	}
	for k, sv := range cur.All() {
		if !base.Has(k) {
			p := path.child(k)
			ps.add(Patch{Op: OpAdd, Path: p, Value: f.value(d.resolve(sv))}, Patch{Op: OpRemove, Path: p})
		}
	}
}

// diff mirrors RecordDraft.diff with arbitrary keys.
func (d *MapDraft) diff(f *finalizer, path Path, ps *patchSet) {
	base, cur := d.base.entries, d.entries()
	for k, bv := range base.All() {
		if !cur.Has(k) {
			p := path.child(k)
			ps.add(Patch{Op: OpRemove, Path: p}, Patch{Op: OpAdd, Path: p, Value: bv})
		}
	}
	for k, sv := range cur.All() {
		if bv, ok := base.Get(k); ok {
			diffSlot(f, d.resolve(sv), bv, path.child(k), ps)
		}
	}
	for k, sv := range cur.All() {
		if !base.Has(k) {
			p := path.child(k)
			ps.add(Patch{Op: OpAdd, Path: p, Value: f.value(d.resolve(sv))}, Patch{Op: OpRemove, Path: p})
		}
	}
}

// diff emits per-index patches below the common length, then appends, then
// removals from the end. The inverse undoes the length change first.
func (d *SeqDraft) diff(f *finalizer, path Path, ps *patchSet) {
	base, cur := d.base.items, d.items()
	if d.children != nil {
		cur = slices.Clone(cur)
		for i, v := range cur {
			cur[i] = d.resolve(v)
		}
	}
	n, m := len(base), len(cur)
	var changed []int
	for i := 0; i < min(n, m); i++ {
		if _, ok := nested(cur[i], base[i]); ok || !identical(f.value(cur[i]), base[i]) {
			changed = append(changed, i)
		}
	}
	if ops := len(changed) + max(n-m, m-n); ps.seqLimit >= 0 && ops > ps.seqLimit {
		ps.add(Patch{Op: OpReplace, Path: path, Value: f.draft(d)}, Patch{Op: OpReplace, Path: path, Value: d.base})
		return
	}
	for _, i := range changed {
		diffSlot(f, cur[i], base[i], path.child(i), ps)
	}
	for i := n; i < m; i++ {
		ps.forward = append(ps.forward, Patch{Op: OpAdd, Path: path.child(i), Value: f.value(cur[i])})
	}
	for i := m - 1; i >= n; i-- {
		ps.inverse = append(ps.inverse, Patch{Op: OpRemove, Path: path.child(i)})
	}
	for i := n - 1; i >= m; i-- {
		ps.forward = append(ps.forward, Patch{Op: OpRemove, Path: path.child(i)})
	}
	for i := m; i < n; i++ {
		ps.inverse = append(ps.inverse, Patch{Op: OpAdd, Path: path.child(i), Value: base[i]})
	}
}

// ApplyPatches applies patches to base and returns the result. Values not on
// a patched path are shared with base. Patches are typically the output of
// ProduceWithPatches.
func (p *Producer) ApplyPatches(base any, patches []Patch) (any, error) {
	// A whole-value replacement discards everything before it.
	for i := len(patches) - 1; i >= 0; i-- {
		if len(patches[i].Path) == 0 {
			if patches[i].Op != OpReplace {
				return nil, errors.Wrapf(ErrInvalidPatch, "%s at the root", patches[i].Op)
			}
			base, patches = patches[i].Value, patches[i+1:]
			break
		}
	}
	if len(patches) == 0 {
		return base, nil
	}
	return p.Produce(base, func(d Draft) (Result, error) {
		for _, patch := range patches {
			if err := applyPatch(d, patch); err != nil {
				return Keep, err
			}
		}
		return Keep, nil
	})
}

func applyPatch(root Draft, patch Patch) error {
	if root == nil {
		return errors.Wrapf(ErrInvalidPatch, "%s: base is a scalar", patch)
	}
	cur := root
	last := len(patch.Path) - 1
	for _, seg := range patch.Path[:last] {
		v, ok := childAt(cur, seg)
		if !ok {
			return errors.Wrapf(ErrInvalidPatch, "%s: no value at %v", patch, seg)
		}
		next, ok := v.(Draft)
		if !ok {
			return errors.Wrapf(ErrInvalidPatch, "%s: %v is a scalar", patch, seg)
		}
		cur = next
	}
	seg := patch.Path[last]
	switch d := cur.(type) {
	case *RecordDraft:
		key, ok := seg.(string)
		if !ok {
			return errors.Wrapf(ErrInvalidPatch, "%s: record field %v is not a string", patch, seg)
		}
		switch patch.Op {
		case OpAdd, OpReplace:
			d.Set(key, patch.Value)
		case OpRemove:
			if !d.Delete(key) {
				return errors.Wrapf(ErrInvalidPatch, "%s: no field %q", patch, key)
			}
		default:
			return errors.Wrapf(ErrInvalidPatch, "%s", patch)
		}
	case *SeqDraft:
		i, ok := seg.(int)
		if !ok {
			return errors.Wrapf(ErrInvalidPatch, "%s: index %v is not an int", patch, seg)
		}
		n := d.Len()
		switch patch.Op {
		case OpAdd:
			if i < 0 || i > n {
				return errors.Wrapf(ErrInvalidPatch, "%s: length %d", patch, n)
			}
			d.Insert(i, patch.Value)
		case OpReplace:
			if i < 0 || i >= n {
				return errors.Wrapf(ErrInvalidPatch, "%s: length %d", patch, n)
			}
			d.Set(i, patch.Value)
		case OpRemove:
			if i < 0 || i >= n {
				return errors.Wrapf(ErrInvalidPatch, "%s: length %d", patch, n)
			}
			d.RemoveAt(i)
		default:
			return errors.Wrapf(ErrInvalidPatch, "%s", patch)
		}
	case *MapDraft:
		switch patch.Op {
		case OpAdd, OpReplace:
			d.Set(seg, patch.Value)
		case OpRemove:
			if !d.Delete(seg) {
				return errors.Wrapf(ErrInvalidPatch, "%s: no key %v", patch, seg)
			}
		default:
			return errors.Wrapf(ErrInvalidPatch, "%s", patch)
		}
	}
	return nil
}

// childAt returns the value at seg inside d, as a draft for containers.
func childAt(d Draft, seg any) (any, bool) {
	switch t := d.(type) {
	case *RecordDraft:
		key, ok := seg.(string)
		if !ok {
			return nil, false
		}
		return t.Get(key)
	case *SeqDraft:
		i, ok := seg.(int)
		if !ok || i < 0 || i >= t.Len() {
			return nil, false
		}
		return t.Get(i), true
	case *MapDraft:
		return t.Get(seg)
	}
	return nil, false
}
