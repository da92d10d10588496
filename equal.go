// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import "reflect"

// Equal reports whether a and b are deeply equal. Identical containers are
// equal without being walked. Records and maps compare as sets of entries, so
// key order does not matter; sequences compare element by element. Scalars
// compare with reflect.DeepEqual. Drafts are equal only to themselves.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Record:
		y, ok := b.(*Record)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x == nil || y == nil || x.Len() != y.Len() {
			return false
		}
		for k, xv := range x.All() {
			yv, ok := y.Get(k)
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case *Seq:
		y, ok := b.(*Seq)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x == nil || y == nil || len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x == nil || y == nil || x.Len() != y.Len() {
			return false
		}
		for k, xv := range x.All() {
			yv, ok := y.Get(k)
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Draft:
		return identical(a, b)
	}
	if _, ok := b.(container); ok {
		return false
	}
	if _, ok := b.(Draft); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// identical reports whether a and b are the same value: the same container or
// draft, or equal comparable scalars. Values that cannot be compared with ==,
// including structs or arrays whose interface fields hold slices, maps or
// funcs, are never identical.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// Same reports whether a and b are the same value in the sense used for
// structural sharing: the same container (pointer identity) or equal
// comparable scalars.
func Same(a, b any) bool {
	return identical(a, b)
}
