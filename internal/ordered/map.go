// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package ordered provides an insertion-ordered hash map. Records and maps,
// and the copy-on-write shadows drafted over them, are all built on it.
package ordered

import (
	"iter"

	"github.com/cockroachdb/swiss"
)

// Entry is a key/value pair held by a Map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a hash map that remembers the order in which keys were first
// inserted. Overwriting an existing key keeps its position; deleting a key and
// inserting it again moves it to the end.
//
// A Map must not be copied by value after Init; use Clone.
type Map[K comparable, V any] struct {
	entries []Entry[K, V]
	// index maps a key to its position in entries.
	index swiss.Map[K, int]
}

// New returns an empty Map sized for capacity entries.
func New[K comparable, V any](capacity int) *Map[K, V] {
	m := &Map[K, V]{}
	m.Init(capacity)
	return m
}

// Init prepares a zero Map for use.
func (m *Map[K, V]) Init(capacity int) {
	m.entries = make([]Entry[K, V], 0, capacity)
	m.index.Init(capacity)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (v V, ok bool) {
	i, ok := m.index.Get(k)
	if !ok {
		return v, false
	}
	return m.entries[i].Value, true
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.index.Get(k)
	return ok
}

// Put stores v under k. A new key is appended after all existing keys.
func (m *Map[K, V]) Put(k K, v V) {
	if i, ok := m.index.Get(k); ok {
		m.entries[i].Value = v
		return
	}
	m.index.Put(k, len(m.entries))
	m.entries = append(m.entries, Entry[K, V]{Key: k, Value: v})
}

// Delete removes k, shifting later entries down by one. It reports whether k
// was present.
func (m *Map[K, V]) Delete(k K) bool {
	i, ok := m.index.Get(k)
	if !ok {
		return false
	}
	m.index.Delete(k)
	copy(m.entries[i:], m.entries[i+1:])
	var zero Entry[K, V]
	m.entries[len(m.entries)-1] = zero
	m.entries = m.entries[:len(m.entries)-1]
	for j := i; j < len(m.entries); j++ {
		m.index.Put(m.entries[j].Key, j)
	}
	return true
}

// At returns the i'th entry in insertion order.
func (m *Map[K, V]) At(i int) Entry[K, V] {
	return m.entries[i]
}

// SetAt overwrites the value of the i'th entry.
func (m *Map[K, V]) SetAt(i int, v V) {
	m.entries[i].Value = v
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.entries))
	for i := range m.entries {
		keys[i] = m.entries[i].Key
	}
	return keys
}

// All iterates over the entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.entries {
			if !yield(m.entries[i].Key, m.entries[i].Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of m. Values are copied shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := New[K, V](len(m.entries))
	for i := range m.entries {
		c.index.Put(m.entries[i].Key, i)
	}
	c.entries = append(c.entries, m.entries...)
	return c
}
