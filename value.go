// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"iter"
	"sync/atomic"

	"github.com/cockroachdb/draft/internal/ordered"
)

// container is implemented by *Record, *Seq and *Map.
type container interface {
	Kind() Kind
	nodeID() uint64
	// carriesDrafts is true for a container built during a produce call that
	// holds drafts, directly or in a nested container. Such a container is
	// rebuilt when the call finishes.
	carriesDrafts() bool
}

var (
	_ container = (*Record)(nil)
	_ container = (*Seq)(nil)
	_ container = (*Map)(nil)
)

// nextNodeID hands out container identities. The change tracker is keyed by
// them.
var nextNodeID atomic.Uint64

// holdsDrafts reports whether v is a draft or a container carrying drafts.
func holdsDrafts(v any) bool {
	switch t := v.(type) {
	case Draft:
		return true
	case container:
		return t.carriesDrafts()
	}
	return false
}

// Field is a key/value pair used to construct a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an immutable record keyed by strings. Iteration follows insertion
// order.
type Record struct {
	id     uint64
	drafts bool
	fields *ordered.Map[string, any]
}

// NewRecord returns a record holding fields. A later field with the same key
// overwrites an earlier one in place.
func NewRecord(fields ...Field) *Record {
	m := ordered.New[string, any](len(fields))
	drafts := false
	for _, f := range fields {
		m.Put(f.Key, f.Value)
		drafts = drafts || holdsDrafts(f.Value)
	}
	return makeRecord(m, drafts)
}

func makeRecord(m *ordered.Map[string, any], drafts bool) *Record {
	return &Record{id: nextNodeID.Add(1), drafts: drafts, fields: m}
}

// Kind implements container.
func (r *Record) Kind() Kind { return KindRecord }

func (r *Record) nodeID() uint64      { return r.id }
func (r *Record) carriesDrafts() bool { return r != nil && r.drafts }

// Len returns the number of fields.
func (r *Record) Len() int { return r.fields.Len() }

// Get returns the value of the field key.
func (r *Record) Get(key string) (any, bool) { return r.fields.Get(key) }

// Has reports whether the field key is present.
func (r *Record) Has(key string) bool { return r.fields.Has(key) }

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string { return r.fields.Keys() }

// All iterates over the fields in insertion order.
func (r *Record) All() iter.Seq2[string, any] { return r.fields.All() }

// Record returns the field key if it holds a *Record, and nil otherwise.
func (r *Record) Record(key string) *Record {
	v, _ := r.fields.Get(key)
	res, _ := v.(*Record)
	return res
}

// Seq returns the field key if it holds a *Seq, and nil otherwise.
func (r *Record) Seq(key string) *Seq {
	v, _ := r.fields.Get(key)
	res, _ := v.(*Seq)
	return res
}

// Map returns the field key if it holds a *Map, and nil otherwise.
func (r *Record) Map(key string) *Map {
	v, _ := r.fields.Get(key)
	res, _ := v.(*Map)
	return res
}

// Seq is an immutable ordered sequence.
type Seq struct {
	id     uint64
	drafts bool
	items  []any
}

// NewSeq returns a sequence holding a copy of items.
func NewSeq(items ...any) *Seq {
	drafts := false
	for _, v := range items {
		if holdsDrafts(v) {
			drafts = true
			break
		}
	}
	return makeSeq(append([]any(nil), items...), drafts)
}

// makeSeq takes ownership of items.
func makeSeq(items []any, drafts bool) *Seq {
	return &Seq{id: nextNodeID.Add(1), drafts: drafts, items: items}
}

// Kind implements container.
func (s *Seq) Kind() Kind { return KindSeq }

func (s *Seq) nodeID() uint64      { return s.id }
func (s *Seq) carriesDrafts() bool { return s != nil && s.drafts }

// Len returns the number of elements.
func (s *Seq) Len() int { return len(s.items) }

// At returns the i'th element. It panics if i is out of range.
func (s *Seq) At(i int) any { return s.items[i] }

// Values returns a copy of the elements.
func (s *Seq) Values() []any { return append([]any(nil), s.items...) }

// All iterates over the elements in order.
func (s *Seq) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Record returns the i'th element if it is a *Record, and nil otherwise.
func (s *Seq) Record(i int) *Record {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	res, _ := s.items[i].(*Record)
	return res
}

// Seq returns the i'th element if it is a *Seq, and nil otherwise.
func (s *Seq) Seq(i int) *Seq {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	res, _ := s.items[i].(*Seq)
	return res
}

// Map returns the i'th element if it is a *Map, and nil otherwise.
func (s *Seq) Map(i int) *Map {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	res, _ := s.items[i].(*Map)
	return res
}

// Entry is a key/value pair used to construct a Map.
type Entry struct {
	Key   any
	Value any
}

// Map is an immutable associative map. Keys may be of any comparable type and
// are compared the way Go map keys are; containers used as keys compare by
// identity. Iteration follows insertion order.
type Map struct {
	id      uint64
	drafts  bool
	entries *ordered.Map[any, any]
}

// NewMap returns a map holding entries. A later entry with an equal key
// overwrites an earlier one in place. NewMap panics if a key is not
// comparable.
func NewMap(entries ...Entry) *Map {
	m := ordered.New[any, any](len(entries))
	drafts := false
	for _, e := range entries {
		m.Put(e.Key, e.Value)
		drafts = drafts || holdsDrafts(e.Value)
	}
	return makeMap(m, drafts)
}

func makeMap(m *ordered.Map[any, any], drafts bool) *Map {
	return &Map{id: nextNodeID.Add(1), drafts: drafts, entries: m}
}

// Kind implements container.
func (m *Map) Kind() Kind { return KindMap }

func (m *Map) nodeID() uint64      { return m.id }
func (m *Map) carriesDrafts() bool { return m != nil && m.drafts }

// Len returns the number of entries.
func (m *Map) Len() int { return m.entries.Len() }

// Get returns the value stored under key.
func (m *Map) Get(key any) (any, bool) { return m.entries.Get(key) }

// Has reports whether key is present.
func (m *Map) Has(key any) bool { return m.entries.Has(key) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any { return m.entries.Keys() }

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[any, any] { return m.entries.All() }

// Record returns the value under key if it is a *Record, and nil otherwise.
func (m *Map) Record(key any) *Record {
	v, _ := m.entries.Get(key)
	res, _ := v.(*Record)
	return res
}

// Seq returns the value under key if it is a *Seq, and nil otherwise.
func (m *Map) Seq(key any) *Seq {
	v, _ := m.entries.Get(key)
	res, _ := v.(*Seq)
	return res
}

// Map returns the value under key if it is a *Map, and nil otherwise.
func (m *Map) Map(key any) *Map {
	v, _ := m.entries.Get(key)
	res, _ := v.(*Map)
	return res
}
