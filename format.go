// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import "github.com/cockroachdb/redact"

// The debug format prints records as {key: value, ...}, sequences as
// [value, ...] and maps as map[key: value, ...]. Strings are quoted.

// String implements fmt.Stringer.
func (r *Record) String() string { return redact.StringWithoutMarkers(r) }

// SafeFormat implements redact.SafeFormatter. Field values are user data and
// are redacted.
func (r *Record) SafeFormat(w redact.SafePrinter, _ rune) { formatValue(w, r) }

// String implements fmt.Stringer.
func (s *Seq) String() string { return redact.StringWithoutMarkers(s) }

// SafeFormat implements redact.SafeFormatter.
func (s *Seq) SafeFormat(w redact.SafePrinter, _ rune) { formatValue(w, s) }

// String implements fmt.Stringer.
func (m *Map) String() string { return redact.StringWithoutMarkers(m) }

// SafeFormat implements redact.SafeFormatter.
func (m *Map) SafeFormat(w redact.SafePrinter, _ rune) { formatValue(w, m) }

// Format returns the debug representation of any value.
func Format(v any) string {
	return redact.Sprintfn(func(w redact.SafePrinter) {
		formatValue(w, v)
	}).StripMarkers()
}

func formatValue(w redact.SafePrinter, v any) {
	switch t := v.(type) {
	case nil:
		w.SafeString("nil")
	case *Record:
		if t == nil {
			w.SafeString("nil")
			return
		}
		w.SafeRune('{')
		i := 0
		for k, fv := range t.All() {
			if i > 0 {
				w.SafeString(", ")
			}
			w.Print(k)
			w.SafeString(": ")
			formatValue(w, fv)
			i++
		}
		w.SafeRune('}')
	case *Seq:
		if t == nil {
			w.SafeString("nil")
			return
		}
		w.SafeRune('[')
		for i, ev := range t.items {
			if i > 0 {
				w.SafeString(", ")
			}
			formatValue(w, ev)
		}
		w.SafeRune(']')
	case *Map:
		if t == nil {
			w.SafeString("nil")
			return
		}
		w.SafeString("map[")
		i := 0
		for k, ev := range t.All() {
			if i > 0 {
				w.SafeString(", ")
			}
			formatValue(w, k)
			w.SafeString(": ")
			formatValue(w, ev)
			i++
		}
		w.SafeRune(']')
	case Draft:
		w.Printf("%s draft", t.Kind())
	case string:
		w.Printf("%q", t)
	default:
		w.Print(t)
	}
}
