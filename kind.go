// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import "github.com/cockroachdb/redact"

// Kind identifies the shape of a value.
type Kind uint8

const (
	// KindScalar is any value that is not a container. Scalars are opaque and
	// are never drafted.
	KindScalar Kind = iota
	// KindRecord is a *Record.
	KindRecord
	// KindSeq is a *Seq.
	KindSeq
	// KindMap is a *Map.
	KindMap
)

var kindNames = [...]string{
	KindScalar: "scalar",
	KindRecord: "record",
	KindSeq:    "seq",
	KindMap:    "map",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// SafeFormat implements redact.SafeFormatter.
func (k Kind) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(k.String()))
}

// KindOf returns the kind of v. Drafts report the kind of the container they
// draft.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case container:
		return t.Kind()
	case Draft:
		return t.Kind()
	default:
		return KindScalar
	}
}
