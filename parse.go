// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"strconv"

	"github.com/cockroachdb/draft/internal/strparse"
	"github.com/cockroachdb/errors"
)

// ParseValue parses the debug format written by Format:
//
//	{title: "ship", tags: ["a", "b"], meta: map["17": 1, 3: nil]}
//
// Record keys may be bare words or quoted strings. Scalars are nil, true,
// false, ints, float64s and quoted strings. Drafts have no textual form.
func ParseValue(s string) (_ any, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	p := strparse.MakeParser("{}[]:,", s)
	v := parseValue(&p)
	if !p.Done() {
		p.Errf("unexpected trailing input %q", p.Remaining())
	}
	return v, nil
}

// MustParseValue is like ParseValue but panics on error.
func MustParseValue(s string) any {
	v, err := ParseValue(s)
	if err != nil {
		panic(errors.Wrap(err, "draft"))
	}
	return v
}

func parseValue(p *strparse.Parser) any {
	switch p.Peek() {
	case "{":
		p.Next()
		var fields []Field
		for p.Peek() != "}" {
			if len(fields) > 0 {
				p.Expect(",")
			}
			key := p.Next()
			if strparse.IsQuoted(key) {
				var err error
				if key, err = strconv.Unquote(key); err != nil {
					p.Errf("%v", err)
				}
			}
			p.Expect(":")
			fields = append(fields, Field{Key: key, Value: parseValue(p)})
		}
		p.Expect("}")
		return NewRecord(fields...)
	case "[":
		p.Next()
		var items []any
		for p.Peek() != "]" {
			if len(items) > 0 {
				p.Expect(",")
			}
			items = append(items, parseValue(p))
		}
		p.Expect("]")
		return NewSeq(items...)
	case "map":
		p.Next()
		p.Expect("[")
		var entries []Entry
		for p.Peek() != "]" {
			if len(entries) > 0 {
				p.Expect(",")
			}
			k := parseValue(p)
			p.Expect(":")
			entries = append(entries, Entry{Key: k, Value: parseValue(p)})
		}
		p.Expect("]")
		return NewMap(entries...)
	}
	return p.Scalar()
}
