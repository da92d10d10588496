// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// splitPath parses "/a/0/17" into its segments. "/" is the root.
func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func atoi(t testing.TB, s string) int {
	t.Helper()
	i, err := strconv.Atoi(s)
	require.NoError(t, err)
	return i
}

// child returns the value at seg inside d. Record fields are strings,
// sequence indexes are ints and map keys are parsed with ParseValue.
func child(t testing.TB, d Draft, seg string) any {
	switch d := d.(type) {
	case *RecordDraft:
		return d.mustGet(seg)
	case *SeqDraft:
		return d.Get(atoi(t, seg))
	case *MapDraft:
		return d.mustGet(MustParseValue(seg))
	}
	t.Fatalf("unexpected draft %T", d)
	return nil
}

func lookup(t testing.TB, root Draft, segs []string) any {
	var cur any = root
	for _, seg := range segs {
		d, ok := cur.(Draft)
		if !ok {
			t.Fatalf("%q: %s is not a container", seg, Format(cur))
		}
		cur = child(t, d, seg)
	}
	return cur
}

func resolve(t testing.TB, root Draft, segs []string) Draft {
	d, ok := lookup(t, root, segs).(Draft)
	if !ok {
		t.Fatalf("/%s is not a container", strings.Join(segs, "/"))
	}
	return d
}

// runRecipe interprets the commands of a produce block against the root
// draft:
//
//	get <path>
//	set <path> <value>
//	delete <path>
//	append|prepend <path> <value>
//	insert <path> <value>
//	splice <path> <start> <count> [<seq of items>]
//	pop|shift <path>
//	retain <path> <field> <value>
//	replace <value>
//	replace-path <path>
//	fail <message>
func runRecipe(t testing.TB, input string) Recipe {
	return func(root Draft) (Result, error) {
		res := Keep
		for _, line := range crstrings.Lines(input) {
			parts := strings.SplitN(line, " ", 3)
			cmd := parts[0]
			var segs []string
			var arg string
			if len(parts) > 1 {
				segs = splitPath(parts[1])
			}
			if len(parts) > 2 {
				arg = parts[2]
			}
			switch cmd {
			case "get":
				lookup(t, root, segs)
			case "set", "delete", "insert":
				parent := resolve(t, root, segs[:len(segs)-1])
				last := segs[len(segs)-1]
				switch d := parent.(type) {
				case *RecordDraft:
					if cmd == "delete" {
						d.Delete(last)
					} else {
						d.Set(last, MustParseValue(arg))
					}
				case *SeqDraft:
					switch cmd {
					case "delete":
						d.RemoveAt(atoi(t, last))
					case "insert":
						d.Insert(atoi(t, last), MustParseValue(arg))
					default:
						d.Set(atoi(t, last), MustParseValue(arg))
					}
				case *MapDraft:
					if cmd == "delete" {
						d.Delete(MustParseValue(last))
					} else {
						d.Set(MustParseValue(last), MustParseValue(arg))
					}
				}
			case "append":
				resolve(t, root, segs).(*SeqDraft).Append(MustParseValue(arg))
			case "prepend":
				resolve(t, root, segs).(*SeqDraft).Prepend(MustParseValue(arg))
			case "splice":
				args := strings.SplitN(arg, " ", 3)
				var items []any
				if len(args) > 2 {
					items = MustParseValue(args[2]).(*Seq).Values()
				}
				resolve(t, root, segs).(*SeqDraft).Splice(atoi(t, args[0]), atoi(t, args[1]), items...)
			case "pop":
				resolve(t, root, segs).(*SeqDraft).Pop()
			case "shift":
				resolve(t, root, segs).(*SeqDraft).Shift()
			case "retain":
				args := strings.SplitN(arg, " ", 2)
				want := MustParseValue(args[1])
				resolve(t, root, segs).(*SeqDraft).Retain(func(v any) bool {
					r, ok := v.(*RecordDraft)
					if !ok {
						return false
					}
					fv, _ := r.Get(args[0])
					return Equal(fv, want)
				})
			case "replace":
				res = Replace(MustParseValue(strings.TrimPrefix(line, "replace ")))
			case "replace-path":
				res = Replace(lookup(t, root, segs))
			case "fail":
				return Keep, errors.New(strings.TrimPrefix(line, "fail "))
			default:
				t.Fatalf("unknown command %q", cmd)
			}
		}
		return res, nil
	}
}

// sharing reports, for every container of res, whether it is the container
// found at the same path in base. Shared subtrees are not descended into.
func sharing(buf *strings.Builder, res, base any, path Path) {
	if _, ok := res.(container); !ok {
		return
	}
	if identical(res, base) {
		fmt.Fprintf(buf, "%s: shared\n", path)
		return
	}
	fmt.Fprintf(buf, "%s: new\n", path)
	switch r := res.(type) {
	case *Record:
		b, _ := base.(*Record)
		for k, v := range r.All() {
			var bv any
			if b != nil {
				bv, _ = b.Get(k)
			}
			sharing(buf, v, bv, path.child(k))
		}
	case *Seq:
		b, _ := base.(*Seq)
		for i, v := range r.All() {
			var bv any
			if b != nil && i < b.Len() {
				bv = b.At(i)
			}
			sharing(buf, v, bv, path.child(i))
		}
	case *Map:
		b, _ := base.(*Map)
		for k, v := range r.All() {
			var bv any
			if b != nil {
				bv, _ = b.Get(k)
			}
			sharing(buf, v, bv, path.child(k))
		}
	}
}

func TestProduceDataDriven(t *testing.T) {
	var base any
	datadriven.RunTest(t, "testdata/produce", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "define":
			var err error
			base, err = ParseValue(d.Input)
			if err != nil {
				return fmt.Sprintf("error: %v", err)
			}
			return Format(base)

		case "produce":
			var info ProduceInfo
			var ends int
			opts := &Options{
				EventListener: &EventListener{
					ProduceEnd: func(i ProduceInfo) {
						info = i
						ends++
					},
				},
			}
			d.MaybeScanArgs(t, "seq-patch-limit", &opts.SeqPatchLimit)
			p := New(opts)

			before := Format(base)
			res, patches, inverse, err := p.ProduceWithPatches(base, runRecipe(t, d.Input))
			require.Equal(t, 1, ends)
			// The base is never written to, whatever the outcome.
			require.Equal(t, before, Format(base))
			if err != nil {
				return fmt.Sprintf("error: %v\nbase: %s", err, before)
			}

			// Patches replay the change in both directions. The replays run on
			// their own producer so info describes the recipe's call.
			replay := New(nil)
			fwd, err := replay.ApplyPatches(base, patches)
			require.NoError(t, err)
			require.True(t, Equal(res, fwd), "forward patches produced %s", Format(fwd))
			back, err := replay.ApplyPatches(res, inverse)
			require.NoError(t, err)
			require.True(t, Equal(base, back), "inverse patches produced %s", Format(back))

			var buf strings.Builder
			fmt.Fprintf(&buf, "%s\n", Format(res))
			if !info.Replaced {
				sharing(&buf, res, base, Path{})
			}
			fmt.Fprintf(&buf, "drafts: %d, copies: %d, modified: %t", info.Drafts, info.Copies, info.Modified)
			if info.Replaced {
				buf.WriteString(", replaced")
			}
			buf.WriteString("\n")
			if d.HasArg("patches") {
				buf.WriteString("patches:\n")
				for _, p := range patches {
					fmt.Fprintf(&buf, "  %s\n", p)
				}
				buf.WriteString("inverse:\n")
				for _, p := range inverse {
					fmt.Fprintf(&buf, "  %s\n", p)
				}
			}
			if d.HasArg("commit") {
				base = res
			}
			return buf.String()

		default:
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
	})
}
