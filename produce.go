// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Result is what a Recipe returns alongside its error: either Keep, to build
// the result from the draft, or Replace(v), to discard the draft and return v.
type Result struct {
	replace bool
	value   any
}

// Keep tells Produce to build the result from the draft.
var Keep = Result{}

// Replace tells Produce to discard the draft and return v instead. v may hold
// drafts of the same call; they are finalized like the draft itself would be.
// Returning Replace after modifying the draft fails with
// ErrModifiedAndReplaced. Replace of the root draft is the same as Keep.
func Replace(v any) Result {
	return Result{replace: true, value: v}
}

// Replaced reports whether r replaces the draft.
func (r Result) Replaced() bool { return r.replace }

// Recipe mutates d, or computes a replacement. d is nil when the base is a
// scalar. A non-nil error fails the call: it is returned unchanged and no
// value is produced.
type Recipe func(d Draft) (Result, error)

// Producer runs produce calls with a fixed set of Options. A Producer may be
// used from multiple goroutines; every call keeps its drafts to itself.
type Producer struct {
	opts    Options
	metrics struct {
		produced atomic.Int64
		failed   atomic.Int64
		replaced atomic.Int64
		drafts   atomic.Int64
		copies   atomic.Int64
	}
}

// New returns a Producer. opts may be nil.
func New(opts *Options) *Producer {
	p := &Producer{}
	if opts != nil {
		p.opts = *opts
	}
	p.opts.EnsureDefaults()
	return p
}

// Produce calls recipe with a draft of base and returns the next value.
// Subtrees the recipe did not write to are shared with base; every container
// on a written path, up to the root, is a new value. If recipe writes
// nothing, the result is base itself.
//
// If recipe returns an error, or panics, no value is produced, base is
// unaffected and the draft is revoked. The error is returned as is; a panic
// is re-raised.
func (p *Producer) Produce(base any, recipe Recipe) (any, error) {
	res, _, _, err := p.produce(base, recipe, false /* withPatches */)
	return res, err
}

// ProduceWithPatches is like Produce and also returns the patches that turn
// base into the result, and the inverse patches that turn the result back
// into base.
func (p *Producer) ProduceWithPatches(
	base any, recipe Recipe,
) (result any, patches, inverse []Patch, err error) {
	return p.produce(base, recipe, true /* withPatches */)
}

func (p *Producer) produce(
	base any, recipe Recipe, withPatches bool,
) (any, []Patch, []Patch, error) {
	s, err := p.Begin(base)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := s.run(recipe)
	if err != nil {
		s.fail(err, false /* panicked */)
		return nil, nil, nil, err
	}
	return s.finish(res, withPatches)
}

// defaultProducer backs the package-level functions.
var defaultProducer = New(nil)

// Produce runs recipe over base with default options. See
// Producer.Produce.
func Produce(base any, recipe Recipe) (any, error) {
	return defaultProducer.Produce(base, recipe)
}

// ProduceWithPatches runs recipe over base with default options. See
// Producer.ProduceWithPatches.
func ProduceWithPatches(base any, recipe Recipe) (any, []Patch, []Patch, error) {
	return defaultProducer.ProduceWithPatches(base, recipe)
}

// ApplyPatches applies patches to base with default options.
func ApplyPatches(base any, patches []Patch) (any, error) {
	return defaultProducer.ApplyPatches(base, patches)
}

// Begin starts a Session over base with default options.
func Begin(base any) (*Session, error) {
	return defaultProducer.Begin(base)
}

// ProduceRecord is Produce for a record base and an in-place recipe.
func (p *Producer) ProduceRecord(base *Record, fn func(d *RecordDraft) error) (*Record, error) {
	if base == nil {
		return nil, errors.New("draft: nil record base")
	}
	res, err := p.Produce(base, func(d Draft) (Result, error) {
		return Keep, fn(d.(*RecordDraft))
	})
	if err != nil {
		return nil, err
	}
	return res.(*Record), nil
}

// ProduceSeq is Produce for a sequence base and an in-place recipe.
func (p *Producer) ProduceSeq(base *Seq, fn func(d *SeqDraft) error) (*Seq, error) {
	if base == nil {
		return nil, errors.New("draft: nil seq base")
	}
	res, err := p.Produce(base, func(d Draft) (Result, error) {
		return Keep, fn(d.(*SeqDraft))
	})
	if err != nil {
		return nil, err
	}
	return res.(*Seq), nil
}

// ProduceMap is Produce for a map base and an in-place recipe.
func (p *Producer) ProduceMap(base *Map, fn func(d *MapDraft) error) (*Map, error) {
	if base == nil {
		return nil, errors.New("draft: nil map base")
	}
	res, err := p.Produce(base, func(d Draft) (Result, error) {
		return Keep, fn(d.(*MapDraft))
	})
	if err != nil {
		return nil, err
	}
	return res.(*Map), nil
}

// ProduceRecord runs Producer.ProduceRecord with default options.
func ProduceRecord(base *Record, fn func(d *RecordDraft) error) (*Record, error) {
	return defaultProducer.ProduceRecord(base, fn)
}

// ProduceSeq runs Producer.ProduceSeq with default options.
func ProduceSeq(base *Seq, fn func(d *SeqDraft) error) (*Seq, error) {
	return defaultProducer.ProduceSeq(base, fn)
}

// ProduceMap runs Producer.ProduceMap with default options.
func ProduceMap(base *Map, fn func(d *MapDraft) error) (*Map, error) {
	return defaultProducer.ProduceMap(base, fn)
}

// Curry turns a recipe that takes an extra argument into a function of the
// base and that argument, so one recipe can be mapped over many bases.
func Curry[A any](recipe func(d Draft, arg A) (Result, error)) func(base any, arg A) (any, error) {
	return func(base any, arg A) (any, error) {
		return Produce(base, func(d Draft) (Result, error) {
			return recipe(d, arg)
		})
	}
}
