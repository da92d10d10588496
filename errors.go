// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import "github.com/cockroachdb/errors"

var (
	// ErrRevokedDraft is raised when a draft is used after the produce call (or
	// session) that owns it has completed.
	ErrRevokedDraft = errors.New("draft: draft used after its produce call completed")

	// ErrForeignDraft is raised when a draft owned by one produce call is stored
	// into, or returned from, a different call.
	ErrForeignDraft = errors.New("draft: draft belongs to a different produce call")

	// ErrCycle is raised when a draft is stored, directly or indirectly, inside
	// itself.
	ErrCycle = errors.New("draft: value contains itself")

	// ErrKindMismatch is raised by typed accessors when the value at a key or
	// index is not of the requested kind.
	ErrKindMismatch = errors.New("draft: value is of the wrong kind")

	// ErrNotFound is raised by typed accessors when a key is absent.
	ErrNotFound = errors.New("draft: key not found")

	// ErrIndexOutOfRange is raised when a sequence index is out of range.
	ErrIndexOutOfRange = errors.New("draft: index out of range")

	// ErrModifiedAndReplaced is returned when a recipe both modified its draft
	// and returned a replacement value.
	ErrModifiedAndReplaced = errors.New("draft: recipe modified its draft and returned a replacement")

	// ErrDraftBase is returned when a draft is passed as the base of a produce
	// call.
	ErrDraftBase = errors.New("draft: base value must not be a draft")

	// ErrSessionDone is returned when a session is finished twice.
	ErrSessionDone = errors.New("draft: session already finished")

	// ErrInvalidPatch is returned by ApplyPatches for a patch whose path or
	// operation does not fit the value it is applied to.
	ErrInvalidPatch = errors.New("draft: invalid patch")
)

// accessError is the panic payload used by draft accessors. A produce call
// recovers it and returns the wrapped error; outside a produce call it
// surfaces as an ordinary panic.
type accessError struct {
	err error
}

func (e accessError) Error() string { return e.err.Error() }

func (e accessError) Unwrap() error { return e.err }

func throw(err error) {
	panic(accessError{err: err})
}

func throwf(sentinel error, format string, args ...interface{}) {
	throw(errors.Wrapf(sentinel, format, args...))
}
