// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"time"

	"github.com/cockroachdb/redact"
)

// ProduceBeginInfo contains the info for a produce begin event.
type ProduceBeginInfo struct {
	// Kind is the kind of the base value.
	Kind Kind
}

func (i ProduceBeginInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i ProduceBeginInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("[produce] %s: begin", i.Kind)
}

// ProduceInfo contains the info for a produce end event.
type ProduceInfo struct {
	// Kind is the kind of the base value.
	Kind Kind
	// Drafts is the number of drafts created.
	Drafts int
	// Copies is the number of copy-on-write shadows created. A draft is
	// copied the first time it is written to; reads never copy.
	Copies   int
	Modified bool
	Replaced bool
	// Patches is the number of forward patches generated, if requested.
	Patches  int
	Duration time.Duration
	// Err is set if the call failed. Panicked is set if the failure was a
	// panic, which is re-raised after the event.
	Err      error
	Panicked bool
}

func (i ProduceInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i ProduceInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	if i.Err != nil {
		w.Printf("[produce] %s: failed: %s", i.Kind, i.Err)
		return
	}
	w.Printf("[produce] %s: %d drafts, %d copies", i.Kind, redact.Safe(i.Drafts), redact.Safe(i.Copies))
	switch {
	case i.Replaced:
		w.SafeString(", replaced")
	case i.Modified:
		w.SafeString(", modified")
	default:
		w.SafeString(", unchanged")
	}
	if i.Patches > 0 {
		w.Printf(", %d patches", redact.Safe(i.Patches))
	}
}

// EventListener contains a set of functions that will be invoked when
// produce calls begin and end. Hooks run synchronously on the calling
// goroutine.
type EventListener struct {
	// ProduceBegin is invoked after the root draft is created.
	ProduceBegin func(ProduceBeginInfo)

	// ProduceEnd is invoked once per call, after the result is finalized or
	// the call failed.
	ProduceEnd func(ProduceInfo)
}

// EnsureDefaults ensures that panics raised by recipes are logged to the
// specified logger if a handler for those events hasn't been otherwise
// specified. Ensure all handlers are non-nil so that we don't have to check
// for nil-ness before invoking.
func (l *EventListener) EnsureDefaults(logger Logger) {
	if l.ProduceBegin == nil {
		l.ProduceBegin = func(info ProduceBeginInfo) {}
	}
	if l.ProduceEnd == nil {
		if logger != nil {
			l.ProduceEnd = func(info ProduceInfo) {
				if info.Panicked {
					logger.Errorf("%s", info)
				}
			}
		} else {
			l.ProduceEnd = func(info ProduceInfo) {}
		}
	}
}

// MakeLoggingEventListener creates an EventListener that logs all events to
// the specified logger.
func MakeLoggingEventListener(logger Logger) EventListener {
	if logger == nil {
		logger = DefaultLogger{}
	}
	return EventListener{
		ProduceBegin: func(info ProduceBeginInfo) {
			logger.Infof("%s", info)
		},
		ProduceEnd: func(info ProduceInfo) {
			if info.Err != nil {
				logger.Errorf("%s", info)
				return
			}
			logger.Infof("%s", info)
		},
	}
}

// TeeEventListener wraps two EventListeners, forwarding all events to both.
func TeeEventListener(a, b EventListener) EventListener {
	a.EnsureDefaults(nil)
	b.EnsureDefaults(nil)
	return EventListener{
		ProduceBegin: func(info ProduceBeginInfo) {
			a.ProduceBegin(info)
			b.ProduceBegin(info)
		},
		ProduceEnd: func(info ProduceInfo) {
			a.ProduceEnd(info)
			b.ProduceEnd(info)
		},
	}
}
