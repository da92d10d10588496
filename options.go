// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/draft/internal/base"
	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger = base.DefaultLogger

// defaultSeqPatchLimit is the default for Options.SeqPatchLimit.
const defaultSeqPatchLimit = 1024

// Options holds the optional parameters of a Producer. The zero value is
// usable once EnsureDefaults has run.
type Options struct {
	// Logger is used by the default event listener. Defaults to
	// DefaultLogger.
	Logger Logger

	// EventListener is notified as produce calls begin and end. Nil hooks are
	// filled in by EnsureDefaults.
	EventListener *EventListener

	// SeqPatchLimit caps the number of index-level patches generated for a
	// single sequence. A sequence whose change needs more is described by one
	// patch replacing the whole sequence. Zero selects the default (1024);
	// a negative value removes the cap.
	SeqPatchLimit int

	// LatencyHistogram, if set, observes the duration in nanoseconds of every
	// produce call, successful or not.
	LatencyHistogram prometheus.Histogram
}

// EnsureDefaults fills in default values for unset fields.
func (o *Options) EnsureDefaults() {
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	if o.EventListener == nil {
		o.EventListener = &EventListener{}
	}
	o.EventListener.EnsureDefaults(o.Logger)
	if o.SeqPatchLimit == 0 {
		o.SeqPatchLimit = defaultSeqPatchLimit
	}
}
