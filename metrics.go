// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package draft

import (
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/redact"
)

// Metrics holds cumulative counters for a Producer.
type Metrics struct {
	// Produced is the number of calls that produced a value.
	Produced int64
	// Failed is the number of calls that failed or were aborted.
	Failed int64
	// Replaced is the number of successful calls whose recipe returned a
	// replacement value.
	Replaced int64
	// Drafts and Copies total ProduceInfo.Drafts and ProduceInfo.Copies over
	// all calls.
	Drafts int64
	Copies int64
}

// Metrics returns a snapshot of the producer's counters.
func (p *Producer) Metrics() Metrics {
	return Metrics{
		Produced: p.metrics.produced.Load(),
		Failed:   p.metrics.failed.Load(),
		Replaced: p.metrics.replaced.Load(),
		Drafts:   p.metrics.drafts.Load(),
		Copies:   p.metrics.copies.Load(),
	}
}

func (p *Producer) recordEnd(info ProduceInfo) {
	if info.Err != nil {
		p.metrics.failed.Add(1)
	} else {
		p.metrics.produced.Add(1)
		if info.Replaced {
			p.metrics.replaced.Add(1)
		}
	}
	p.metrics.drafts.Add(int64(info.Drafts))
	p.metrics.copies.Add(int64(info.Copies))
	if p.opts.LatencyHistogram != nil {
		p.opts.LatencyHistogram.Observe(float64(info.Duration))
	}
	p.opts.EventListener.ProduceEnd(info)
}

func (m Metrics) String() string {
	return redact.StringWithoutMarkers(m)
}

// SafeFormat implements redact.SafeFormatter.
func (m Metrics) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("produced: %s  failed: %s  replaced: %s  drafts: %s  copies: %s",
		crhumanize.Count(uint64(m.Produced), crhumanize.Compact),
		crhumanize.Count(uint64(m.Failed), crhumanize.Compact),
		crhumanize.Count(uint64(m.Replaced), crhumanize.Compact),
		crhumanize.Count(uint64(m.Drafts), crhumanize.Compact),
		crhumanize.Count(uint64(m.Copies), crhumanize.Compact),
	)
}
