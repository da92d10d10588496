// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemLogger(t *testing.T) {
	var l InMemLogger
	l.Infof("produced %d values", 3)
	l.Errorf("failed: %s\n", "boom")
	require.Equal(t, "produced 3 values\nfailed: boom\n", l.String())
	require.Equal(t, []string{"produced 3 values", "failed: boom"}, l.Lines())
	require.Panics(t, func() { l.Fatalf("fatal") })
	require.Len(t, l.Lines(), 3)
	l.Reset()
	require.Equal(t, "", l.String())
	require.Empty(t, l.Lines())
}

func TestNoopLogger(t *testing.T) {
	var l NoopLogger
	l.Infof("ignored")
	l.Errorf("ignored")
	require.PanicsWithValue(t, "fatal 1", func() { l.Fatalf("fatal %d", 1) })
}
