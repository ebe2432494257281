// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeMesh(t *testing.T) {
	verts, idx := CubeMesh()
	require.Len(t, verts, 24)
	require.Len(t, idx, 36)
	assert.Equal(t, uintptr(24), unsafe.Sizeof(Vertex{}))

	for _, v := range verts {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-6)
		// vertices are corners on the face of their normal
		assert.InDelta(t, 1, v.Pos.Dot(v.Normal), 1e-6)
		for i := range 3 {
			assert.InDelta(t, 1, abs(v.Pos[i]), 1e-6)
		}
	}
	for i := 0; i < len(idx); i += 3 {
		a, b, c := verts[idx[i]], verts[idx[i+1]], verts[idx[i+2]]
		n := b.Pos.Sub(a.Pos).Cross(c.Pos.Sub(a.Pos))
		assert.Greater(t, n.Dot(a.Normal), float32(0), "triangle %d is not counter-clockwise from outside", i/3)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
