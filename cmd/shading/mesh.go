// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the vertex buffer layout of the shader.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
}

// cubeFaces has the normal of each face, and two axes
// u, v in the face plane with u x v = normal.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// CubeMesh returns a cube of side 2 centered at the origin, with
// separate vertices per face so each face has its own normal.
// Triangles are counter-clockwise seen from outside.
func CubeMesh() ([]Vertex, []uint16) {
	verts := make([]Vertex, 0, 24)
	idx := make([]uint16, 0, 36)
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint16(len(verts))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			verts = append(verts, Vertex{Pos: n.Add(u.Mul(c[0])).Add(v.Mul(c[1])), Normal: n})
		}
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, idx
}
