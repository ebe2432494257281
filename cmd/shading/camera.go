// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// openGLToWGPU maps OpenGL clip space depth, -1..1,
// to the WebGPU range of 0..1.
var openGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera is a perspective camera looking at a target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	// FOV is the vertical field of view in degrees.
	FOV float32

	Near float32
	Far  float32

	// Aspect is the width / height ratio of the viewport.
	Aspect float32
}

// NewCamera returns a camera looking down at the origin
// for a viewport of the given size.
func NewCamera(size image.Point) *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 1.5, 4},
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    45,
		Near:   0.1,
		Far:    100,
		Aspect: 1,
	}
	c.SetSize(size)
	return c
}

// SetSize updates the aspect ratio for the given viewport size.
// Sizes with a zero height are ignored.
func (c *Camera) SetSize(size image.Point) {
	if size.Y <= 0 {
		return
	}
	c.Aspect = float32(size.X) / float32(size.Y)
}

// ViewProjection returns the combined view and projection
// matrix, in WebGPU clip space.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	return openGLToWGPU.Mul4(proj).Mul4(view)
}

// LightDirection returns the unit direction toward a light
// orbiting above the origin, after t seconds at the given
// angular speed.
func LightDirection(t, speed float32) mgl32.Vec3 {
	a := t * speed
	return mgl32.Vec3{math32.Cos(a), 0.75, math32.Sin(a)}.Normalize()
}

// Uniforms is the uniform buffer layout of the shader.
type Uniforms struct {
	ViewProj mgl32.Mat4
	Model    mgl32.Mat4

	// Light has the direction toward the light in xyz,
	// and the ambient level in w.
	Light mgl32.Vec4

	Color mgl32.Vec4
}

// cubeColor is the base color of the cube.
var cubeColor = mgl32.Vec4{0.9, 0.45, 0.2, 1}

// NewUniforms returns the uniforms after elapsed seconds.
func NewUniforms(cam *Camera, cfg *Config, elapsed float32) Uniforms {
	model := mgl32.HomogRotate3DY(elapsed * cfg.Spin).Mul4(mgl32.HomogRotate3DX(0.4))
	return Uniforms{
		ViewProj: cam.ViewProjection(),
		Model:    model,
		Light:    LightDirection(elapsed, cfg.LightSpeed).Vec4(cfg.Ambient),
		Color:    cubeColor,
	}
}
