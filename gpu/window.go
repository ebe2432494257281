// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// WindowOptions are the options for [EventLoop.NewWindow].
type WindowOptions struct {
	Title string

	// Size in screen coordinates.
	Size image.Point
}

// Window is a platform window that a [Surface] can present to.
type Window interface {
	// PhysicalSize returns the current size of the drawable area in pixels.
	PhysicalSize() image.Point

	// SurfaceDescriptor returns the platform handles a driver
	// needs to create a surface for this window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SetResizeCallback sets the function called from [EventLoop.PollEvents]
	// with the new physical size whenever the window is resized.
	SetResizeCallback(fn func(size image.Point))

	// ShouldClose returns true once the user has asked to close the window.
	ShouldClose() bool

	Destroy()
}

// EventLoop is the platform window system: it makes windows
// and delivers their events.
type EventLoop interface {
	NewWindow(opts *WindowOptions) (Window, error)

	// PollEvents processes pending events, invoking window callbacks.
	PollEvents()

	// Terminate shuts down the window system. Call it last, after
	// all windows are destroyed.
	Terminate()
}
