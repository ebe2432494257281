// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "cogentcore.org/bootstrap/base/errors"

var (
	// ErrWindow is returned when the platform window cannot be created.
	ErrWindow = errors.New("gpu: window creation failed")

	// ErrSurface is returned when no presentation surface can be
	// created for the window.
	ErrSurface = errors.New("gpu: surface creation failed")

	// ErrNoAdapter is returned when no adapter compatible with
	// the surface is available.
	ErrNoAdapter = errors.New("gpu: no compatible adapter")

	// ErrDevice is returned when the adapter refuses the device request.
	ErrDevice = errors.New("gpu: device request failed")

	// ErrNoSurfaceFormats is returned when the surface reports
	// no supported formats, present modes or alpha modes for the adapter.
	ErrNoSurfaceFormats = errors.New("gpu: surface has no supported formats")

	// ErrMinimized is returned by [Context.AcquireFrame] while the
	// window has a zero dimension. The frame should be skipped.
	ErrMinimized = errors.New("gpu: window is minimized")

	// ErrSurfaceLost is returned by [Context.AcquireFrame] when the
	// surface texture cannot be acquired even after reconfiguring.
	ErrSurfaceLost = errors.New("gpu: surface texture unavailable")

	// ErrReleased is returned when using a Context after Release.
	ErrReleased = errors.New("gpu: context released")
)
