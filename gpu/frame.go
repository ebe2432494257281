// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
)

// Frame is one surface texture acquired for rendering.
// The matching depth view is [Context.DepthTextureView].
// Call [Frame.Present] once rendering commands are submitted.
type Frame struct {
	// Texture is the surface texture, owned by the Frame.
	Texture Texture

	// View is the default view of Texture, owned by the Frame.
	View TextureView

	// Size of the frame in pixels.
	Size image.Point

	surface Surface
}

// AcquireFrame returns the next surface texture to render into.
// If the window size no longer matches the surface configuration,
// the Context is resized first, so a frame is never presented to a
// misconfigured surface. While the window has a zero dimension it
// returns [ErrMinimized], and the frame should just be skipped.
// If the surface texture cannot be acquired, the surface is
// reconfigured and the acquisition tried once more before
// returning [ErrSurfaceLost].
func (rc *Context) AcquireFrame() (*Frame, error) {
	if rc.released {
		return nil, ErrReleased
	}
	ws := rc.window.PhysicalSize()
	if ws.X <= 0 || ws.Y <= 0 {
		return nil, ErrMinimized
	}
	if ws != rc.size {
		rc.Resize(ws)
	}
	tx, err := rc.surface.CurrentTexture()
	if err != nil {
		Logger().Warn("gpu: reacquiring surface texture", "err", err)
		rc.configure()
		tx, err = rc.surface.CurrentTexture()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSurfaceLost, err)
		}
	}
	vw, err := tx.CreateView()
	if err != nil {
		tx.Release()
		return nil, fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}
	return &Frame{
		Texture: tx,
		View:    vw,
		Size:    rc.size,
		surface: rc.surface,
	}, nil
}

// Present shows the frame on the surface and releases the frame's
// texture and view. Calling it again does nothing.
func (fr *Frame) Present() {
	if fr.Texture == nil {
		return
	}
	fr.surface.Present()
	fr.Release()
}

// Release drops the frame without presenting it,
// e.g. when rendering failed.
func (fr *Frame) Release() {
	if fr.Texture == nil {
		return
	}
	fr.View.Release()
	fr.Texture.Release()
	fr.View = nil
	fr.Texture = nil
}
