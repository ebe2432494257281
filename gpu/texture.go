// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// DepthTexture is a depth buffer texture with a default view of it.
type DepthTexture struct {
	// Size of the texture in pixels.
	Size image.Point

	// Format of the texture, e.g., [DepthFormat].
	Format wgpu.TextureFormat

	// Texture in device memory.
	Texture Texture

	// View is the default view of Texture.
	View TextureView
}

// DepthTextureDescriptor returns the descriptor of a 2D depth texture of
// the given size and format, with a single mip level and sample, usable
// both as a render attachment and as a sampled texture binding.
func DepthTextureDescriptor(size image.Point, format wgpu.TextureFormat) *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	}
}

// NewDepthTexture creates a depth texture of the given size and
// format on the device, and a view of it.
func NewDepthTexture(dev Device, size image.Point, format wgpu.TextureFormat) (*DepthTexture, error) {
	tx, err := dev.CreateTexture(DepthTextureDescriptor(size, format))
	if err != nil {
		return nil, err
	}
	vw, err := tx.CreateView()
	if err != nil {
		tx.Release()
		return nil, err
	}
	return &DepthTexture{Size: size, Format: format, Texture: tx, View: vw}, nil
}

// Release frees the view and then the texture.
func (dt *DepthTexture) Release() {
	if dt.View != nil {
		dt.View.Release()
		dt.View = nil
	}
	if dt.Texture != nil {
		dt.Texture.Release()
		dt.Texture = nil
	}
}
