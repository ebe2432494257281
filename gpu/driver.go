// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/cogentcore/webgpu/wgpu"

// Instance is the entry point to the graphics driver, from which
// surfaces and adapters are obtained.
type Instance interface {
	// CreateSurface creates a presentation surface for the window.
	// The surface borrows the window's platform handle, so it must
	// be released before the window is destroyed.
	CreateSurface(win Window) (Surface, error)

	// RequestAdapter returns an adapter matching the given options.
	RequestAdapter(opts *AdapterOptions) (Adapter, error)

	Release()
}

// InstanceFunc creates an [Instance] restricted to the given backends.
type InstanceFunc func(backends Backends) (Instance, error)

// AdapterOptions are the options for [Instance.RequestAdapter].
type AdapterOptions struct {

	// CompatibleSurface, if set, requires an adapter that can present to it.
	CompatibleSurface Surface

	// PowerPreference selects between low power and high performance
	// adapters. The zero value leaves the choice to the driver.
	PowerPreference wgpu.PowerPreference

	// ForceFallbackAdapter requests the software fallback adapter.
	ForceFallbackAdapter bool
}

// Adapter is one available physical or virtual GPU.
type Adapter interface {
	// RequestDevice returns a logical device for this adapter.
	RequestDevice(desc *wgpu.DeviceDescriptor) (Device, error)

	Release()
}

// Device is a logical GPU device.
type Device interface {
	// Queue returns the command submission queue of the device.
	Queue() Queue

	// CreateTexture allocates a texture in device memory.
	CreateTexture(desc *wgpu.TextureDescriptor) (Texture, error)

	Release()
}

// Queue is the command submission channel of a [Device].
type Queue interface {
	Release()
}

// Surface is a presentable rendering target bound to a window.
type Surface interface {
	// Capabilities returns what the surface supports with the given adapter.
	Capabilities(ad Adapter) SurfaceCapabilities

	// Configure (re)binds the surface to the device with the given
	// configuration. It must be called again whenever the size changes.
	Configure(ad Adapter, dev Device, config *wgpu.SurfaceConfiguration)

	// CurrentTexture returns the next texture to render into.
	CurrentTexture() (Texture, error)

	// Present shows the current texture.
	Present()

	Release()
}

// Texture is a texture in device memory.
type Texture interface {
	// CreateView returns a default view of the whole texture.
	CreateView() (TextureView, error)

	Release()
}

// TextureView is a view of a [Texture], as used for
// render attachments and bindings.
type TextureView interface {
	Release()
}
