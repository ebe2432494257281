// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"context"
	"fmt"
	"image"

	"cogentcore.org/bootstrap/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Context owns a window, the surface presenting to it, the device
// and queue used to render, and a depth texture sized to match.
//
// The depth texture is created on first use by [Context.DepthTextureView].
// Once it exists, every [Context.Resize] recreates it at the new size
// right away, so a frame never sees a stale depth buffer.
type Context struct {
	// window is destroyed last, after the surface that borrows its handle.
	window   Window
	instance Instance
	surface  Surface
	adapter  Adapter
	device   Device
	queue    Queue

	// config is the current surface configuration; its Width and Height
	// always match size.
	config wgpu.SurfaceConfiguration

	// size is the physical size of the window in pixels.
	size image.Point

	// depthFormat is fixed at [DepthFormat].
	depthFormat wgpu.TextureFormat

	// depth is nil until first requested.
	depth *DepthTexture

	released bool
}

// Option configures how [NewContext] reaches the driver.
type Option func(o *options)

type options struct {
	newInstance InstanceFunc
}

// WithInstance sets the function used to create the driver [Instance].
// The default is [NewWGPUInstance].
func WithInstance(fn InstanceFunc) Option {
	return func(o *options) {
		o.newInstance = fn
	}
}

// NewContext opens a window on the given event loop and negotiates
// everything needed to render into it: a surface for the window,
// a compatible adapter, a device and queue with default limits, and
// an initial surface configuration. It blocks until negotiation is
// done. A nil cfg uses [NewConfig].
//
// Any failure leaves nothing allocated and is returned wrapping one of
// [ErrWindow], [ErrSurface], [ErrNoAdapter], [ErrDevice] or
// [ErrNoSurfaceFormats], or the error of ctx if it is done first.
// There is no fallback for these: the application cannot render.
func NewContext(ctx context.Context, loop EventLoop, cfg *Config, opts ...Option) (*Context, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	o := options{newInstance: NewWGPUInstance}
	for _, opt := range opts {
		opt(&o)
	}
	rc := &Context{depthFormat: DepthFormat}
	if err := rc.init(ctx, loop, cfg, &o); err != nil {
		rc.Release()
		return nil, err
	}
	return rc, nil
}

func (rc *Context) init(ctx context.Context, loop EventLoop, cfg *Config, o *options) error {
	win, err := loop.NewWindow(&WindowOptions{Title: cfg.Title, Size: cfg.Size()})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	rc.window = win
	rc.size = win.PhysicalSize()

	if err := ctx.Err(); err != nil {
		return err
	}
	rc.instance, err = o.newInstance(cfg.Backends)
	if err != nil {
		return fmt.Errorf("%w: creating %s instance: %w", ErrSurface, cfg.Backends, err)
	}
	rc.surface, err = rc.instance.CreateSurface(win)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurface, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	rc.adapter, err = rc.instance.RequestAdapter(&AdapterOptions{
		CompatibleSurface:    rc.surface,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	rc.device, err = rc.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: cfg.DeviceLabel,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}
	rc.queue = rc.device.Queue()

	caps := rc.surface.Capabilities(rc.adapter)
	rc.config, err = SurfaceConfig(caps, uint32(rc.size.X), uint32(rc.size.Y))
	if err != nil {
		return err
	}
	rc.configure()
	Logger().Info("gpu: device acquired", "backends", cfg.Backends, "format", FormatName(rc.config.Format), "presentMode", rc.config.PresentMode, "size", rc.size)
	return nil
}

// configure applies the current configuration to the surface.
func (rc *Context) configure() {
	rc.surface.Configure(rc.adapter, rc.device, &rc.config)
	Logger().Debug("gpu: surface configured", "width", rc.config.Width, "height", rc.config.Height)
}

// Window returns the window. It is owned by the Context and
// destroyed by [Context.Release].
func (rc *Context) Window() Window { return rc.window }

// Surface returns the presentation surface.
func (rc *Context) Surface() Surface { return rc.surface }

// Adapter returns the adapter the device was requested from.
func (rc *Context) Adapter() Adapter { return rc.adapter }

// Device returns the logical device.
func (rc *Context) Device() Device { return rc.device }

// Queue returns the command queue of the device.
func (rc *Context) Queue() Queue { return rc.queue }

// Config returns a copy of the current surface configuration.
func (rc *Context) Config() wgpu.SurfaceConfiguration { return rc.config }

// Format returns the surface texture format.
func (rc *Context) Format() wgpu.TextureFormat { return rc.config.Format }

// Size returns the physical size of the surface in pixels.
func (rc *Context) Size() image.Point { return rc.size }

// DepthFormat returns the format of the depth texture.
func (rc *Context) DepthFormat() wgpu.TextureFormat { return rc.depthFormat }

// DepthTexture returns the current depth texture, or nil
// if none has been requested yet.
func (rc *Context) DepthTexture() *DepthTexture { return rc.depth }

// DepthTextureView returns the view of the depth texture, creating
// the texture at the current size if it does not exist yet.
// The view is owned by the Context: it stays valid until the next
// [Context.Resize] or [Context.Release].
// A driver allocation failure here is unrecoverable and panics.
func (rc *Context) DepthTextureView() TextureView {
	if rc.released {
		panic(ErrReleased)
	}
	if rc.depth == nil {
		rc.depth = rc.newDepthTexture()
	}
	return rc.depth.View
}

func (rc *Context) newDepthTexture() *DepthTexture {
	dt := errors.Must1(NewDepthTexture(rc.device, rc.size, rc.depthFormat))
	Logger().Info("gpu: depth texture created", "width", rc.size.X, "height", rc.size.Y, "format", FormatName(rc.depthFormat))
	return dt
}

// Resize must be called when the window is resized, with its new
// physical size. WebGPU does not track window sizes, so the surface
// is reconfigured here, and an existing depth texture is recreated
// at the new size. Sizes with a zero dimension, as reported for
// minimized windows, are ignored.
func (rc *Context) Resize(size image.Point) {
	if rc.released || size.X <= 0 || size.Y <= 0 {
		return
	}
	Logger().Debug("gpu: resize", "from", rc.size, "to", size)
	rc.size = size
	rc.config.Width = uint32(size.X)
	rc.config.Height = uint32(size.Y)
	rc.configure()
	if rc.depth != nil {
		rc.depth.Release()
		rc.depth = rc.newDepthTexture()
	}
}

// Release frees all driver resources and destroys the window.
// The surface is released before the window it was created from.
// It is safe to call more than once.
func (rc *Context) Release() {
	if rc.released {
		return
	}
	rc.released = true
	if rc.depth != nil {
		rc.depth.Release()
		rc.depth = nil
	}
	if rc.surface != nil {
		rc.surface.Release()
		rc.surface = nil
	}
	if rc.queue != nil {
		rc.queue.Release()
		rc.queue = nil
	}
	if rc.device != nil {
		rc.device.Release()
		rc.device = nil
	}
	if rc.adapter != nil {
		rc.adapter.Release()
		rc.adapter = nil
	}
	if rc.instance != nil {
		rc.instance.Release()
		rc.instance = nil
	}
	if rc.window != nil {
		rc.window.Destroy()
		rc.window = nil
	}
}
