// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides an in-memory fake of the driver and window
// system interfaces of package gpu, recording every call, for testing
// code that uses a [gpu.Context] without a GPU or a display.
package gputest

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"cogentcore.org/bootstrap/base/errors"
	"cogentcore.org/bootstrap/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Driver is a fake [gpu.EventLoop] and driver. Its exported fields
// control the behavior of the fakes and record what they were asked
// to do. Use [Driver.NewInstance] as the instance function:
//
//	drv := gputest.NewDriver()
//	rc, err := gpu.NewContext(ctx, drv, nil, gpu.WithInstance(drv.NewInstance))
type Driver struct {
	// Caps are the surface capabilities reported for any adapter.
	Caps gpu.SurfaceCapabilities

	// WindowSize is the physical size of new windows.
	WindowSize image.Point

	// errors returned by the corresponding creation calls, if set.
	WindowErr   error
	InstanceErr error
	SurfaceErr  error
	AdapterErr  error
	DeviceErr   error
	TextureErr  error

	// CurrentTextureFailures is the number of upcoming
	// [gpu.Surface.CurrentTexture] calls that fail.
	CurrentTextureFailures int

	// OnPoll, if set, is called by PollEvents with the poll count.
	OnPoll func(n int)

	// Window is the last window created.
	Window *Window

	// Backends passed to NewInstance.
	Backends gpu.Backends

	// AdapterOptions and DeviceDescriptor are the last requests.
	AdapterOptions   *gpu.AdapterOptions
	DeviceDescriptor *wgpu.DeviceDescriptor

	// Configs has every configuration applied to a surface, in order.
	Configs []wgpu.SurfaceConfiguration

	// Textures has every texture created by a device, in order.
	Textures []*Texture

	// Polls and Presents count PollEvents and Surface.Present calls.
	Polls    int
	Presents int

	// Terminated is set by Terminate.
	Terminated bool

	// Events records releases in order, e.g. "surface.Release".
	Events []string
}

// NewDriver returns a Driver with a 640x480 window and a surface
// supporting BGRA8Unorm then BGRA8UnormSrgb, Fifo presentation
// and opaque alpha.
func NewDriver() *Driver {
	return &Driver{
		WindowSize: image.Point{640, 480},
		Caps: gpu.SurfaceCapabilities{
			Formats:      []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			PresentModes: []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate},
			AlphaModes:   []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque},
		},
	}
}

func (d *Driver) event(ev string) {
	d.Events = append(d.Events, ev)
}

// DepthTextures returns the created textures that have a depth format.
func (d *Driver) DepthTextures() []*Texture {
	var dts []*Texture
	for _, tx := range d.Textures {
		if tx.Desc.Format == gpu.DepthFormat {
			dts = append(dts, tx)
		}
	}
	return dts
}

// LastConfig returns the last surface configuration applied.
func (d *Driver) LastConfig() wgpu.SurfaceConfiguration {
	if len(d.Configs) == 0 {
		return wgpu.SurfaceConfiguration{}
	}
	return d.Configs[len(d.Configs)-1]
}

////////  EventLoop

func (d *Driver) NewWindow(opts *gpu.WindowOptions) (gpu.Window, error) {
	if d.WindowErr != nil {
		return nil, d.WindowErr
	}
	d.Window = &Window{Title: opts.Title, Size: d.WindowSize, drv: d}
	return d.Window, nil
}

func (d *Driver) PollEvents() {
	d.Polls++
	if d.OnPoll != nil {
		d.OnPoll(d.Polls)
	}
}

func (d *Driver) Terminate() {
	d.Terminated = true
	d.event("loop.Terminate")
}

// Window is a fake [gpu.Window].
type Window struct {
	Title string

	// Size is the physical size; see [Window.Resize].
	Size image.Point

	// Close makes ShouldClose return true.
	Close bool

	Destroyed bool

	resize func(size image.Point)
	drv    *Driver
}

// Resize sets the size and calls the resize callback,
// as a real window does during PollEvents.
func (w *Window) Resize(size image.Point) {
	w.Size = size
	if w.resize != nil {
		w.resize(size)
	}
}

func (w *Window) PhysicalSize() image.Point                   { return w.Size }
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor  { return &wgpu.SurfaceDescriptor{Label: w.Title} }
func (w *Window) SetResizeCallback(fn func(size image.Point)) { w.resize = fn }
func (w *Window) ShouldClose() bool                           { return w.Close }

func (w *Window) Destroy() {
	w.Destroyed = true
	w.drv.event("window.Destroy")
}

////////  Driver

// NewInstance is a [gpu.InstanceFunc] returning a fake instance.
func (d *Driver) NewInstance(backends gpu.Backends) (gpu.Instance, error) {
	if d.InstanceErr != nil {
		return nil, d.InstanceErr
	}
	d.Backends = backends
	return &instance{drv: d}, nil
}

type instance struct{ drv *Driver }

func (in *instance) CreateSurface(win gpu.Window) (gpu.Surface, error) {
	if in.drv.SurfaceErr != nil {
		return nil, in.drv.SurfaceErr
	}
	return &Surface{drv: in.drv}, nil
}

func (in *instance) RequestAdapter(opts *gpu.AdapterOptions) (gpu.Adapter, error) {
	in.drv.AdapterOptions = opts
	if in.drv.AdapterErr != nil {
		return nil, in.drv.AdapterErr
	}
	return &adapter{drv: in.drv}, nil
}

func (in *instance) Release() { in.drv.event("instance.Release") }

type adapter struct{ drv *Driver }

func (ad *adapter) RequestDevice(desc *wgpu.DeviceDescriptor) (gpu.Device, error) {
	ad.drv.DeviceDescriptor = desc
	if ad.drv.DeviceErr != nil {
		return nil, ad.drv.DeviceErr
	}
	return &device{drv: ad.drv, queue: &queue{drv: ad.drv}}, nil
}

func (ad *adapter) Release() { ad.drv.event("adapter.Release") }

type device struct {
	drv   *Driver
	queue *queue
}

func (dv *device) Queue() gpu.Queue { return dv.queue }

func (dv *device) CreateTexture(desc *wgpu.TextureDescriptor) (gpu.Texture, error) {
	if dv.drv.TextureErr != nil {
		return nil, dv.drv.TextureErr
	}
	tx := &Texture{Desc: *desc, drv: dv.drv}
	dv.drv.Textures = append(dv.drv.Textures, tx)
	return tx, nil
}

func (dv *device) Release() { dv.drv.event("device.Release") }

type queue struct{ drv *Driver }

func (q *queue) Release() { q.drv.event("queue.Release") }

// Surface is a fake [gpu.Surface].
type Surface struct {
	drv *Driver
}

func (sf *Surface) Capabilities(ad gpu.Adapter) gpu.SurfaceCapabilities {
	return sf.drv.Caps
}

func (sf *Surface) Configure(ad gpu.Adapter, dev gpu.Device, config *wgpu.SurfaceConfiguration) {
	sf.drv.Configs = append(sf.drv.Configs, *config)
}

func (sf *Surface) CurrentTexture() (gpu.Texture, error) {
	if sf.drv.CurrentTextureFailures > 0 {
		sf.drv.CurrentTextureFailures--
		return nil, errors.New("gputest: surface texture outdated")
	}
	cfg := sf.drv.LastConfig()
	return &Texture{
		Desc: wgpu.TextureDescriptor{
			Label:  "Surface Texture",
			Size:   wgpu.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
			Format: cfg.Format,
			Usage:  cfg.Usage,
		},
		drv: sf.drv,
	}, nil
}

func (sf *Surface) Present() { sf.drv.Presents++ }

func (sf *Surface) Release() { sf.drv.event("surface.Release") }

// Texture is a fake [gpu.Texture].
type Texture struct {
	// Desc is the descriptor the texture was created with.
	Desc wgpu.TextureDescriptor

	// Views created from this texture.
	Views []*TextureView

	Released bool

	drv *Driver
}

// Size returns the width and height of the texture.
func (tx *Texture) Size() image.Point {
	return image.Point{int(tx.Desc.Size.Width), int(tx.Desc.Size.Height)}
}

func (tx *Texture) CreateView() (gpu.TextureView, error) {
	vw := &TextureView{Texture: tx}
	tx.Views = append(tx.Views, vw)
	return vw, nil
}

func (tx *Texture) Release() {
	tx.Released = true
	tx.drv.event("texture.Release")
}

// TextureView is a fake [gpu.TextureView].
type TextureView struct {
	Texture  *Texture
	Released bool
}

func (vw *TextureView) Release() { vw.Released = true }

////////  Logging

// LogRecorder is a [slog.Handler] that keeps all records,
// for checking the events logged by gpu:
//
//	lr := &gputest.LogRecorder{}
//	gpu.SetLogger(slog.New(lr))
//	defer gpu.SetLogger(nil)
type LogRecorder struct {
	mu      sync.Mutex
	Records []slog.Record
}

func (lr *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (lr *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.Records = append(lr.Records, r.Clone())
	return nil
}

func (lr *LogRecorder) WithAttrs([]slog.Attr) slog.Handler { return lr }
func (lr *LogRecorder) WithGroup(string) slog.Handler      { return lr }

// Count returns the number of records with the given message.
func (lr *LogRecorder) Count(msg string) int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	n := 0
	for _, r := range lr.Records {
		if r.Message == msg {
			n++
		}
	}
	return n
}
