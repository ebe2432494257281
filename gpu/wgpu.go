// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/bootstrap/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// note: this file implements the driver interfaces on top of WebGPU.
// The exported WGPU types give rendering code access to the raw
// handles, e.g. rc.Device().(*gpu.WGPUDevice).Device.

// InstanceBackend returns the WebGPU instance backend flags for b.
func (b Backends) InstanceBackend() wgpu.InstanceBackend {
	switch b {
	case BackendsPrimary:
		return wgpu.InstanceBackendPrimary
	case BackendsVulkan:
		return wgpu.InstanceBackendVulkan
	case BackendsMetal:
		return wgpu.InstanceBackendMetal
	case BackendsDX12:
		return wgpu.InstanceBackendDX12
	case BackendsGL:
		return wgpu.InstanceBackendGL
	case BackendsBrowser:
		return wgpu.InstanceBackendBrowserWebGPU
	}
	return wgpu.InstanceBackendAll
}

// NewWGPUInstance creates a WebGPU instance limited to the given backends.
// It is the default [InstanceFunc] of [NewContext].
func NewWGPUInstance(backends Backends) (Instance, error) {
	inst := wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: backends.InstanceBackend(),
	})
	if inst == nil {
		return nil, errors.New("gpu: could not create WebGPU instance")
	}
	return &WGPUInstance{Instance: inst}, nil
}

// WGPUInstance is an [Instance] backed by WebGPU.
type WGPUInstance struct {
	Instance *wgpu.Instance
}

func (wi *WGPUInstance) CreateSurface(win Window) (Surface, error) {
	sf := wi.Instance.CreateSurface(win.SurfaceDescriptor())
	if sf == nil {
		return nil, errors.New("gpu: could not create WebGPU surface")
	}
	return &WGPUSurface{Surface: sf}, nil
}

func (wi *WGPUInstance) RequestAdapter(opts *AdapterOptions) (Adapter, error) {
	wo := &wgpu.RequestAdapterOptions{
		PowerPreference:      opts.PowerPreference,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}
	if sf, ok := opts.CompatibleSurface.(*WGPUSurface); ok {
		wo.CompatibleSurface = sf.Surface
	}
	ad, err := wi.Instance.RequestAdapter(wo)
	if err != nil {
		return nil, err
	}
	return &WGPUAdapter{Adapter: ad}, nil
}

func (wi *WGPUInstance) Release() {
	wi.Instance.Release()
}

// WGPUAdapter is an [Adapter] backed by WebGPU.
type WGPUAdapter struct {
	Adapter *wgpu.Adapter
}

func (wa *WGPUAdapter) RequestDevice(desc *wgpu.DeviceDescriptor) (Device, error) {
	dev, err := wa.Adapter.RequestDevice(desc)
	if err != nil {
		return nil, err
	}
	return &WGPUDevice{Device: dev, queue: &WGPUQueue{Queue: dev.GetQueue()}}, nil
}

func (wa *WGPUAdapter) Release() {
	wa.Adapter.Release()
}

// WGPUDevice is a [Device] backed by WebGPU.
type WGPUDevice struct {
	Device *wgpu.Device
	queue  *WGPUQueue
}

func (wd *WGPUDevice) Queue() Queue {
	return wd.queue
}

func (wd *WGPUDevice) CreateTexture(desc *wgpu.TextureDescriptor) (Texture, error) {
	tx, err := wd.Device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}
	return &WGPUTexture{Texture: tx}, nil
}

func (wd *WGPUDevice) Release() {
	wd.Device.Release()
}

// WGPUQueue is a [Queue] backed by WebGPU.
type WGPUQueue struct {
	Queue *wgpu.Queue
}

func (wq *WGPUQueue) Release() {
	wq.Queue.Release()
}

// WGPUSurface is a [Surface] backed by WebGPU.
type WGPUSurface struct {
	Surface *wgpu.Surface
}

func (ws *WGPUSurface) Capabilities(ad Adapter) SurfaceCapabilities {
	caps := ws.Surface.GetCapabilities(ad.(*WGPUAdapter).Adapter)
	return SurfaceCapabilities{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}
}

func (ws *WGPUSurface) Configure(ad Adapter, dev Device, config *wgpu.SurfaceConfiguration) {
	ws.Surface.Configure(ad.(*WGPUAdapter).Adapter, dev.(*WGPUDevice).Device, config)
}

func (ws *WGPUSurface) CurrentTexture() (Texture, error) {
	tx, err := ws.Surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	return &WGPUTexture{Texture: tx}, nil
}

func (ws *WGPUSurface) Present() {
	ws.Surface.Present()
}

func (ws *WGPUSurface) Release() {
	ws.Surface.Release()
}

// WGPUTexture is a [Texture] backed by WebGPU.
type WGPUTexture struct {
	Texture *wgpu.Texture
}

func (wt *WGPUTexture) CreateView() (TextureView, error) {
	vw, err := wt.Texture.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return &WGPUTextureView{View: vw}, nil
}

func (wt *WGPUTexture) Release() {
	wt.Texture.Release()
}

// WGPUTextureView is a [TextureView] backed by WebGPU.
type WGPUTextureView struct {
	View *wgpu.TextureView
}

func (wv *WGPUTextureView) Release() {
	wv.View.Release()
}
