// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package gpu

import (
	"image"

	"cogentcore.org/bootstrap/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.
// Other platforms (mobile, web) need to provide their own EventLoop.

// NewGLFWEventLoop initializes glfw and returns an [EventLoop] using it.
// IMPORTANT: must be called on the main initial thread, which must
// stay locked (runtime.LockOSThread), as must all use of the loop!
func NewGLFWEventLoop() (EventLoop, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Log(err)
	}
	return &glfwEventLoop{}, nil
}

type glfwEventLoop struct{}

func (el *glfwEventLoop) NewWindow(opts *WindowOptions) (Window, error) {
	// WebGPU presents through its own surface, not a GL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	w, err := glfw.CreateWindow(opts.Size.X, opts.Size.Y, opts.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	return &glfwWindow{window: w}, nil
}

func (el *glfwEventLoop) PollEvents() {
	glfw.PollEvents()
}

func (el *glfwEventLoop) Terminate() {
	glfw.Terminate()
}

type glfwWindow struct {
	window *glfw.Window
}

// PhysicalSize returns the framebuffer size, which differs
// from the window size on high-DPI displays.
func (gw *glfwWindow) PhysicalSize() image.Point {
	w, h := gw.window.GetFramebufferSize()
	return image.Point{w, h}
}

func (gw *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func (gw *glfwWindow) SetResizeCallback(fn func(size image.Point)) {
	if fn == nil {
		gw.window.SetFramebufferSizeCallback(nil)
		return
	}
	gw.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		fn(image.Point{width, height})
	})
}

func (gw *glfwWindow) ShouldClose() bool {
	return gw.window.ShouldClose()
}

func (gw *glfwWindow) Destroy() {
	gw.window.Destroy()
}
