// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner drives an application on a [gpu.Context]:
// it polls window events, updates and renders the application
// at a fixed frame rate, and presents the frames.
package runner

import (
	"context"
	"image"
	"time"

	"cogentcore.org/bootstrap/base/errors"
	"cogentcore.org/bootstrap/gpu"
)

// App is an application rendered by a [Runner].
type App interface {
	// Update advances the application state by dt,
	// the time since the previous update.
	Update(rc *gpu.Context, dt time.Duration)

	// Render records and submits the rendering commands for the frame.
	// The runner presents the frame if Render returns no error.
	Render(rc *gpu.Context, fr *gpu.Frame) error
}

// Resizer is an optional interface for an [App] that depends on
// the window size, e.g. for a camera aspect ratio.
// Resize is called after the context has been resized.
type Resizer interface {
	Resize(rc *gpu.Context, size image.Point)
}

// Releaser is an optional interface for an [App] that holds driver
// resources. Release is called before the context is released.
type Releaser interface {
	Release()
}

// FPSInterval is how often the measured frame rate is logged.
var FPSInterval = 10 * time.Second

// Runner owns a [gpu.Context] and the event loop of its window.
type Runner struct {
	// Context is the render context.
	Context *gpu.Context

	// Config used to create the Context.
	Config *gpu.Config

	// Frames is the number of frames presented so far.
	Frames int

	loop     gpu.EventLoop
	app      App
	released bool
}

// New creates the [gpu.Context] for the given config on the event loop.
// A nil cfg uses [gpu.NewConfig]. The options are passed to [gpu.NewContext].
func New(ctx context.Context, loop gpu.EventLoop, cfg *gpu.Config, opts ...gpu.Option) (*Runner, error) {
	if cfg == nil {
		cfg = gpu.NewConfig()
	}
	rc, err := gpu.NewContext(ctx, loop, cfg, opts...)
	if err != nil {
		return nil, err
	}
	r := &Runner{Context: rc, Config: cfg, loop: loop}
	rc.Window().SetResizeCallback(r.resize)
	return r, nil
}

// resize is called from PollEvents, on the loop thread.
func (r *Runner) resize(size image.Point) {
	r.Context.Resize(size)
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if rs, ok := r.app.(Resizer); ok {
		rs.Resize(r.Context, size)
	}
}

// Run renders app until the window is closed, returning nil,
// or until ctx is done, returning its error.
// Frames are rendered at most at Config.FPS per second,
// or as fast as possible if that is not positive.
// Run must be called on the thread that created the event loop.
func (r *Runner) Run(ctx context.Context, app App) error {
	if r.released {
		return gpu.ErrReleased
	}
	r.app = app
	var tick <-chan time.Time
	if r.Config.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(r.Config.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	last := time.Now()
	stTime := last
	frameCount := 0
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.loop.PollEvents()
		if r.Context.Window().ShouldClose() {
			return nil
		}
		now := time.Now()
		app.Update(r.Context, now.Sub(last))
		last = now
		if !r.RenderFrame() {
			continue
		}
		frameCount++
		if dur := now.Sub(stTime); dur >= FPSInterval {
			gpu.Logger().Debug("runner: frame rate", "fps", float64(frameCount)/dur.Seconds())
			frameCount = 0
			stTime = now
		}
	}
}

// RenderFrame acquires a frame, renders the app into it and presents it,
// returning whether a frame was presented. Frames are skipped while the
// window is minimized; other errors are logged.
func (r *Runner) RenderFrame() bool {
	fr, err := r.Context.AcquireFrame()
	if err != nil {
		if !errors.Is(err, gpu.ErrMinimized) {
			errors.Log(err)
		}
		return false
	}
	if err := r.app.Render(r.Context, fr); err != nil {
		errors.Log(err)
		fr.Release()
		return false
	}
	fr.Present()
	r.Frames++
	return true
}

// Release releases the app if it is a [Releaser], then the context,
// and finally terminates the event loop. It is safe to call more than once.
func (r *Runner) Release() {
	if r.released {
		return
	}
	r.released = true
	if rl, ok := r.app.(Releaser); ok {
		rl.Release()
	}
	r.Context.Release()
	r.loop.Terminate()
}
