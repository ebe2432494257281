// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"cogentcore.org/bootstrap/gpu"
	"cogentcore.org/bootstrap/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	updates  int
	renders  int
	sizes    []image.Point
	released bool

	// renderErr is returned by the next Render.
	renderErr error
}

func (ta *testApp) Update(rc *gpu.Context, dt time.Duration) {
	ta.updates++
}

func (ta *testApp) Render(rc *gpu.Context, fr *gpu.Frame) error {
	ta.renders++
	rc.DepthTextureView()
	err := ta.renderErr
	ta.renderErr = nil
	return err
}

func (ta *testApp) Resize(rc *gpu.Context, size image.Point) {
	ta.sizes = append(ta.sizes, size)
}

func (ta *testApp) Release() {
	ta.released = true
}

func newRunner(t *testing.T, drv *gputest.Driver) *Runner {
	t.Helper()
	cfg := gpu.NewConfig()
	cfg.FPS = 0
	r, err := New(context.Background(), drv, cfg, gpu.WithInstance(drv.NewInstance))
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

// closeAfter makes the window request closing at the given poll.
func closeAfter(drv *gputest.Driver, polls int, fn func(n int)) {
	drv.OnPoll = func(n int) {
		if fn != nil {
			fn(n)
		}
		if n >= polls {
			drv.Window.Close = true
		}
	}
}

func TestRun(t *testing.T) {
	drv := gputest.NewDriver()
	r := newRunner(t, drv)
	app := &testApp{}
	closeAfter(drv, 4, nil)

	require.NoError(t, r.Run(context.Background(), app))
	assert.Equal(t, 3, app.updates)
	assert.Equal(t, 3, app.renders)
	assert.Equal(t, 3, r.Frames)
	assert.Equal(t, 3, drv.Presents)
	assert.Len(t, drv.DepthTextures(), 1)
}

func TestRunResize(t *testing.T) {
	drv := gputest.NewDriver()
	r := newRunner(t, drv)
	app := &testApp{}
	closeAfter(drv, 4, func(n int) {
		if n == 2 {
			drv.Window.Resize(image.Point{800, 600})
		}
	})

	require.NoError(t, r.Run(context.Background(), app))
	assert.Equal(t, []image.Point{{800, 600}}, app.sizes)
	assert.Equal(t, image.Point{800, 600}, r.Context.Size())
	dts := drv.DepthTextures()
	require.Len(t, dts, 2)
	assert.True(t, dts[0].Released)
	assert.Equal(t, image.Point{800, 600}, dts[1].Size())
}

func TestRunMinimized(t *testing.T) {
	drv := gputest.NewDriver()
	r := newRunner(t, drv)
	app := &testApp{}
	closeAfter(drv, 5, func(n int) {
		switch n {
		case 2:
			drv.Window.Resize(image.Point{})
		case 4:
			drv.Window.Resize(image.Point{640, 480})
		}
	})

	require.NoError(t, r.Run(context.Background(), app))
	assert.Equal(t, 4, app.updates)
	assert.Equal(t, 2, app.renders)
	assert.Equal(t, 2, drv.Presents)
	assert.Equal(t, []image.Point{{640, 480}}, app.sizes)
	assert.Len(t, drv.DepthTextures(), 2)
}

func TestRunRenderError(t *testing.T) {
	drv := gputest.NewDriver()
	r := newRunner(t, drv)
	app := &testApp{renderErr: errors.New("pipeline not ready")}
	closeAfter(drv, 3, nil)

	require.NoError(t, r.Run(context.Background(), app))
	assert.Equal(t, 2, app.renders)
	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, 1, drv.Presents)
}

func TestRunCanceled(t *testing.T) {
	drv := gputest.NewDriver()
	cfg := gpu.NewConfig()
	r, err := New(context.Background(), drv, cfg, gpu.WithInstance(drv.NewInstance))
	require.NoError(t, err)
	defer r.Release()

	ctx, cancel := context.WithCancel(context.Background())
	drv.OnPoll = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	app := &testApp{}
	assert.ErrorIs(t, r.Run(ctx, app), context.Canceled)
	assert.Equal(t, 2, app.renders)
}

func TestRelease(t *testing.T) {
	drv := gputest.NewDriver()
	r := newRunner(t, drv)
	app := &testApp{}
	closeAfter(drv, 2, nil)
	require.NoError(t, r.Run(context.Background(), app))

	r.Release()
	assert.True(t, app.released)
	assert.True(t, drv.Terminated)
	assert.Equal(t, "window.Destroy", drv.Events[len(drv.Events)-2])
	assert.Equal(t, "loop.Terminate", drv.Events[len(drv.Events)-1])

	n := len(drv.Events)
	r.Release()
	assert.Len(t, drv.Events, n)
	assert.ErrorIs(t, r.Run(context.Background(), app), gpu.ErrReleased)
}

func TestNewError(t *testing.T) {
	drv := gputest.NewDriver()
	drv.AdapterErr = errors.New("no gpu")
	r, err := New(context.Background(), drv, nil, gpu.WithInstance(drv.NewInstance))
	assert.Nil(t, r)
	assert.ErrorIs(t, err, gpu.ErrNoAdapter)
}
