// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"testing"

	"cogentcore.org/bootstrap/gpu"
	"cogentcore.org/bootstrap/gpu/gputest"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, drv *gputest.Driver) *gpu.Context {
	t.Helper()
	rc, err := gpu.NewContext(context.Background(), drv, nil, gpu.WithInstance(drv.NewInstance))
	require.NoError(t, err)
	t.Cleanup(rc.Release)
	return rc
}

func recordLogs(t *testing.T) *gputest.LogRecorder {
	lr := &gputest.LogRecorder{}
	gpu.SetLogger(slog.New(lr))
	t.Cleanup(func() { gpu.SetLogger(nil) })
	return lr
}

func TestNewContext(t *testing.T) {
	drv := gputest.NewDriver()
	cfg := gpu.NewConfig()
	cfg.Title = "Cube"
	cfg.Backends = gpu.BackendsVulkan
	rc, err := gpu.NewContext(context.Background(), drv, cfg, gpu.WithInstance(drv.NewInstance))
	require.NoError(t, err)
	defer rc.Release()

	assert.Equal(t, "Cube", drv.Window.Title)
	assert.Equal(t, gpu.BackendsVulkan, drv.Backends)
	assert.Equal(t, rc.Surface(), drv.AdapterOptions.CompatibleSurface)
	assert.False(t, drv.AdapterOptions.ForceFallbackAdapter)
	assert.Equal(t, "Bootstrap Device", drv.DeviceDescriptor.Label)
	require.NotNil(t, drv.DeviceDescriptor.RequiredLimits)
	assert.Equal(t, wgpu.DefaultLimits(), drv.DeviceDescriptor.RequiredLimits.Limits)
	assert.NotNil(t, rc.Queue())
	assert.Equal(t, drv.Window, rc.Window())

	require.Len(t, drv.Configs, 1)
	sc := rc.Config()
	assert.Equal(t, drv.Configs[0], sc)
	assert.Equal(t, uint32(640), sc.Width)
	assert.Equal(t, uint32(480), sc.Height)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, sc.Format)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, rc.Format())
	assert.Equal(t, wgpu.PresentModeFifo, sc.PresentMode)
	assert.Equal(t, wgpu.CompositeAlphaModeOpaque, sc.AlphaMode)
	assert.Equal(t, wgpu.TextureUsageRenderAttachment, sc.Usage)
	assert.Equal(t, image.Point{640, 480}, rc.Size())
	assert.Equal(t, gpu.DepthFormat, rc.DepthFormat())
}

func TestNewContextFormatFallback(t *testing.T) {
	drv := gputest.NewDriver()
	drv.Caps.Formats = []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm}
	rc := newContext(t, drv)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, rc.Format())
}

func TestNewContextErrors(t *testing.T) {
	cause := errors.New("driver said no")
	tests := []struct {
		name   string
		set    func(drv *gputest.Driver)
		want   error
		events []string
	}{
		{"window", func(drv *gputest.Driver) { drv.WindowErr = cause }, gpu.ErrWindow, nil},
		{"instance", func(drv *gputest.Driver) { drv.InstanceErr = cause }, gpu.ErrSurface,
			[]string{"window.Destroy"}},
		{"surface", func(drv *gputest.Driver) { drv.SurfaceErr = cause }, gpu.ErrSurface,
			[]string{"instance.Release", "window.Destroy"}},
		{"adapter", func(drv *gputest.Driver) { drv.AdapterErr = cause }, gpu.ErrNoAdapter,
			[]string{"surface.Release", "instance.Release", "window.Destroy"}},
		{"device", func(drv *gputest.Driver) { drv.DeviceErr = cause }, gpu.ErrDevice,
			[]string{"surface.Release", "adapter.Release", "instance.Release", "window.Destroy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := gputest.NewDriver()
			tt.set(drv)
			rc, err := gpu.NewContext(context.Background(), drv, nil, gpu.WithInstance(drv.NewInstance))
			assert.Nil(t, rc)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, tt.events, drv.Events)
		})
	}
}

func TestNewContextNoSurfaceFormats(t *testing.T) {
	drv := gputest.NewDriver()
	drv.Caps.Formats = nil
	rc, err := gpu.NewContext(context.Background(), drv, nil, gpu.WithInstance(drv.NewInstance))
	assert.Nil(t, rc)
	assert.ErrorIs(t, err, gpu.ErrNoSurfaceFormats)
	assert.Empty(t, drv.Configs)
	assert.Equal(t, "window.Destroy", drv.Events[len(drv.Events)-1])
}

func TestNewContextCanceled(t *testing.T) {
	drv := gputest.NewDriver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rc, err := gpu.NewContext(ctx, drv, nil, gpu.WithInstance(drv.NewInstance))
	assert.Nil(t, rc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, drv.AdapterOptions)
	assert.True(t, drv.Window.Destroyed)
}

func TestDepthTextureLazy(t *testing.T) {
	lr := recordLogs(t)
	drv := gputest.NewDriver()
	rc := newContext(t, drv)

	assert.Empty(t, drv.Textures)
	assert.Nil(t, rc.DepthTexture())
	assert.Equal(t, 0, lr.Count("gpu: depth texture created"))

	vw := rc.DepthTextureView()
	require.NotNil(t, vw)
	require.Len(t, drv.Textures, 1)
	dt := drv.Textures[0]
	assert.Equal(t, image.Point{640, 480}, dt.Size())
	assert.Equal(t, gpu.DepthFormat, dt.Desc.Format)
	assert.Equal(t, uint32(1), dt.Desc.MipLevelCount)
	assert.Equal(t, uint32(1), dt.Desc.SampleCount)
	assert.Equal(t, wgpu.TextureDimension2D, dt.Desc.Dimension)
	assert.Equal(t, wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, dt.Desc.Usage)
	assert.Equal(t, 1, lr.Count("gpu: depth texture created"))

	// repeated requests reuse the same texture
	assert.Same(t, vw, rc.DepthTextureView())
	assert.Same(t, vw, rc.DepthTextureView())
	assert.Len(t, drv.Textures, 1)
	assert.Equal(t, 1, lr.Count("gpu: depth texture created"))
}

func TestResizeWithoutDepth(t *testing.T) {
	drv := gputest.NewDriver()
	rc := newContext(t, drv)

	rc.Resize(image.Point{800, 600})
	assert.Equal(t, image.Point{800, 600}, rc.Size())
	require.Len(t, drv.Configs, 2)
	assert.Equal(t, uint32(800), drv.LastConfig().Width)
	assert.Equal(t, uint32(600), drv.LastConfig().Height)
	assert.Equal(t, drv.Configs[0].Format, drv.LastConfig().Format)
	assert.Empty(t, drv.Textures)

	rc.DepthTextureView()
	require.Len(t, drv.Textures, 1)
	assert.Equal(t, image.Point{800, 600}, drv.Textures[0].Size())
}

func TestResizeRecreatesDepth(t *testing.T) {
	lr := recordLogs(t)
	drv := gputest.NewDriver()
	rc := newContext(t, drv)

	old := rc.DepthTextureView()
	rc.Resize(image.Point{1280, 720})

	require.Len(t, drv.Textures, 2)
	assert.True(t, drv.Textures[0].Released)
	assert.True(t, old.(*gputest.TextureView).Released)
	assert.False(t, drv.Textures[1].Released)
	assert.Equal(t, image.Point{1280, 720}, drv.Textures[1].Size())
	assert.Equal(t, image.Point{1280, 720}, rc.DepthTexture().Size)
	assert.Equal(t, 2, lr.Count("gpu: depth texture created"))

	// the new texture is already there
	vw := rc.DepthTextureView()
	assert.NotSame(t, old, vw)
	assert.Len(t, drv.Textures, 2)
}

func TestResizeIgnoresZero(t *testing.T) {
	drv := gputest.NewDriver()
	rc := newContext(t, drv)
	rc.DepthTextureView()

	rc.Resize(image.Point{0, 600})
	rc.Resize(image.Point{800, 0})
	rc.Resize(image.Point{})

	assert.Len(t, drv.Configs, 1)
	assert.Len(t, drv.Textures, 1)
	assert.Equal(t, image.Point{640, 480}, rc.Size())
}

func TestRelease(t *testing.T) {
	drv := gputest.NewDriver()
	rc, err := gpu.NewContext(context.Background(), drv, nil, gpu.WithInstance(drv.NewInstance))
	require.NoError(t, err)
	rc.DepthTextureView()

	rc.Release()
	assert.Equal(t, []string{
		"texture.Release",
		"surface.Release",
		"queue.Release",
		"device.Release",
		"adapter.Release",
		"instance.Release",
		"window.Destroy",
	}, drv.Events)

	rc.Release()
	assert.Len(t, drv.Events, 7)

	rc.Resize(image.Point{100, 100})
	assert.Len(t, drv.Configs, 1)
	assert.PanicsWithValue(t, gpu.ErrReleased, func() { rc.DepthTextureView() })
	_, err = rc.AcquireFrame()
	assert.ErrorIs(t, err, gpu.ErrReleased)
}

func TestDepthTextureAllocationFailure(t *testing.T) {
	drv := gputest.NewDriver()
	rc := newContext(t, drv)
	drv.TextureErr = errors.New("out of memory")
	assert.Panics(t, func() { rc.DepthTextureView() })
}
