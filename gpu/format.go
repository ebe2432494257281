// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the format of the depth texture managed by a [Context]:
// a standard float32 depth buffer.
const DepthFormat = wgpu.TextureFormatDepth32Float

// SurfaceCapabilities lists what a surface supports for a given adapter,
// in the driver's order of preference.
type SurfaceCapabilities struct {
	Formats      []wgpu.TextureFormat
	PresentModes []wgpu.PresentMode
	AlphaModes   []wgpu.CompositeAlphaMode
}

// IsSRGB returns true if the given format is sRGB-encoded,
// so that the driver applies gamma conversion on write.
func IsSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// SelectSurfaceFormat returns the first sRGB format in formats,
// or the first format if none is sRGB. ok is false if formats is empty.
func SelectSurfaceFormat(formats []wgpu.TextureFormat) (format wgpu.TextureFormat, ok bool) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, false
	}
	for _, f := range formats {
		if IsSRGB(f) {
			return f, true
		}
	}
	return formats[0], true
}

// SurfaceConfig returns the surface configuration for the given
// capabilities and size: render attachment usage, the format from
// [SelectSurfaceFormat], and the first present and alpha modes.
func SurfaceConfig(caps SurfaceCapabilities, width, height uint32) (wgpu.SurfaceConfiguration, error) {
	format, ok := SelectSurfaceFormat(caps.Formats)
	if !ok || len(caps.PresentModes) == 0 || len(caps.AlphaModes) == 0 {
		return wgpu.SurfaceConfiguration{}, ErrNoSurfaceFormats
	}
	return wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       width,
		Height:      height,
		PresentMode: caps.PresentModes[0],
		AlphaMode:   caps.AlphaModes[0],
	}, nil
}

// TextureFormatNames gives readable names for the texture
// formats that surfaces and depth buffers commonly use.
var TextureFormatNames = map[wgpu.TextureFormat]string{
	wgpu.TextureFormatUndefined:           "Undefined",
	wgpu.TextureFormatRGBA8Unorm:          "RGBA8Unorm",
	wgpu.TextureFormatRGBA8UnormSrgb:      "RGBA8UnormSrgb",
	wgpu.TextureFormatBGRA8Unorm:          "BGRA8Unorm",
	wgpu.TextureFormatBGRA8UnormSrgb:      "BGRA8UnormSrgb",
	wgpu.TextureFormatRGBA32Float:         "RGBA32Float",
	wgpu.TextureFormatDepth24Plus:         "Depth24Plus",
	wgpu.TextureFormatDepth24PlusStencil8: "Depth24PlusStencil8",
	wgpu.TextureFormatDepth32Float:        "Depth32Float",
}

// FormatName returns the readable name of the given format.
func FormatName(format wgpu.TextureFormat) string {
	if nm, ok := TextureFormatNames[format]; ok {
		return nm
	}
	return fmt.Sprintf("TextureFormat(%d)", uint32(format))
}
