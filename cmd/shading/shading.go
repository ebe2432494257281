// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"log/slog"
	"time"
	"unsafe"

	"cogentcore.org/bootstrap/base/errors"
	"cogentcore.org/bootstrap/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shading renders a Lambert-shaded rotating cube lit by an orbiting
// light, using the depth texture of the context.
type Shading struct {
	Config *Config
	Camera *Camera

	shader   *ShaderSource
	elapsed  float32
	uniforms Uniforms

	device      *wgpu.Device
	queue       *wgpu.Queue
	format      wgpu.TextureFormat
	depthFormat wgpu.TextureFormat

	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup

	uniformBuffer *wgpu.Buffer
	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	nIndices      uint32
}

// NewShading creates the buffers and pipeline of the app on the
// WebGPU device of rc. It takes ownership of src.
func NewShading(rc *gpu.Context, cfg *Config, src *ShaderSource) (*Shading, error) {
	dev, ok := rc.Device().(*gpu.WGPUDevice)
	if !ok {
		src.Close()
		return nil, errors.New("shading: requires a WebGPU device")
	}
	sh := &Shading{
		Config:      cfg,
		Camera:      NewCamera(rc.Size()),
		shader:      src,
		device:      dev.Device,
		queue:       rc.Queue().(*gpu.WGPUQueue).Queue,
		format:      rc.Format(),
		depthFormat: rc.DepthFormat(),
	}
	if err := sh.init(); err != nil {
		sh.Release()
		return nil, err
	}
	return sh, nil
}

func (sh *Shading) init() error {
	verts, idx := CubeMesh()
	var err error
	sh.vertexBuffer, err = sh.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Cube Vertices",
		Contents: wgpu.ToBytes(verts),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return err
	}
	sh.indexBuffer, err = sh.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Cube Indices",
		Contents: wgpu.ToBytes(idx),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return err
	}
	sh.nIndices = uint32(len(idx))
	sh.uniformBuffer, err = sh.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Uniforms",
		Size:  uint64(unsafe.Sizeof(Uniforms{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	code, err := sh.shader.Code()
	if err != nil {
		return err
	}
	return sh.buildPipeline(code)
}

// buildPipeline compiles code and replaces the current pipeline.
// On error the current pipeline is kept.
func (sh *Shading) buildPipeline(code string) error {
	module, err := sh.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "shading",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	pl, err := sh.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Shading Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(Vertex{}.Normal)), ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    sh.format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            sh.depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	layout := pl.GetBindGroupLayout(0)
	defer layout.Release()
	bg, err := sh.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Uniforms",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  sh.uniformBuffer,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		pl.Release()
		return err
	}
	sh.releasePipeline()
	sh.pipeline = pl
	sh.bindGroup = bg
	return nil
}

func (sh *Shading) releasePipeline() {
	if sh.bindGroup != nil {
		sh.bindGroup.Release()
		sh.bindGroup = nil
	}
	if sh.pipeline != nil {
		sh.pipeline.Release()
		sh.pipeline = nil
	}
}

// reload rebuilds the pipeline from the changed shader file.
func (sh *Shading) reload() {
	code, err := sh.shader.Code()
	if errors.Log(err) != nil {
		return
	}
	if errors.Log(sh.buildPipeline(code)) != nil {
		return
	}
	slog.Info("shading: shader reloaded", "file", sh.shader.Filename)
}

func (sh *Shading) Update(rc *gpu.Context, dt time.Duration) {
	sh.elapsed += float32(dt.Seconds())
	if sh.shader.Changed() {
		sh.reload()
	}
	sh.uniforms = NewUniforms(sh.Camera, sh.Config, sh.elapsed)
}

func (sh *Shading) Resize(rc *gpu.Context, size image.Point) {
	sh.Camera.SetSize(size)
}

func (sh *Shading) Render(rc *gpu.Context, fr *gpu.Frame) error {
	err := sh.queue.WriteBuffer(sh.uniformBuffer, 0, wgpu.ToBytes([]Uniforms{sh.uniforms}))
	if err != nil {
		return err
	}
	encoder, err := sh.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Shading Encoder"})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       fr.View.(*gpu.WGPUTextureView).View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            rc.DepthTextureView().(*gpu.WGPUTextureView).View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	pass.SetPipeline(sh.pipeline)
	pass.SetBindGroup(0, sh.bindGroup, nil)
	pass.SetVertexBuffer(0, sh.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(sh.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(sh.nIndices, 1, 0, 0, 0)
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	sh.queue.Submit(cmd)
	return nil
}

// Release frees the driver resources of the app
// and stops watching the shader file.
func (sh *Shading) Release() {
	sh.releasePipeline()
	for _, buf := range []*wgpu.Buffer{sh.uniformBuffer, sh.vertexBuffer, sh.indexBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	sh.uniformBuffer, sh.vertexBuffer, sh.indexBuffer = nil, nil, nil
	errors.Log(sh.shader.Close())
}
