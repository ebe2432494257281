// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/bootstrap/base/config"
	"cogentcore.org/bootstrap/gpu"
)

// Config is the configuration of the shading example,
// loadable from a TOML file.
type Config struct {

	// GPU has the window, device and frame rate settings.
	GPU gpu.Config

	// Shader is a WGSL file to use instead of the built-in shader.
	// It is reloaded whenever it changes.
	Shader string

	// Spin is the rotation speed of the cube in radians per second.
	Spin float32 `default:"0.8"`

	// LightSpeed is the speed of the light orbit in radians per second.
	LightSpeed float32 `default:"1.5"`

	// Ambient is the light level of faces turned away from the light, 0-1.
	Ambient float32 `default:"0.15"`
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	cfg := &Config{}
	config.SetFromDefaults(cfg)
	cfg.GPU.Title = "Shading"
	return cfg
}
