// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/bootstrap/base/config"
)

// Config has the settings used to create a [Context]
// and drive it from a runner.
type Config struct {

	// Title of the window.
	Title string `default:"Bootstrap"`

	// Width is the requested window width in screen coordinates.
	// The actual physical size is queried from the window.
	Width int `default:"1024"`

	// Height is the requested window height in screen coordinates.
	Height int `default:"768"`

	// Backends that the driver instance may choose from.
	Backends Backends `default:"all"`

	// FPS is the target number of frames per second for the runner.
	FPS int `default:"60"`

	// DeviceLabel is the debug label of the logical device.
	DeviceLabel string `default:"Bootstrap Device"`
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	cfg := &Config{}
	config.SetFromDefaults(cfg)
	return cfg
}

// Size returns the requested window size.
func (cf *Config) Size() image.Point {
	return image.Point{cf.Width, cf.Height}
}
