// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shading renders a Lambert-shaded rotating cube,
// lit by an orbiting light and depth tested against the
// depth texture of the render context.
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"cogentcore.org/bootstrap/base/errors"
	"cogentcore.org/bootstrap/runner"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := NewShaderSource(cfg.Shader)
	if err != nil {
		return err
	}
	loop, err := newEventLoop()
	if err != nil {
		src.Close()
		return err
	}
	r, err := runner.New(ctx, loop, &cfg.GPU)
	if err != nil {
		src.Close()
		loop.Terminate()
		return errors.Log(err)
	}
	defer r.Release()

	app, err := NewShading(r.Context, cfg, src)
	if err != nil {
		return errors.Log(err)
	}
	err = r.Run(ctx, app)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
