// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build offscreen || !((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package main

import (
	"cogentcore.org/bootstrap/base/errors"
	"cogentcore.org/bootstrap/gpu"
)

func newEventLoop() (gpu.EventLoop, error) {
	return nil, errors.New("shading: no window system available on this platform")
}
