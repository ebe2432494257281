// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu bootstraps WebGPU rendering into a window.
//
// A [Context] owns the window, the presentation [Surface] bound to it,
// the logical [Device] and its [Queue], the current surface configuration,
// and a lazily created depth texture that follows the window size.
// Drawing itself is left to the caller, who gets the device, queue and
// per-frame views from the Context (see [Context.AcquireFrame]).
//
// The driver and the window system are reached through small interfaces
// ([Instance], [EventLoop] and friends). [NewWGPUInstance] and
// [NewGLFWEventLoop] provide the real implementations, and the gputest
// package provides in-memory fakes.
//
// A Context is not safe for concurrent use: it is driven by a single
// event loop on the main OS thread.
package gpu
