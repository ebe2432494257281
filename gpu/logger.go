// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"
	"sync/atomic"
)

// loggerPtr stores the logger set with SetLogger, if any.
var loggerPtr atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by gpu for lifecycle events.
// Pass nil to go back to [slog.Default].
//
// Log levels used by gpu:
//   - [slog.LevelDebug]: surface configuration and resizes
//   - [slog.LevelInfo]: adapter and device acquired, depth texture created
//   - [slog.LevelWarn]: surface texture had to be reacquired
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(l)
}

// Logger returns the current gpu logger.
func Logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return slog.Default()
}
