// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	_ "embed"
	"os"
	"path/filepath"

	"cogentcore.org/bootstrap/base/errors"
	"github.com/fsnotify/fsnotify"
)

//go:embed shader.wgsl
var builtinShader string

// ShaderSource provides the WGSL code of the shading pipeline:
// either the built-in shader, or a file that is watched for changes.
type ShaderSource struct {
	// Filename of the shader file; empty for the built-in shader.
	Filename string

	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// NewShaderSource returns a source for the given shader file,
// or for the built-in shader if filename is empty.
func NewShaderSource(filename string) (*ShaderSource, error) {
	ss := &ShaderSource{Filename: filename}
	if filename == "" {
		return ss, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// editors often save by replacing the file, so watch the directory
	if err := w.Add(filepath.Dir(filename)); err != nil {
		w.Close()
		return nil, err
	}
	ss.watcher = w
	ss.changed = make(chan struct{}, 1)
	ss.done = make(chan struct{})
	go ss.watch(w)
	return ss, nil
}

// Code returns the current shader code.
func (ss *ShaderSource) Code() (string, error) {
	if ss.Filename == "" {
		return builtinShader, nil
	}
	b, err := os.ReadFile(ss.Filename)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (ss *ShaderSource) watch(watch *fsnotify.Watcher) {
	name := filepath.Clean(ss.Filename)
	for {
		select {
		case <-ss.done:
			return
		case event, ok := <-watch.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				select {
				case ss.changed <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watch.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// Changed returns whether the shader file has changed since the
// last call. It never blocks, and is always false for the built-in shader.
func (ss *ShaderSource) Changed() bool {
	select {
	case <-ss.changed:
		return true
	default:
		return false
	}
}

// Close stops watching the shader file.
func (ss *ShaderSource) Close() error {
	if ss.watcher == nil {
		return nil
	}
	close(ss.done)
	err := ss.watcher.Close()
	ss.watcher = nil
	return err
}
