// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// Backends selects which graphics APIs the driver instance may use.
// The driver picks among the allowed ones at runtime.
type Backends int32

const (
	// BackendsAll allows every backend: Vulkan, Metal, DX12 and browser WebGPU.
	BackendsAll Backends = iota

	// BackendsPrimary allows the first-tier backends only.
	BackendsPrimary

	BackendsVulkan
	BackendsMetal
	BackendsDX12
	BackendsGL
	BackendsBrowser

	backendsN
)

var backendsNames = [backendsN]string{"all", "primary", "vulkan", "metal", "dx12", "gl", "browser"}

// String returns the lower-case name of the backend set.
func (b Backends) String() string {
	if b < 0 || b >= backendsN {
		return fmt.Sprintf("Backends(%d)", int32(b))
	}
	return backendsNames[b]
}

// ParseBackends returns the [Backends] with the given name,
// ignoring case.
func ParseBackends(s string) (Backends, error) {
	for i, nm := range backendsNames {
		if strings.EqualFold(s, nm) {
			return Backends(i), nil
		}
	}
	return BackendsAll, fmt.Errorf("gpu: unknown backends %q, want one of %s", s, strings.Join(backendsNames[:], ", "))
}

// MarshalText implements [encoding.TextMarshaler].
func (b Backends) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *Backends) UnmarshalText(text []byte) error {
	v, err := ParseBackends(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Set implements pflag.Value, for use as a command line flag.
func (b *Backends) Set(s string) error {
	return b.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (b *Backends) Type() string {
	return "backends"
}
