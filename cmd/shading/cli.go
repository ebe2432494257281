// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/bootstrap/base/config"
	"cogentcore.org/bootstrap/base/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newRootCmd returns the command line interface, which calls run
// with the config resulting from the defaults, then the config file
// if any, then the flags given explicitly.
func newRootCmd(run func(cfg *Config) error) *cobra.Command {
	cfg := NewConfig()
	var configFile, saveFile string
	var verbose int
	var quiet bool

	cmd := &cobra.Command{
		Use:          "shading",
		Short:        "Shading renders a lit, rotating cube with a depth buffer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(verbose >= 2, verbose == 1, quiet)
			logx.SetDefaultLogger()
			if configFile != "" {
				if err := openConfig(cfg, configFile, cmd.Flags()); err != nil {
					return err
				}
			}
			if saveFile != "" {
				return config.Save(cfg, saveFile)
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configFile, "config", "", "TOML config file to load")
	fs.StringVar(&saveFile, "save-config", "", "save the resulting config to this TOML file and exit")
	fs.CountVarP(&verbose, "verbose", "v", "log more: -v for info, -vv for debug messages")
	fs.BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	fs.StringVar(&cfg.GPU.Title, "title", cfg.GPU.Title, "window title")
	fs.IntVar(&cfg.GPU.Width, "width", cfg.GPU.Width, "window width")
	fs.IntVar(&cfg.GPU.Height, "height", cfg.GPU.Height, "window height")
	fs.Var(&cfg.GPU.Backends, "backends", "graphics backends: all, primary, vulkan, metal, dx12, gl or browser")
	fs.IntVar(&cfg.GPU.FPS, "fps", cfg.GPU.FPS, "target frames per second, 0 for unlimited")
	fs.StringVar(&cfg.Shader, "shader", cfg.Shader, "WGSL shader file, reloaded on change")
	fs.Float32Var(&cfg.Spin, "spin", cfg.Spin, "cube rotation speed in radians per second")
	fs.Float32Var(&cfg.LightSpeed, "light-speed", cfg.LightSpeed, "light orbit speed in radians per second")
	fs.Float32Var(&cfg.Ambient, "ambient", cfg.Ambient, "ambient light level, 0-1")
	return cmd
}

// openConfig loads the config file into cfg, keeping
// the values of the flags that were set explicitly.
func openConfig(cfg *Config, filename string, fs *pflag.FlagSet) error {
	set := map[*pflag.Flag]string{}
	fs.Visit(func(f *pflag.Flag) {
		set[f] = f.Value.String()
	})
	if err := config.Open(cfg, filename); err != nil {
		return err
	}
	for f, v := range set {
		if f.Value.Type() == "count" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return err
		}
	}
	return nil
}
