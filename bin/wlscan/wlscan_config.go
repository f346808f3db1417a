// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// batchConfig is the --config file format.
//
//	package = "wl"
//	pkgconfig = "wayland-scanner"
//	dependencies = ["core/wayland.xml"]
//
//	[[protocol]]
//	input = "wayland.xml"
//	output = "wl/proto.myr"
type batchConfig struct {
	Package      string          `toml:"package"`
	PkgConfig    string          `toml:"pkgconfig"`
	Dependencies []string        `toml:"dependencies"`
	Protocols    []protocolEntry `toml:"protocol"`

	// Relative paths are resolved against the config file's directory.
	dir string
}

type protocolEntry struct {
	Input     string `toml:"input"`
	Output    string `toml:"output"`
	Package   string `toml:"package"`
	PkgConfig string `toml:"pkgconfig"`
}

func loadBatchConfig(path string) (*batchConfig, error) {
	var cfg batchConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("load batch config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.dir = filepath.Dir(path)
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (cfg *batchConfig) normalize() {
	cfg.Package = strings.TrimSpace(cfg.Package)
	cfg.PkgConfig = strings.TrimSpace(cfg.PkgConfig)
	for ii := range cfg.Protocols {
		entry := &cfg.Protocols[ii]
		entry.Input = strings.TrimSpace(entry.Input)
		entry.Output = strings.TrimSpace(entry.Output)
		entry.Package = strings.TrimSpace(entry.Package)
		entry.PkgConfig = strings.TrimSpace(entry.PkgConfig)
	}
}

func (cfg *batchConfig) validate() error {
	if len(cfg.Protocols) == 0 {
		return fmt.Errorf("no [[protocol]] entries")
	}
	outputs := make(map[string]int)
	for ii, entry := range cfg.Protocols {
		if entry.Input == "" {
			return fmt.Errorf("protocol %d: missing input", ii+1)
		}
		if entry.Output == "" {
			return fmt.Errorf("protocol %d: missing output", ii+1)
		}
		output := cfg.resolve(entry.Output)
		if prev, dup := outputs[output]; dup {
			return fmt.Errorf("protocol %d: output %q is also written by protocol %d", ii+1, entry.Output, prev)
		}
		outputs[output] = ii + 1
	}
	return nil
}

func (cfg *batchConfig) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.dir, path)
}

// jobs expands the protocol entries. Values missing from both the entry
// and the file fall back to the command-line flags.
func (cfg *batchConfig) jobs(flagPkg, flagPkgConfig string) []job {
	pkg := firstNonEmpty(cfg.Package, flagPkg)
	pc := firstNonEmpty(cfg.PkgConfig, flagPkgConfig)

	jobs := make([]job, 0, len(cfg.Protocols))
	for _, entry := range cfg.Protocols {
		j := job{
			input:     entry.Input,
			output:    cfg.resolve(entry.Output),
			pkg:       firstNonEmpty(entry.Package, pkg),
			pkgconfig: firstNonEmpty(entry.PkgConfig, pc),
		}
		if j.pkgconfig == "" {
			j.input = cfg.resolve(j.input)
		}
		jobs = append(jobs, j)
	}
	return jobs
}

func (cfg *batchConfig) dependencyPaths() []string {
	paths := make([]string, 0, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		paths = append(paths, cfg.resolve(strings.TrimSpace(dep)))
	}
	return paths
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
