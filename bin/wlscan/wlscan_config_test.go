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
	"path/filepath"
	"strings"
	"testing"

	"go.wlscan.dev/wlscan/internal/testutil"
)

func TestLoadBatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "batch.toml", `
package = "wl"
pkgconfig = "wayland-scanner"

[[protocol]]
input = "wayland.xml"
output = "wl/proto.myr"

[[protocol]]
input = " xdg-shell.xml "
output = "/abs/xdg.myr"
package = "xdg"
pkgconfig = "wayland-protocols"
`)
	cfg, err := loadBatchConfig(path)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 2, len(cfg.Protocols))

	jobs := cfg.jobs("ignored", "")
	testutil.ExpectEq(t, job{
		input:     "wayland.xml",
		output:    filepath.Join(dir, "wl", "proto.myr"),
		pkg:       "wl",
		pkgconfig: "wayland-scanner",
	}, jobs[0])
	testutil.ExpectEq(t, job{
		input:     "xdg-shell.xml",
		output:    "/abs/xdg.myr",
		pkg:       "xdg",
		pkgconfig: "wayland-protocols",
	}, jobs[1])
}

func TestBatchConfigFlagFallback(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "batch.toml", `
[[protocol]]
input = "foo.xml"
output = "foo.myr"
`)
	cfg, err := loadBatchConfig(path)
	testutil.AssertNoError(t, err)

	jobs := cfg.jobs("foo", "")
	testutil.ExpectEq(t, job{
		input:  filepath.Join(dir, "foo.xml"),
		output: filepath.Join(dir, "foo.myr"),
		pkg:    "foo",
	}, jobs[0])

	jobs = cfg.jobs("foo", "foo-protocols")
	testutil.ExpectEq(t, "foo.xml", jobs[0].input)
	testutil.ExpectEq(t, "foo-protocols", jobs[0].pkgconfig)
}

func TestBatchConfigErrors(t *testing.T) {
	tests := map[string]struct {
		content string
		want    string
	}{
		"no protocols": {
			content: `package = "wl"`,
			want:    "no [[protocol]] entries",
		},
		"missing input": {
			content: "[[protocol]]\noutput = \"a.myr\"\n",
			want:    "protocol 1: missing input",
		},
		"missing output": {
			content: "[[protocol]]\ninput = \"a.xml\"\n",
			want:    "protocol 1: missing output",
		},
		"duplicate output": {
			content: "[[protocol]]\ninput = \"a.xml\"\noutput = \"x.myr\"\n" +
				"[[protocol]]\ninput = \"b.xml\"\noutput = \"./x.myr\"\n",
			want: "protocol 2: output \"./x.myr\" is also written by protocol 1",
		},
		"unknown key": {
			content: "[[protocol]]\ninput = \"a.xml\"\noutput = \"a.myr\"\nformat = \"c\"\n",
			want:    "unknown key",
		},
		"bad syntax": {
			content: "[[protocol]\n",
			want:    "load batch config",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "batch.toml", test.content)
			_, err := loadBatchConfig(path)
			testutil.AssertError(t, err)
			testutil.ExpectTrue(t, strings.Contains(err.Error(), test.want))
		})
	}
}

func TestBatchConfigDependencyPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "batch.toml", `
dependencies = ["core.xml", "/usr/share/wayland/wayland.xml"]

[[protocol]]
input = "a.xml"
output = "a.myr"
`)
	cfg, err := loadBatchConfig(path)
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t,
		[]string{filepath.Join(dir, "core.xml"), "/usr/share/wayland/wayland.xml"},
		cfg.dependencyPaths())
}
