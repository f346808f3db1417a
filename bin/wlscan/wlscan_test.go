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
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"go.wlscan.dev/wlscan/internal/logging"
	"go.wlscan.dev/wlscan/internal/testutil"
)

const fooProtocol = `<?xml version="1.0" encoding="UTF-8"?>
<protocol name="foo">
  <interface name="foo_bar" version="1">
    <request name="make">
      <arg name="id" type="new_id"/>
    </request>
  </interface>
</protocol>
`

const extProtocol = `<protocol name="ext">
  <interface name="ext_thing" version="1">
    <request name="attach">
      <arg name="base" type="object" interface="core_base"/>
    </request>
  </interface>
</protocol>
`

const coreProtocol = `<protocol name="core">
  <interface name="core_base" version="1"/>
</protocol>
`

const brokenProtocol = `<protocol name="broken">
  <interface name="broken_thing" version="1">
    <request name="poke">
      <arg name="level" type="float"/>
    </request>
  </interface>
</protocol>
`

func newTestCmd() (*cmdGenerate, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:   zerolog.DebugLevel,
		NoColor: true,
		Out:     &buf,
	})
	return &cmdGenerate{stderr: &buf, logger: &logger}, &buf
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	testutil.AssertNoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	buf, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	return string(buf)
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string][]string{
		"no args":           {},
		"one arg":           {"foo.xml"},
		"three args":        {"a.xml", "b.myr", "c"},
		"unknown flag":      {"--bogus", "a.xml", "b.myr"},
		"config with args":  {"--config", filepath.Join(dir, "batch.toml"), "a.xml", "b.myr"},
		"verbose and quiet": {"-v", "-q", "a.xml", "b.myr"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, _ := newTestCmd()
			testutil.ExpectEq(t, exitUsage, execute(context.Background(), cmd, args))
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "foo.xml", fooProtocol)
	output := filepath.Join(dir, "out", "foo.myr")

	cmd, logs := newTestCmd()
	status := execute(context.Background(), cmd, []string{"-p", "foo", input, output})
	testutil.ExpectEq(t, 0, status)

	got := readFile(t, output)
	testutil.ExpectTrue(t, strings.HasPrefix(got, "use std\nuse wl\n\npkg foo =\n"))
	testutil.ExpectTrue(t, strings.Contains(got, "generic bar_make = {obj, interface, version\n"))
	testutil.ExpectTrue(t, strings.Contains(logs.String(), "generated bindings"))
}

func TestGenerateDefaultPackage(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "foo.xml", fooProtocol)
	output := filepath.Join(dir, "foo.myr")

	cmd, _ := newTestCmd()
	testutil.ExpectEq(t, 0, execute(context.Background(), cmd, []string{input, output}))

	got := readFile(t, output)
	testutil.ExpectTrue(t, strings.Contains(got, "pkg wl =\n"))
	testutil.ExpectTrue(t, strings.Contains(got, "\t/* foobar */\n"))
}

func TestGenerateCompileError(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "broken.xml", brokenProtocol)
	output := filepath.Join(dir, "broken.myr")

	cmd, logs := newTestCmd()
	testutil.ExpectEq(t, exitFailure, execute(context.Background(), cmd, []string{input, output}))

	_, err := os.Stat(output)
	testutil.ExpectTrue(t, errors.Is(err, fs.ErrNotExist))
	testutil.ExpectTrue(t, strings.Contains(logs.String(), "code=E3001"))
}

func TestGenerateMissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.myr")

	cmd, _ := newTestCmd()
	status := execute(context.Background(), cmd, []string{filepath.Join(dir, "missing.xml"), output})
	testutil.ExpectEq(t, exitFailure, status)

	_, err := os.Stat(output)
	testutil.ExpectTrue(t, errors.Is(err, fs.ErrNotExist))
}

func TestGenerateDependencies(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ext.xml", extProtocol)
	core := writeFile(t, dir, "core.xml", coreProtocol)
	output := filepath.Join(dir, "ext.myr")

	cmd, logs := newTestCmd()
	testutil.ExpectEq(t, 0, execute(context.Background(), cmd, []string{"-p", "ext", input, output}))
	testutil.ExpectTrue(t, strings.Contains(logs.String(), "code=W4002"))

	cmd, logs = newTestCmd()
	status := execute(context.Background(), cmd, []string{"-p", "ext", "--dep", core, input, output})
	testutil.ExpectEq(t, 0, status)
	testutil.ExpectFalse(t, strings.Contains(logs.String(), "code=W4002"))
}

func TestGeneratePkgConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake pkg-config needs a POSIX shell")
	}
	dataDir := t.TempDir()
	writeFile(t, dataDir, "foo.xml", fooProtocol)
	tool := filepath.Join(t.TempDir(), "pkg-config")
	script := "#!/bin/sh\necho '" + dataDir + "'\n"
	testutil.AssertNoError(t, os.WriteFile(tool, []byte(script), 0o755))

	output := filepath.Join(t.TempDir(), "foo.myr")
	cmd, _ := newTestCmd()
	cmd.lookup.Tool = tool
	status := execute(context.Background(), cmd, []string{"-d", "foo-protocols", "-p", "foo", "foo.xml", output})
	testutil.ExpectEq(t, 0, status)
	testutil.ExpectTrue(t, strings.Contains(readFile(t, output), "pkg foo =\n"))
}

func TestGenerateBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "foo.xml", fooProtocol)
	writeFile(t, dir, "ext.xml", extProtocol)
	writeFile(t, dir, "core.xml", coreProtocol)
	config := writeFile(t, dir, "batch.toml", `
package = "foo"
dependencies = ["core.xml"]

[[protocol]]
input = "foo.xml"
output = "gen/foo.myr"

[[protocol]]
input = "ext.xml"
output = "gen/ext.myr"
package = "ext"
`)

	cmd, logs := newTestCmd()
	testutil.ExpectEq(t, 0, execute(context.Background(), cmd, []string{"--config", config}))

	testutil.ExpectTrue(t, strings.Contains(readFile(t, filepath.Join(dir, "gen", "foo.myr")), "pkg foo =\n"))
	testutil.ExpectTrue(t, strings.Contains(readFile(t, filepath.Join(dir, "gen", "ext.myr")), "pkg ext =\n"))
	testutil.ExpectFalse(t, strings.Contains(logs.String(), "code=W4002"))
}

func TestWriteOutputCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.myr")
	testutil.AssertNoError(t, writeOutput(path, []byte("pkg x =\n;;\n")))
	testutil.ExpectEq(t, "pkg x =\n;;\n", readFile(t, path))
}

func TestWriteOutputIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	testutil.AssertError(t, writeOutput(dir, []byte("x")))
	info, err := os.Stat(dir)
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, info.IsDir())
}
