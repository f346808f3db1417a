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

package pkgconfig

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.wlscan.dev/wlscan/internal/testutil"
)

func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake pkg-config needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "pkg-config")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	testutil.AssertNoError(t, err)
	return path
}

func TestDataDir(t *testing.T) {
	tool := fakeTool(t, `
if [ "$1" = "--variable" ] && [ "$2" = "pkgdatadir" ] && [ "$3" = "wayland-scanner" ]; then
	echo /usr/share/wayland
	exit 0
fi
echo "unexpected arguments: $*" >&2
exit 1
`)
	lookup := &Lookup{Tool: tool}

	dir, err := lookup.DataDir(context.Background(), "wayland-scanner")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "/usr/share/wayland", dir)

	path, err := lookup.ResolveProtocol(context.Background(), "wayland-scanner", "wayland.xml")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "/usr/share/wayland/wayland.xml", path)
}

func TestDataDirToolFailure(t *testing.T) {
	tool := fakeTool(t, `
echo "Package wayland-protocols was not found" >&2
exit 1
`)
	lookup := &Lookup{Tool: tool}
	_, err := lookup.DataDir(context.Background(), "wayland-protocols")
	testutil.AssertError(t, err)
	testutil.ExpectTrue(t, strings.Contains(err.Error(), "was not found"))
}

func TestDataDirEmptyVariable(t *testing.T) {
	tool := fakeTool(t, "echo\n")
	lookup := &Lookup{Tool: tool}
	_, err := lookup.DataDir(context.Background(), "nothing")
	testutil.AssertError(t, err)
	testutil.ExpectTrue(t, strings.Contains(err.Error(), "pkgdatadir is not set"))
}

func TestDataDirEmptyName(t *testing.T) {
	lookup := &Lookup{Tool: "/nonexistent"}
	_, err := lookup.DataDir(context.Background(), "")
	testutil.AssertError(t, err)
}

func TestToolFromEnv(t *testing.T) {
	t.Setenv(EnvPkgConfig, "/opt/bin/pkgconf")
	testutil.ExpectEq(t, "/opt/bin/pkgconf", (&Lookup{}).tool())
	testutil.ExpectEq(t, "custom", (&Lookup{Tool: "custom"}).tool())

	t.Setenv(EnvPkgConfig, "")
	testutil.ExpectEq(t, "pkg-config", (&Lookup{}).tool())
}
