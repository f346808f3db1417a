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

package codegen_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"testing"

	"go.wlscan.dev/wlscan/codegen"
	"go.wlscan.dev/wlscan/compiler"
	"go.wlscan.dev/wlscan/internal/testutil"
	"go.wlscan.dev/wlscan/schema"
	"go.wlscan.dev/wlscan/syntax"
)

var testdata = os.DirFS("testdata")

var expectFileRx = regexp.MustCompile(`^expect_([a-z0-9]+)\.myr$`)

func generate(t *testing.T, src []byte, pkg string) []byte {
	t.Helper()
	parsed, err := syntax.Parse(src)
	testutil.AssertNoError(t, err)
	result := compiler.Compile(parsed, compiler.WithPackage(pkg))
	for _, err := range result.Errors {
		t.Error(err)
	}
	if t.Failed() {
		t.FailNow()
	}
	out, err := codegen.Generate(result.Protocol())
	testutil.AssertNoError(t, err)
	return out
}

func goldenTest(t *testing.T, testName string) {
	t.Parallel()

	src, err := fs.ReadFile(testdata, fmt.Sprintf("%s/%s.xml", testName, testName))
	testutil.AssertNoError(t, err)

	entries, err := fs.ReadDir(testdata, testName)
	testutil.AssertNoError(t, err)
	var checked int
	for _, entry := range entries {
		match := expectFileRx.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		pkg := match[1]
		t.Run(pkg, func(t *testing.T) {
			got := generate(t, src, pkg)
			testutil.ExpectGolden(t, testdata, testName+"/"+entry.Name(), got)
		})
		checked += 1
	}
	if checked == 0 {
		t.Fatalf("no expect_*.myr files in testdata/%s", testName)
	}
}

func TestGolden(t *testing.T) {
	for _, name := range []string{"core", "xdg", "generic"} {
		t.Run(name, func(t *testing.T) {
			goldenTest(t, name)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	src, err := fs.ReadFile(testdata, "core/core.xml")
	testutil.AssertNoError(t, err)

	first := generate(t, src, "wl")
	for ii := 0; ii < 5; ii++ {
		testutil.ExpectTrue(t, bytes.Equal(first, generate(t, src, "wl")))
	}
}

type failingWriter struct {
	remaining int
}

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, errWriteFailed
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestGenerateToWriteError(t *testing.T) {
	src, err := fs.ReadFile(testdata, "core/core.xml")
	testutil.AssertNoError(t, err)
	parsed, err := syntax.Parse(src)
	testutil.AssertNoError(t, err)
	result := compiler.Compile(parsed)

	for _, limit := range []int{0, 10, 500} {
		err := codegen.GenerateTo(result.Protocol(), &failingWriter{remaining: limit})
		testutil.ExpectTrue(t, errors.Is(err, errWriteFailed))
	}
}

func TestGenerateEmptyProtocol(t *testing.T) {
	out, err := codegen.Generate(&schema.Protocol{
		Name:    "empty",
		Package: "empty",
	})
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, "use std\nuse wl\n\npkg empty =\n;;\n", string(out))
}
