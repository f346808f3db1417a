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

package testutil

import (
	"cmp"
	"encoding/json"
	"io/fs"
	"regexp"
	"slices"
	"testing"

	"go.wlscan.dev/wlscan/syntax"
)

// Diagnostic is the common surface of compiler errors and warnings.
type Diagnostic interface {
	Code() uint32
	Message() string
	Pos() syntax.Pos
}

type ExpectedDiagnostic struct {
	Code    uint32
	Message string
	Pattern *regexp.Regexp
	Line    uint32
}

// LoadExpectedDiagnostics reads a JSON file of the form
//
//	{"diagnostics": [{"code": 3001, "message_pattern": "...", "line": 4}]}
//
// sorted by line, then code.
func LoadExpectedDiagnostics(t *testing.T, testdata fs.FS, jsonPath string) []*ExpectedDiagnostic {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	type expectedDiagnostics struct {
		Diagnostics []struct {
			Code    uint32 `json:"code"`
			Message string `json:"message"`
			Pattern string `json:"message_pattern"`
			Line    uint32 `json:"line"`
		} `json:"diagnostics"`
	}

	var raw expectedDiagnostics
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}

	var out []*ExpectedDiagnostic
	for _, raw := range raw.Diagnostics {
		if raw.Code == 0 {
			t.Fatalf("%s: diagnostic has no code", jsonPath)
		}
		expect := &ExpectedDiagnostic{
			Code:    raw.Code,
			Message: raw.Message,
			Line:    raw.Line,
		}
		if raw.Pattern != "" {
			expect.Pattern, err = regexp.Compile(raw.Pattern)
			if err != nil {
				t.Fatal(err)
			}
		}
		out = append(out, expect)
	}

	slices.SortFunc(out, func(a, b *ExpectedDiagnostic) int {
		if x := cmp.Compare(a.Line, b.Line); x != 0 {
			return x
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return out
}

// ExpectDiagnostics checks got against want pairwise, after sorting got
// the same way LoadExpectedDiagnostics sorts want.
func ExpectDiagnostics[D Diagnostic](t *testing.T, want []*ExpectedDiagnostic, got []D) {
	t.Helper()

	got = slices.Clone(got)
	slices.SortStableFunc(got, func(a, b D) int {
		if x := cmp.Compare(a.Pos().Line(), b.Pos().Line()); x != 0 {
			return x
		}
		return cmp.Compare(a.Code(), b.Code())
	})

	for ii := 0; ii < max(len(want), len(got)); ii++ {
		if ii >= len(got) {
			t.Errorf("missing diagnostic with code %d (line %d)", want[ii].Code, want[ii].Line)
			continue
		}
		if ii >= len(want) {
			t.Errorf("unexpected diagnostic %q (code %d)", got[ii].Message(), got[ii].Code())
			continue
		}
		ExpectEq(t, want[ii].Code, got[ii].Code())
		if want[ii].Pattern != nil {
			ExpectMatch(t, want[ii].Pattern, got[ii].Message())
		} else if want[ii].Message != "" {
			ExpectEq(t, want[ii].Message, got[ii].Message())
		}
		if want[ii].Line != 0 {
			ExpectEq(t, want[ii].Line, got[ii].Pos().Line())
		}
	}
}
