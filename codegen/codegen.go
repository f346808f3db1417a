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

// Package codegen writes Myrddin client bindings for a compiled protocol.
//
// Output has two blocks. The package block declares every handle type,
// request, event record, enum constant and listener trait. The
// implementation block that follows defines the request bodies and the
// listener installers, since declarations must precede their use.
package codegen

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.wlscan.dev/wlscan/schema"
)

func Generate(protocol *schema.Protocol) ([]byte, error) {
	var buf bytes.Buffer
	if err := GenerateTo(protocol, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func GenerateTo(protocol *schema.Protocol, w io.Writer) error {
	e := &emitter{w: w}
	e.emitCopyright(protocol.Copyright)
	e.emitUses(protocol.Package)
	e.linef("pkg %s =", protocol.Package)
	for ii, iface := range protocol.Interfaces {
		if ii != 0 {
			e.line("")
		}
		e.emitDecls(iface)
	}
	e.line(";;")

	for _, iface := range protocol.Interfaces {
		e.emitRequests(iface)
		e.emitListener(iface)
	}
	return e.err
}

type emitter struct {
	w      io.Writer
	indent int
	err    error
}

func (e *emitter) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" && s != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *emitter) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

// emitCopyright writes the copyright text as a block comment, with each
// line trimmed.
func (e *emitter) emitCopyright(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	e.line("/*")
	for _, line := range strings.Split(text, "\n") {
		e.line(strings.TrimSpace(line))
	}
	e.line("*/")
	e.line("")
}

func (e *emitter) emitUses(pkg string) {
	e.line("use std")
	if pkg == schema.RootPackage {
		e.line(`use "types"`)
		e.line(`use "util"`)
		e.line(`use "connection"`)
	} else {
		e.line("use wl")
	}
	e.line("")
}

func declKind(req *schema.Request) string {
	if req.IsGeneric() {
		return "generic"
	}
	return "const"
}

func memberName(iface *schema.Interface, member string) string {
	return iface.Name + "_" + member
}

// selfName is the parameter bound to the object a request or listener
// operates on. The display is passed as the connection's display value.
func selfName(iface *schema.Interface) string {
	if iface.Display {
		return "dpy"
	}
	return "obj"
}

// capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
