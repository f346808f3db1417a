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

package codegen

import (
	"fmt"
	"strings"

	"go.wlscan.dev/wlscan/compiler"
	"go.wlscan.dev/wlscan/schema"
)

func (e *emitter) emitRequests(iface *schema.Interface) {
	for opcode, req := range iface.Requests {
		e.emitRequest(iface, opcode, req)
	}
}

func (e *emitter) emitRequest(iface *schema.Interface, opcode int, req *schema.Request) {
	params := []string{selfName(iface)}
	for _, arg := range req.Args {
		if arg == req.NewID {
			if req.IsGeneric() {
				params = append(params, "interface", "version")
			}
			continue
		}
		params = append(params, arg.Name)
	}

	e.line("")
	e.linef("%s %s = {%s", declKind(req), memberName(iface, req.Name), strings.Join(params, ", "))
	e.indent += 1
	if iface.Display {
		e.line("var obj = &dpy.obj")
	}
	if req.NewID != nil {
		e.line("var newobj = wl.mkobj(obj.conn)")
	}
	e.linef("wl.marshal(obj.conn, (obj: wl.object#), %d, [", opcode)
	e.indent += 1
	for _, arg := range req.Args {
		if arg == req.NewID && req.IsGeneric() {
			e.line("`wl.Argdata (`std.Some interface, true),")
			e.line("`wl.Argint version,")
		}
		e.linef("`wl.Arg%s %s,", arg.Wire, marshalValue(arg))
	}
	e.indent -= 1
	e.line("][:])")
	if req.NewID != nil {
		e.linef("-> (newobj: %s)", req.NewID.TargetType)
	}
	e.indent -= 1
	e.line("}")
}

// marshalValue is the wire argument payload for arg. Strings are sent with
// their terminating NUL counted, arrays without.
func marshalValue(arg *schema.Arg) string {
	value := arg.Name
	switch arg.Type {
	case schema.ArgType_NEW_ID:
		value = "newobj.id"
	case schema.ArgType_INT, schema.ArgType_FIXED:
		value = fmt.Sprintf("(%s: uint32)", arg.Name)
	}
	terminated := arg.Type == schema.ArgType_STRING

	if arg.Nullable {
		switch arg.Type {
		case schema.ArgType_OBJECT:
			elem, _ := compiler.MapType(arg.Type, false, arg.Interface)
			return fmt.Sprintf("std.getv(%s, (&wl.Nullobj: %s)).id", value, elem)
		case schema.ArgType_STRING, schema.ArgType_ARRAY:
			return fmt.Sprintf("(%s, %t)", value, terminated)
		}
		return value
	}

	switch arg.Type {
	case schema.ArgType_OBJECT:
		return value + ".id"
	case schema.ArgType_STRING, schema.ArgType_ARRAY:
		return fmt.Sprintf("(`std.Some %s, %t)", value, terminated)
	}
	return value
}
