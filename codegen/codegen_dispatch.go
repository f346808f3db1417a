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

	"go.wlscan.dev/wlscan/schema"
)

// emitListener defines <iface>_setlistener, which replaces the object's
// dispatch routine with one that decodes events by opcode and passes them
// to the listener. Unknown opcodes are fatal at run time.
func (e *emitter) emitListener(iface *schema.Interface) {
	if len(iface.Events) == 0 {
		return
	}

	e.line("")
	e.linef("generic %s_setlistener = {%s, l", iface.Name, selfName(iface))
	e.indent += 1
	if iface.Display {
		e.line("var obj = &dpy.obj")
	}
	e.line("obj.dispatch = `std.Some std.fndup({op, d")
	e.indent += 1
	e.line("match op")
	for opcode, event := range iface.Events {
		e.linef("| %d:", opcode)
		e.indent += 1
		e.line("var ev")
		for _, arg := range event.Args {
			e.emitUnmarshal(arg)
		}
		e.linef("%s(l, &ev)", memberName(iface, event.Name))
		e.indent -= 1
	}
	e.line(`| _: std.fatal("unrecognized op\n")`)
	e.line(";;")
	e.indent -= 1
	e.line("})")
	e.indent -= 1
	e.line("}")
}

func (e *emitter) emitUnmarshal(arg *schema.Arg) {
	switch arg.Type {
	case schema.ArgType_OBJECT:
		obj := "o"
		if arg.Interface != "" {
			obj = fmt.Sprintf("(o: %s#)", arg.Interface)
		}
		e.line("match mapget(&obj.conn.objs, wl.unmarshal(obj.conn, &d))")
		if arg.Nullable {
			e.linef("| `std.Some o: ev.%s = `std.Some %s", arg.Name, obj)
			e.linef("| `std.None: ev.%s = `std.None", arg.Name)
		} else {
			// TODO: report unknown object ids through a hook in the wl
			// companion library once it grows one.
			e.linef("| `std.Some o: ev.%s = %s", arg.Name, obj)
			e.line("| `std.None: -> void")
		}
		e.line(";;")
	case schema.ArgType_STRING, schema.ArgType_ARRAY:
		if arg.Nullable {
			e.linef("ev.%s = wl.unmarshaldata(&d)", arg.Name)
			return
		}
		trim := ""
		if arg.Type == schema.ArgType_STRING {
			trim = "[:s.len-1]"
		}
		e.line("match wl.unmarshaldata(&d)")
		e.linef("| `std.Some s: ev.%s = s%s", arg.Name, trim)
		e.line("| `std.None: -> void")
		e.line(";;")
	default:
		e.linef("ev.%s = wl.unmarshal(obj.conn, &d)", arg.Name)
	}
}
