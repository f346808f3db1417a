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

	"go.wlscan.dev/wlscan/schema"
)

func (e *emitter) emitDecls(iface *schema.Interface) {
	e.indent += 1
	defer func() { e.indent -= 1 }()

	e.linef("/* %s */", iface.Name)
	if !iface.Display {
		e.linef("type %s = wl.object", iface.Name)
	}
	for _, req := range iface.Requests {
		e.line(requestSignature(iface, req))
	}
	for _, event := range iface.Events {
		e.linef("type %s = struct", memberName(iface, event.Name))
		e.indent += 1
		for _, arg := range event.Args {
			e.linef("%s: %s", arg.Name, arg.TargetType)
		}
		e.indent -= 1
		e.line(";;")
	}
	for _, enum := range iface.Enums {
		for _, entry := range enum.Entries {
			e.linef("const %s: uint32 = %s", enumConstName(iface, enum, entry), entry.Value)
		}
	}
	if len(iface.Events) == 0 {
		return
	}

	e.linef("trait %s_listener @a =", iface.Name)
	e.indent += 1
	for _, event := range iface.Events {
		name := memberName(iface, event.Name)
		e.linef("%s: (l: @a#, ev: %s# -> void)", name, name)
	}
	e.indent -= 1
	e.line(";;")
	e.linef(
		"generic %s_setlistener: (obj: %s#, l: @a::%s_listener# -> void)",
		iface.Name, iface.Name, iface.Name,
	)
}

// requestSignature declares a request. A generic request takes the
// interface name and version of the object to create in place of its
// new_id argument.
func requestSignature(iface *schema.Interface, req *schema.Request) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s %s: (obj: %s#", declKind(req), memberName(iface, req.Name), iface.Name)
	for _, arg := range req.Args {
		if arg == req.NewID {
			if req.IsGeneric() {
				buf.WriteString(", interface: byte[:], version: uint32")
			}
			continue
		}
		fmt.Fprintf(&buf, ", %s: %s", arg.Name, arg.TargetType)
	}
	ret := "void"
	if req.NewID != nil {
		ret = req.NewID.TargetType
	}
	fmt.Fprintf(&buf, " -> %s)", ret)
	return buf.String()
}

func enumConstName(iface *schema.Interface, enum *schema.Enum, entry *schema.Entry) string {
	return capitalize(iface.Name) + capitalize(enum.Name) + capitalize(entry.Name)
}
