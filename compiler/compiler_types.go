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

package compiler

import (
	"fmt"

	"go.wlscan.dev/wlscan/schema"
)

var builtinTypes = map[string]schema.ArgType{
	"int":    schema.ArgType_INT,
	"uint":   schema.ArgType_UINT,
	"string": schema.ArgType_STRING,
	"fd":     schema.ArgType_FD,
	"fixed":  schema.ArgType_FIXED,
	"array":  schema.ArgType_ARRAY,
	"object": schema.ArgType_OBJECT,
	"new_id": schema.ArgType_NEW_ID,
}

func ParseArgType(tag string) (schema.ArgType, bool) {
	t, ok := builtinTypes[tag]
	return t, ok
}

// MapType returns the binding type expression and wire kind of an
// argument. iface is the normalized referenced interface, "" for any.
// Nullability wraps the type in std.option and never changes the wire
// kind.
func MapType(t schema.ArgType, nullable bool, iface string) (string, schema.WireKind) {
	var target string
	wire := schema.WireKind_INT
	switch t {
	case schema.ArgType_INT:
		target = "int32"
	case schema.ArgType_UINT:
		target = "uint32"
	case schema.ArgType_STRING:
		target = "byte[:]"
		wire = schema.WireKind_DATA
	case schema.ArgType_FD:
		target = "std.fd"
		wire = schema.WireKind_FD
	case schema.ArgType_FIXED:
		target = "wl.fixed"
	case schema.ArgType_ARRAY:
		target = "byte[:]"
		wire = schema.WireKind_DATA
	case schema.ArgType_OBJECT:
		target = refType(iface, "wl.object")
	case schema.ArgType_NEW_ID:
		target = refType(iface, "@a")
	default:
		panic(fmt.Sprintf("MapType: unhandled argument type %v", t))
	}
	if nullable {
		target = fmt.Sprintf("std.option(%s)", target)
	}
	return target, wire
}

func refType(iface, fallback string) string {
	if iface == "" {
		iface = fallback
	}
	return iface + "#"
}
