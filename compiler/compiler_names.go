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
	"strings"

	"go.wlscan.dev/wlscan/schema"
)

const rootPrefix = schema.RootPackage + "_"

// NormalizeInterface converts a raw interface name into its binding
// identifier for the output package pkg. An empty raw name stands for an
// absent interface and yields "".
//
// A "<pkg>_" prefix is dropped. Otherwise a leading "wl_" becomes "wl.",
// so the name refers into the core package. Every remaining underscore is
// removed, which means "foo_bar" and "foobar" collide. Companion code
// depends on these exact identifiers, so the collision is reported by the
// compiler but never resolved.
func NormalizeInterface(pkg, raw string) string {
	if raw == "" {
		return ""
	}
	name := raw
	if prefix := pkg + "_"; strings.HasPrefix(name, prefix) {
		name = name[len(prefix):]
	} else if strings.HasPrefix(name, rootPrefix) {
		name = strings.Replace(name, "_", ".", 1)
	}
	return strings.ReplaceAll(name, "_", "")
}

// NormalizeMember converts request, event, enum, entry and argument names.
func NormalizeMember(raw string) string {
	return strings.ReplaceAll(raw, "_", "")
}
