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

	"go.wlscan.dev/wlscan/syntax"
)

type Warning struct {
	code    uint32
	message string
	pos     syntax.Pos
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Pos() syntax.Pos {
	return w.pos
}

func warnNameCollision(scope, prevRaw, raw, name string, node syntax.Node) *Warning {
	return &Warning{
		code: 4000,
		message: fmt.Sprintf(
			"'%s' and '%s' in %s both normalize to '%s'",
			prevRaw, raw, scope, name,
		),
		pos: node.Pos(),
	}
}

func warnDroppedEvent(iface, event, arg string, node syntax.Node) *Warning {
	return &Warning{
		code: 4001,
		message: fmt.Sprintf(
			"Event '%s.%s' is dropped when object argument '%s' is not in the object table",
			iface, event, arg,
		),
		pos: node.Pos(),
	}
}

func warnUnknownInterface(raw string, node syntax.Node) *Warning {
	return &Warning{
		code:    4002,
		message: fmt.Sprintf("Interface '%s' is not defined by this protocol or its dependencies", raw),
		pos:     node.Pos(),
	}
}

func warnInvalidAllowNull(name, value string, node syntax.Node) *Warning {
	return &Warning{
		code: 4003,
		message: fmt.Sprintf(
			"Argument '%s' has allow-null=%q, treated as \"false\"",
			name, value,
		),
		pos: node.Pos(),
	}
}
