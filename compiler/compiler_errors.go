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

type Error struct {
	code    uint32
	message string
	pos     syntax.Pos
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Pos() syntax.Pos {
	return err.pos
}

func errMissingAttribute(node syntax.Node, attr string) error {
	return &Error{
		code: 3000,
		message: fmt.Sprintf(
			"Element <%s> is missing required attribute '%s'",
			node.Element(), attr,
		),
		pos: node.Pos(),
	}
}

func errUnknownArgType(name, tag string, node syntax.Node) error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Argument '%s' has unknown type %q", name, tag),
		pos:     node.Pos(),
	}
}

func errDuplicateInterface(raw, name string, node syntax.Node) error {
	return &Error{
		code: 3002,
		message: fmt.Sprintf(
			"Interface '%s' conflicts with an earlier interface named '%s'",
			raw, name,
		),
		pos: node.Pos(),
	}
}

func errMultipleNewID(iface, request string, node syntax.Node) error {
	return &Error{
		code: 3003,
		message: fmt.Sprintf(
			"Request '%s.%s' has more than one new_id argument",
			iface, request,
		),
		pos: node.Pos(),
	}
}

func errNullableNewID(name string, node syntax.Node) error {
	return &Error{
		code:    3004,
		message: fmt.Sprintf("new_id argument '%s' cannot allow null", name),
		pos:     node.Pos(),
	}
}

func errEventNewIDWithoutInterface(iface, event string, node syntax.Node) error {
	return &Error{
		code: 3005,
		message: fmt.Sprintf(
			"Event '%s.%s' creates an object without naming its interface",
			iface, event,
		),
		pos: node.Pos(),
	}
}

func errDependencyConflict(raw, protocol, prevProtocol string, node syntax.Node) error {
	return &Error{
		code: 3006,
		message: fmt.Sprintf(
			"Interface '%s' of protocol '%s' is also defined by protocol '%s'",
			raw, protocol, prevProtocol,
		),
		pos: node.Pos(),
	}
}
