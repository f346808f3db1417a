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

package syntax

import (
	"encoding/xml"
	"errors"
	"fmt"
)

type Error struct {
	code    uint32
	message string
	pos     Pos
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

func (err *Error) Pos() Pos {
	return err.pos
}

func errSourceTooLong(srcLen int) error {
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		pos: Pos{1, 1},
	}
}

func errEmptySource() error {
	return &Error{
		code:    1001,
		message: "Protocol description is empty",
		pos:     Pos{1, 1},
	}
}

func errInvalidXML(err error, pos Pos) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &Error{
			code:    1002,
			message: fmt.Sprintf("Invalid XML: %s", syntaxErr.Msg),
			pos:     Pos{uint32(syntaxErr.Line), 0},
		}
	}
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Invalid XML: %v", err),
		pos:     pos,
	}
}

func errMissingRoot(pos Pos) error {
	return &Error{
		code:    1003,
		message: "Document has no root element",
		pos:     pos,
	}
}

func errUnexpectedRoot(name string, pos Pos) error {
	return &Error{
		code:    1004,
		message: fmt.Sprintf("Expected root element <protocol>, found <%s>", name),
		pos:     pos,
	}
}

func errUnexpectedEOF(pos Pos) error {
	return &Error{
		code:    1005,
		message: "Unexpected end of input",
		pos:     pos,
	}
}
