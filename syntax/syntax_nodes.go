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
	"fmt"
)

// Pos is the line and column of an element's start tag. Columns are
// zero when the decoder could not report one.
type Pos struct {
	line, column uint32
}

func NewPos(line, column uint32) Pos {
	return Pos{line, column}
}

func (p Pos) Line() uint32 {
	return p.line
}

func (p Pos) Column() uint32 {
	return p.column
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.line, p.column)
}

type Node interface {
	Pos() Pos

	// Element returns the XML element name the node was decoded from.
	Element() string
}

type attrs []xml.Attr

func (a attrs) get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

type Protocol struct {
	pos       Pos
	attrs     attrs
	copyright *string

	Interfaces []*Interface
}

func (p *Protocol) Pos() Pos        { return p.pos }
func (p *Protocol) Element() string { return "protocol" }

func (p *Protocol) Name() (string, bool) {
	return p.attrs.get("name")
}

// Copyright returns the raw text of the <copyright> element, if any.
func (p *Protocol) Copyright() (string, bool) {
	if p.copyright == nil {
		return "", false
	}
	return *p.copyright, true
}

type Interface struct {
	pos   Pos
	attrs attrs

	Requests []*Request
	Events   []*Event
	Enums    []*Enum
}

func (i *Interface) Pos() Pos        { return i.pos }
func (i *Interface) Element() string { return "interface" }

func (i *Interface) Name() (string, bool) {
	return i.attrs.get("name")
}

func (i *Interface) Version() (string, bool) {
	return i.attrs.get("version")
}

type Request struct {
	pos   Pos
	attrs attrs

	Args []*Arg
}

func (r *Request) Pos() Pos        { return r.pos }
func (r *Request) Element() string { return "request" }

func (r *Request) Name() (string, bool) {
	return r.attrs.get("name")
}

// Type is "destructor" for requests that destroy their object.
func (r *Request) Type() (string, bool) {
	return r.attrs.get("type")
}

func (r *Request) Since() (string, bool) {
	return r.attrs.get("since")
}

type Event struct {
	pos   Pos
	attrs attrs

	Args []*Arg
}

func (e *Event) Pos() Pos        { return e.pos }
func (e *Event) Element() string { return "event" }

func (e *Event) Name() (string, bool) {
	return e.attrs.get("name")
}

func (e *Event) Since() (string, bool) {
	return e.attrs.get("since")
}

type Enum struct {
	pos   Pos
	attrs attrs

	Entries []*Entry
}

func (e *Enum) Pos() Pos        { return e.pos }
func (e *Enum) Element() string { return "enum" }

func (e *Enum) Name() (string, bool) {
	return e.attrs.get("name")
}

func (e *Enum) Bitfield() (string, bool) {
	return e.attrs.get("bitfield")
}

type Entry struct {
	pos   Pos
	attrs attrs
}

func (e *Entry) Pos() Pos        { return e.pos }
func (e *Entry) Element() string { return "entry" }

func (e *Entry) Name() (string, bool) {
	return e.attrs.get("name")
}

func (e *Entry) Value() (string, bool) {
	return e.attrs.get("value")
}

func (e *Entry) Summary() (string, bool) {
	return e.attrs.get("summary")
}

type Arg struct {
	pos   Pos
	attrs attrs
}

func (a *Arg) Pos() Pos        { return a.pos }
func (a *Arg) Element() string { return "arg" }

func (a *Arg) Name() (string, bool) {
	return a.attrs.get("name")
}

func (a *Arg) Type() (string, bool) {
	return a.attrs.get("type")
}

func (a *Arg) Interface() (string, bool) {
	return a.attrs.get("interface")
}

func (a *Arg) AllowNull() (string, bool) {
	return a.attrs.get("allow-null")
}

func (a *Arg) Enum() (string, bool) {
	return a.attrs.get("enum")
}

func (a *Arg) Summary() (string, bool) {
	return a.attrs.get("summary")
}
