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

// Package schema is the compiled form of a protocol description: the
// interfaces, requests, events and enums that bindings are generated
// from. Values are built by the compiler and not modified afterwards.
package schema

// RootPackage is the package of the core Wayland protocol. Interfaces of
// other packages reference its types through the "wl." namespace.
const RootPackage = "wl"

type Protocol struct {
	Name      string
	Package   string
	Copyright string

	Interfaces []*Interface
}

type Interface struct {
	Name    string
	RawName string

	// Display is set for the root display interface of the core
	// protocol, which has no handle type of its own.
	Display bool

	Requests []*Request
	Events   []*Event
	Enums    []*Enum
}

// Request is a client-to-server operation. Its opcode is its position in
// Interface.Requests.
type Request struct {
	Name string
	Args []*Arg

	// NewID is the argument allocating a new object, or nil.
	NewID *Arg
}

// IsGeneric reports whether the interface of the object created by this
// request is chosen by the caller.
func (r *Request) IsGeneric() bool {
	return r.NewID != nil && r.NewID.Interface == ""
}

// Event is a server-to-client notification. Its opcode is its position in
// Interface.Events.
type Event struct {
	Name string
	Args []*Arg
}

type Enum struct {
	Name    string
	Entries []*Entry
}

type Entry struct {
	Name string

	// Value is the literal from the description, kept as text so hex
	// values survive unchanged.
	Value string
}

type Arg struct {
	Name string
	Type ArgType

	// TargetType is the binding type expression, including the optional
	// wrapper for nullable arguments.
	TargetType string
	Wire       WireKind

	// Interface is the normalized name of the referenced interface, or
	// "" for any object.
	Interface string
	Nullable  bool

	// Enum names the enum the value belongs to, as written in the source.
	Enum string
}

type ArgType uint8

const (
	ArgType_UNKNOWN ArgType = iota
	ArgType_INT
	ArgType_UINT
	ArgType_STRING
	ArgType_FD
	ArgType_FIXED
	ArgType_ARRAY
	ArgType_OBJECT
	ArgType_NEW_ID
)

var argTypeNames = [...]string{
	ArgType_UNKNOWN: "unknown",
	ArgType_INT:     "int",
	ArgType_UINT:    "uint",
	ArgType_STRING:  "string",
	ArgType_FD:      "fd",
	ArgType_FIXED:   "fixed",
	ArgType_ARRAY:   "array",
	ArgType_OBJECT:  "object",
	ArgType_NEW_ID:  "new_id",
}

// String returns the type tag as spelled in protocol descriptions.
func (t ArgType) String() string {
	if int(t) < len(argTypeNames) {
		return argTypeNames[t]
	}
	return argTypeNames[ArgType_UNKNOWN]
}

// WireKind selects the wire argument constructor and unmarshal routine.
type WireKind uint8

const (
	WireKind_INT WireKind = iota
	WireKind_FD
	WireKind_DATA
)

// String returns the suffix of the companion library's argument union
// tag, as in `wl.Argint.
func (k WireKind) String() string {
	switch k {
	case WireKind_FD:
		return "fd"
	case WireKind_DATA:
		return "data"
	}
	return "int"
}
