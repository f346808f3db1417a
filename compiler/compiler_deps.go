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
	"go.wlscan.dev/wlscan/syntax"
)

// InterfaceSet holds the interfaces defined by dependency protocols, such
// as the core protocol when compiling an extension.
type InterfaceSet struct {
	protocols map[string] /* raw interface name */ string /* protocol name */
}

func Merge(deps []*syntax.Protocol) (*InterfaceSet, error) {
	set := &InterfaceSet{
		protocols: make(map[string]string),
	}
	for _, dep := range deps {
		protocolName, _ := dep.Name()
		for _, node := range dep.Interfaces {
			raw, ok := node.Name()
			if !ok || raw == "" {
				return nil, errMissingAttribute(node, "name")
			}
			if prev, conflict := set.protocols[raw]; conflict {
				return nil, errDependencyConflict(raw, protocolName, prev, node)
			}
			set.protocols[raw] = protocolName
		}
	}
	return set, nil
}

// Contains reports whether raw names an interface of some dependency.
func (s *InterfaceSet) Contains(raw string) bool {
	if s == nil {
		return false
	}
	_, ok := s.protocols[raw]
	return ok
}

func (s *InterfaceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.protocols)
}
