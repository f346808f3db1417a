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

// Package syntax decodes Wayland protocol descriptions into a tree of
// typed nodes. Attribute values are kept verbatim; checking that required
// attributes are present is left to the compiler.
package syntax

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"
)

const maxSrcLen = 64 << 20

func Parse(src []byte) (*Protocol, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, errEmptySource()
	}
	p := &parser{dec: xml.NewDecoder(bytes.NewReader(src))}
	return p.parseDocument()
}

type parser struct {
	dec *xml.Decoder
}

func (p *parser) pos() Pos {
	line, column := p.dec.InputPos()
	return Pos{uint32(line), uint32(column)}
}

func (p *parser) next() (xml.Token, error) {
	tok, err := p.dec.Token()
	if err == nil {
		return tok, nil
	}
	if errors.Is(err, io.EOF) {
		return nil, errUnexpectedEOF(p.pos())
	}
	return nil, errInvalidXML(err, p.pos())
}

func (p *parser) skip() error {
	if err := p.dec.Skip(); err != nil {
		return errInvalidXML(err, p.pos())
	}
	return nil
}

func (p *parser) parseDocument() (*Protocol, error) {
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, errMissingRoot(p.pos())
		}
		if err != nil {
			return nil, errInvalidXML(err, p.pos())
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "protocol" {
			return nil, errUnexpectedRoot(start.Name.Local, p.pos())
		}
		return p.parseProtocol(start)
	}
}

// children calls fn for each child element of the element most recently
// opened, then consumes that element's end tag. fn must consume the
// child completely.
func (p *parser) children(fn func(start xml.StartElement, pos Pos) error) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if err := fn(tok, p.pos()); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) text() (string, error) {
	var buf strings.Builder
	for {
		tok, err := p.next()
		if err != nil {
			return "", err
		}
		switch tok := tok.(type) {
		case xml.CharData:
			buf.Write(tok)
		case xml.StartElement:
			if err := p.skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return buf.String(), nil
		}
	}
}

func (p *parser) parseProtocol(start xml.StartElement) (*Protocol, error) {
	node := &Protocol{pos: p.pos(), attrs: attrsOf(start)}
	err := p.children(func(child xml.StartElement, pos Pos) error {
		switch child.Name.Local {
		case "copyright":
			text, err := p.text()
			if err != nil {
				return err
			}
			node.copyright = &text
			return nil
		case "interface":
			iface, err := p.parseInterface(child, pos)
			if err != nil {
				return err
			}
			node.Interfaces = append(node.Interfaces, iface)
			return nil
		}
		return p.skip()
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) parseInterface(start xml.StartElement, pos Pos) (*Interface, error) {
	node := &Interface{pos: pos, attrs: attrsOf(start)}
	err := p.children(func(child xml.StartElement, pos Pos) error {
		switch child.Name.Local {
		case "request":
			args, err := p.parseArgs()
			if err != nil {
				return err
			}
			node.Requests = append(node.Requests, &Request{
				pos:   pos,
				attrs: attrsOf(child),
				Args:  args,
			})
			return nil
		case "event":
			args, err := p.parseArgs()
			if err != nil {
				return err
			}
			node.Events = append(node.Events, &Event{
				pos:   pos,
				attrs: attrsOf(child),
				Args:  args,
			})
			return nil
		case "enum":
			enum := &Enum{pos: pos, attrs: attrsOf(child)}
			err := p.children(func(child xml.StartElement, pos Pos) error {
				if child.Name.Local == "entry" {
					enum.Entries = append(enum.Entries, &Entry{
						pos:   pos,
						attrs: attrsOf(child),
					})
				}
				return p.skip()
			})
			if err != nil {
				return err
			}
			node.Enums = append(node.Enums, enum)
			return nil
		}
		return p.skip()
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) parseArgs() ([]*Arg, error) {
	var args []*Arg
	err := p.children(func(child xml.StartElement, pos Pos) error {
		if child.Name.Local == "arg" {
			args = append(args, &Arg{pos: pos, attrs: attrsOf(child)})
		}
		return p.skip()
	})
	return args, err
}

func attrsOf(start xml.StartElement) attrs {
	return slices.Clone(start.Attr)
}
