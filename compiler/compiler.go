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

// Package compiler builds the schema of a parsed protocol description. It
// resolves names and argument types for the output package and reports
// malformed input as coded errors.
package compiler

import (
	"fmt"
	"strings"

	"go.wlscan.dev/wlscan/schema"
	"go.wlscan.dev/wlscan/syntax"
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	pkg  string
	deps *InterfaceSet
}

// WithPackage selects the package the bindings are generated into. The
// default is the core package "wl".
func WithPackage(pkg string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.pkg = pkg
	})
}

func WithDependencies(deps *InterfaceSet) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.deps = deps
	})
}

type CompileResult struct {
	protocol *schema.Protocol

	Errors   []*Error
	Warnings []*Warning
}

// Protocol returns the compiled protocol, or nil if compilation failed.
func (r *CompileResult) Protocol() *schema.Protocol {
	return r.protocol
}

func Compile(parsed *syntax.Protocol, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(parsed)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{
		pkg: schema.RootPackage,
	}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

func (opts *CompileOptions) Compile(parsed *syntax.Protocol) CompileResult {
	c := compiler{
		opts: opts,
		node: parsed,
		protocol: &schema.Protocol{
			Package: opts.pkg,
		},
	}
	c.compileProtocol()
	if len(c.errors) > 0 {
		return CompileResult{
			Errors:   c.errors,
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		protocol: c.protocol,
		Warnings: c.warnings,
	}
}

type compiler struct {
	opts     *CompileOptions
	node     *syntax.Protocol
	protocol *schema.Protocol
	errors   []*Error
	warnings []*Warning

	// Set by registerInterfaces()
	interfaces []*interfaceInfo
	rawNames   map[string]struct{}

	unknownReported map[string]struct{}
}

type interfaceInfo struct {
	node *syntax.Interface
	raw  string
	name string
}

type namedNode interface {
	syntax.Node
	Name() (string, bool)
}

// nameScope tracks normalized names that end up in one binding namespace.
type nameScope struct {
	desc string
	seen map[string]string
}

func newNameScope(format string, a ...any) *nameScope {
	return &nameScope{
		desc: fmt.Sprintf(format, a...),
		seen: make(map[string]string),
	}
}

func (c *compiler) err(err error) {
	c.errors = append(c.errors, err.(*Error))
}

func (c *compiler) warn(warning *Warning) {
	c.warnings = append(c.warnings, warning)
}

func (c *compiler) requireName(node namedNode) (string, bool) {
	raw, ok := node.Name()
	if !ok || raw == "" {
		c.err(errMissingAttribute(node, "name"))
		return "", false
	}
	return raw, true
}

func (c *compiler) declare(scope *nameScope, raw, name string, node syntax.Node) {
	if prev, ok := scope.seen[name]; ok {
		c.warn(warnNameCollision(scope.desc, prev, raw, name, node))
		return
	}
	scope.seen[name] = raw
}

func (c *compiler) compileProtocol() {
	if name, ok := c.node.Name(); ok {
		c.protocol.Name = name
	}
	if text, ok := c.node.Copyright(); ok {
		c.protocol.Copyright = text
	}

	c.registerInterfaces()
	for _, info := range c.interfaces {
		c.protocol.Interfaces = append(c.protocol.Interfaces, c.compileInterface(info))
	}
}

func (c *compiler) registerInterfaces() {
	c.rawNames = make(map[string]struct{})
	byName := make(map[string]string)
	for _, node := range c.node.Interfaces {
		raw, ok := c.requireName(node)
		if !ok {
			continue
		}
		name := NormalizeInterface(c.opts.pkg, raw)
		if prev, conflict := byName[name]; conflict {
			c.err(errDuplicateInterface(raw, prev, node))
			continue
		}
		byName[name] = raw
		c.rawNames[raw] = struct{}{}
		c.interfaces = append(c.interfaces, &interfaceInfo{
			node: node,
			raw:  raw,
			name: name,
		})
	}
}

func (c *compiler) compileInterface(info *interfaceInfo) *schema.Interface {
	iface := &schema.Interface{
		Name:    info.name,
		RawName: info.raw,
		Display: c.opts.pkg == schema.RootPackage && info.name == "display",
	}

	// Requests and events share the "<interface>_<name>" namespace.
	messages := newNameScope("interface '%s'", info.raw)
	for _, node := range info.node.Requests {
		if req := c.compileRequest(info, node, messages); req != nil {
			iface.Requests = append(iface.Requests, req)
		}
	}
	for _, node := range info.node.Events {
		if event := c.compileEvent(info, node, messages); event != nil {
			iface.Events = append(iface.Events, event)
		}
	}

	enums := newNameScope("enums of interface '%s'", info.raw)
	for _, node := range info.node.Enums {
		if enum := c.compileEnum(info, node, enums); enum != nil {
			iface.Enums = append(iface.Enums, enum)
		}
	}
	return iface
}

func (c *compiler) compileRequest(
	info *interfaceInfo,
	node *syntax.Request,
	messages *nameScope,
) *schema.Request {
	raw, ok := c.requireName(node)
	if !ok {
		return nil
	}
	req := &schema.Request{
		Name: NormalizeMember(raw),
	}
	c.declare(messages, raw, req.Name, node)

	args := newNameScope("request '%s.%s'", info.raw, raw)
	for _, argNode := range node.Args {
		arg := c.compileArg(argNode, args)
		if arg == nil {
			continue
		}
		if arg.Type == schema.ArgType_NEW_ID {
			if req.NewID != nil {
				c.err(errMultipleNewID(info.raw, raw, argNode))
				continue
			}
			req.NewID = arg
		}
		req.Args = append(req.Args, arg)
	}
	return req
}

func (c *compiler) compileEvent(
	info *interfaceInfo,
	node *syntax.Event,
	messages *nameScope,
) *schema.Event {
	raw, ok := c.requireName(node)
	if !ok {
		return nil
	}
	event := &schema.Event{
		Name: NormalizeMember(raw),
	}
	c.declare(messages, raw, event.Name, node)

	args := newNameScope("event '%s.%s'", info.raw, raw)
	for _, argNode := range node.Args {
		arg := c.compileArg(argNode, args)
		if arg == nil {
			continue
		}
		switch {
		case arg.Type == schema.ArgType_NEW_ID && arg.Interface == "":
			c.err(errEventNewIDWithoutInterface(info.raw, raw, argNode))
			continue
		case arg.Type == schema.ArgType_OBJECT && !arg.Nullable:
			argName, _ := argNode.Name()
			c.warn(warnDroppedEvent(info.raw, raw, argName, argNode))
		}
		event.Args = append(event.Args, arg)
	}
	return event
}

func (c *compiler) compileEnum(
	info *interfaceInfo,
	node *syntax.Enum,
	enums *nameScope,
) *schema.Enum {
	raw, ok := c.requireName(node)
	if !ok {
		return nil
	}
	enum := &schema.Enum{
		Name: NormalizeMember(raw),
	}
	c.declare(enums, raw, enum.Name, node)

	entries := newNameScope("enum '%s.%s'", info.raw, raw)
	for _, entryNode := range node.Entries {
		entryRaw, ok := c.requireName(entryNode)
		if !ok {
			continue
		}
		value, ok := entryNode.Value()
		if !ok || value == "" {
			c.err(errMissingAttribute(entryNode, "value"))
			continue
		}
		entry := &schema.Entry{
			Name:  NormalizeMember(entryRaw),
			Value: value,
		}
		c.declare(entries, entryRaw, entry.Name, entryNode)
		enum.Entries = append(enum.Entries, entry)
	}
	return enum
}

func (c *compiler) compileArg(node *syntax.Arg, args *nameScope) *schema.Arg {
	raw, ok := c.requireName(node)
	if !ok {
		return nil
	}
	tag, ok := node.Type()
	if !ok || tag == "" {
		c.err(errMissingAttribute(node, "type"))
		return nil
	}
	argType, ok := ParseArgType(tag)
	if !ok {
		c.err(errUnknownArgType(raw, tag, node))
		return nil
	}

	nullable := false
	if value, ok := node.AllowNull(); ok {
		switch value {
		case "true":
			nullable = true
		case "false":
		default:
			c.warn(warnInvalidAllowNull(raw, value, node))
		}
	}
	if nullable && argType == schema.ArgType_NEW_ID {
		c.err(errNullableNewID(raw, node))
		return nil
	}

	arg := &schema.Arg{
		Name:     NormalizeMember(raw),
		Type:     argType,
		Nullable: nullable,
	}
	if argType == schema.ArgType_OBJECT || argType == schema.ArgType_NEW_ID {
		if rawIface, ok := node.Interface(); ok && rawIface != "" {
			c.checkInterfaceRef(rawIface, node)
			arg.Interface = NormalizeInterface(c.opts.pkg, rawIface)
		}
	}
	arg.Enum, _ = node.Enum()
	arg.TargetType, arg.Wire = MapType(argType, nullable, arg.Interface)
	c.declare(args, raw, arg.Name, node)
	return arg
}

func (c *compiler) checkInterfaceRef(raw string, node syntax.Node) {
	if _, ok := c.rawNames[raw]; ok {
		return
	}
	if c.opts.pkg != schema.RootPackage && strings.HasPrefix(raw, rootPrefix) {
		return
	}
	if c.opts.deps.Contains(raw) {
		return
	}
	if _, reported := c.unknownReported[raw]; reported {
		return
	}
	if c.unknownReported == nil {
		c.unknownReported = make(map[string]struct{})
	}
	c.unknownReported[raw] = struct{}{}
	c.warn(warnUnknownInterface(raw, node))
}
