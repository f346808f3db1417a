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

// Package pkgconfig finds protocol descriptions installed by other
// packages, using the pkgdatadir variable of their pkg-config metadata.
package pkgconfig

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	EnvPkgConfig = "PKG_CONFIG"
	defaultTool  = "pkg-config"
)

type Lookup struct {
	// Executable to run. When empty, $PKG_CONFIG is used, falling back
	// to "pkg-config" on the search path.
	Tool string

	// Environment for the tool. When nil, the process environment is
	// inherited.
	Env []string
}

func (l *Lookup) tool() string {
	if l.Tool != "" {
		return l.Tool
	}
	if tool := os.Getenv(EnvPkgConfig); tool != "" {
		return tool
	}
	return defaultTool
}

// DataDir returns the pkgdatadir variable of the named package.
func (l *Lookup) DataDir(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("pkgconfig: empty package name")
	}
	tool := l.tool()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, "--variable", "pkgdatadir", name)
	cmd.Env = l.Env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", tool, name, err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", tool, name, err)
	}

	dir := strings.TrimSpace(stdout.String())
	if dir == "" {
		return "", fmt.Errorf("%s %s: pkgdatadir is not set", tool, name)
	}
	return dir, nil
}

// ResolveProtocol joins the pkgdatadir of the named package with path.
func (l *Lookup) ResolveProtocol(ctx context.Context, name, path string) (string, error) {
	dir, err := l.DataDir(ctx, name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}
