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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"go.wlscan.dev/wlscan/codegen"
	"go.wlscan.dev/wlscan/compiler"
	"go.wlscan.dev/wlscan/internal/logging"
	"go.wlscan.dev/wlscan/internal/pkgconfig"
	"go.wlscan.dev/wlscan/schema"
	"go.wlscan.dev/wlscan/syntax"
)

type cmdGenerate struct {
	pkgconfig  string
	pkg        string
	configPath string
	deps       []string
	verbose    bool
	quiet      bool

	// Overridden by tests.
	stderr io.Writer
	logger *zerolog.Logger
	lookup pkgconfig.Lookup
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "wlscan [-d pkgconfig-name] [-p package] PROTOCOL OUTPUT",
		summary: "Generate Myrddin bindings from a Wayland protocol description",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.pkgconfig, "pkgconfig", "d", "",
		"resolve PROTOCOL against the pkgdatadir of this pkg-config package")
	flags.StringVarP(&cmd.pkg, "package", "p", schema.RootPackage,
		"package the bindings are generated into")
	flags.StringVarP(&cmd.configPath, "config", "c", "",
		"TOML batch file listing protocols to generate")
	flags.StringArrayVar(&cmd.deps, "dep", nil,
		"protocol description defining interfaces used by PROTOCOL (repeatable)")
	flags.BoolVarP(&cmd.verbose, "verbose", "v", false, "log debug output")
	flags.BoolVarP(&cmd.quiet, "quiet", "q", false, "log errors only")
}

func (cmd *cmdGenerate) usageError(format string, args ...any) int {
	w := cmd.stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
	fmt.Fprintf(w, "usage: %s\n", cmd.help().usage)
	return exitUsage
}

func (cmd *cmdGenerate) setupLogger() zerolog.Logger {
	if cmd.logger != nil {
		return *cmd.logger
	}
	cfg := logging.DefaultConfig()
	logging.ApplyEnv(&cfg, os.Getenv)
	switch {
	case cmd.verbose:
		cfg.Level = zerolog.DebugLevel
	case cmd.quiet:
		cfg.Level = zerolog.ErrorLevel
	}
	logger := logging.Configure(cfg)
	cmd.logger = &logger
	return logger
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	if cmd.verbose && cmd.quiet {
		return cmd.usageError("--verbose and --quiet are mutually exclusive")
	}
	logger := cmd.setupLogger()

	var jobs []job
	var depPaths []string
	if cmd.configPath != "" {
		if len(argv) != 0 {
			return cmd.usageError("--config cannot be combined with PROTOCOL and OUTPUT")
		}
		cfg, err := loadBatchConfig(cmd.configPath)
		if err != nil {
			logger.Error().Err(err).Msg("invalid batch config")
			return exitFailure
		}
		jobs = cfg.jobs(cmd.pkg, cmd.pkgconfig)
		depPaths = append(cfg.dependencyPaths(), cmd.deps...)
	} else {
		if len(argv) != 2 {
			return cmd.usageError("expected PROTOCOL and OUTPUT, got %d arguments", len(argv))
		}
		jobs = []job{{
			input:     argv[0],
			output:    argv[1],
			pkg:       cmd.pkg,
			pkgconfig: cmd.pkgconfig,
		}}
		depPaths = cmd.deps
	}

	deps, err := loadDependencies(depPaths)
	if err != nil {
		logger.Error().Err(err).Msg("loading dependency protocols")
		return exitFailure
	}
	if deps.Len() > 0 {
		logger.Debug().Int("interfaces", deps.Len()).Msg("loaded dependency protocols")
	}

	for _, j := range jobs {
		if err := cmd.generate(ctx, logger, j, deps); err != nil {
			logger.Error().Err(err).Str("input", j.input).Msg("generation failed")
			return exitFailure
		}
	}
	return 0
}

// job is one PROTOCOL to OUTPUT translation.
type job struct {
	input     string
	output    string
	pkg       string
	pkgconfig string
}

func (cmd *cmdGenerate) generate(
	ctx context.Context,
	logger zerolog.Logger,
	j job,
	deps *compiler.InterfaceSet,
) error {
	srcPath := j.input
	if j.pkgconfig != "" {
		resolved, err := cmd.lookup.ResolveProtocol(ctx, j.pkgconfig, j.input)
		if err != nil {
			return err
		}
		logger.Debug().Str("pkgconfig", j.pkgconfig).Str("path", resolved).Msg("resolved protocol")
		srcPath = resolved
	}

	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	parsed, err := syntax.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}

	opts := []compiler.CompileOption{compiler.WithPackage(j.pkg)}
	if deps.Len() > 0 {
		opts = append(opts, compiler.WithDependencies(deps))
	}
	result := compiler.Compile(parsed, opts...)
	for _, warn := range result.Warnings {
		logger.Warn().
			Str("file", srcPath).
			Stringer("pos", warn.Pos()).
			Str("code", fmt.Sprintf("W%d", warn.Code())).
			Msg(warn.Message())
	}
	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			logger.Error().
				Str("file", srcPath).
				Stringer("pos", err.Pos()).
				Str("code", fmt.Sprintf("E%d", err.Code())).
				Msg(err.Message())
		}
		return fmt.Errorf("%s: %d compile errors", srcPath, len(result.Errors))
	}

	out, err := codegen.Generate(result.Protocol())
	if err != nil {
		return err
	}
	if err := writeOutput(j.output, out); err != nil {
		return err
	}
	logger.Info().
		Str("input", srcPath).
		Str("output", j.output).
		Str("package", j.pkg).
		Msg("generated bindings")
	return nil
}
