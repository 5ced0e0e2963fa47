// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package pipeline runs a compression session over a set of files.
//
// Files are read in parallel, collected into the session sequentially in
// argument order, then transformed in parallel. Transformation only reads
// the session tables, so the parallel stage needs no locking.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/holomush/evcompress/internal/compressor"
	"github.com/holomush/evcompress/internal/notify"
	"github.com/holomush/evcompress/internal/resolve"
)

// Error codes for file handling failures.
const (
	CodeReadFailed  = "READ_FAILED"
	CodeWriteFailed = "WRITE_FAILED"
)

var tracer = otel.Tracer("github.com/holomush/evcompress/internal/pipeline")

// Unit is one source file.
type Unit struct {
	Path   string
	Source string
}

// Output is the transformed form of a Unit.
type Output struct {
	Path   string
	Result compressor.Result
}

// Options configures a Pipeline.
type Options struct {
	Session  *compressor.Session
	Registry resolve.Registry
	Sink     notify.Sink
	// Workers bounds parallel reads and transforms; values below 1 mean 1.
	Workers int
	Logger  *slog.Logger
}

// Pipeline drives one session over many files.
type Pipeline struct {
	session  *compressor.Session
	registry resolve.Registry
	sink     notify.Sink
	workers  int
	logger   *slog.Logger
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		session:  opts.Session,
		registry: opts.Registry,
		sink:     opts.Sink,
		workers:  opts.Workers,
		logger:   opts.Logger,
	}
	if p.sink == nil {
		p.sink = notify.Nop{}
	}
	if p.workers < 1 {
		p.workers = 1
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Run reads, collects and transforms paths. When outDir is non-empty each
// output is also written there.
func (p *Pipeline) Run(ctx context.Context, paths []string, outDir string) ([]Output, error) {
	units, err := p.Read(ctx, paths)
	if err != nil {
		return nil, err
	}
	p.Collect(units)

	outputs, err := p.Transform(ctx, units)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		if err := Write(outDir, outputs); err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

// Read loads paths in parallel. The result keeps the order of paths.
func (p *Pipeline) Read(ctx context.Context, paths []string) ([]Unit, error) {
	units := make([]Unit, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path) //nolint:gosec // paths are the files the operator asked to compress
			if err != nil {
				return oops.Code(CodeReadFailed).With("path", path).Wrapf(err, "reading source")
			}
			units[i] = Unit{Path: path, Source: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// Collect feeds units to the session in order.
func (p *Pipeline) Collect(units []Unit) {
	for _, u := range units {
		p.session.Collect(u.Source)
	}
	p.logger.Info("collected event calls",
		"files", len(units),
		"subscriptions", p.session.Subscriptions().Len(),
		"fires", p.session.Fires().Len())
}

// Transform rewrites units in parallel. The result keeps the order of units.
func (p *Pipeline) Transform(ctx context.Context, units []Unit) ([]Output, error) {
	outputs := make([]Output, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = p.transformOne(gctx, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (p *Pipeline) transformOne(ctx context.Context, u Unit) Output {
	ctx, span := tracer.Start(ctx, "pipeline.transform",
		trace.WithAttributes(attribute.String("file", u.Path)))
	defer span.End()

	res := p.session.Transform(u.Source, p.registry, p.sink)
	span.SetAttributes(
		attribute.Int("substitutions", res.Substitutions),
		attribute.Int("skipped", res.Skipped),
	)
	p.logger.DebugContext(ctx, "transformed file",
		"file", u.Path,
		"substitutions", res.Substitutions,
		"skipped", res.Skipped)
	return Output{Path: u.Path, Result: res}
}

// Write stores each output under outDir at its relative path. Absolute paths
// and paths leaving the working directory keep only their base name.
func Write(outDir string, outputs []Output) error {
	for _, o := range outputs {
		dest := filepath.Join(outDir, relativePath(o.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return oops.Code(CodeWriteFailed).With("path", dest).Wrapf(err, "creating output directory")
		}
		//nolint:gosec // transformed sources keep conventional source file permissions
		if err := os.WriteFile(dest, []byte(o.Result.Output), 0o644); err != nil {
			return oops.Code(CodeWriteFailed).With("path", dest).Wrapf(err, "writing output")
		}
	}
	return nil
}

func relativePath(path string) string {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return filepath.Base(clean)
	}
	return clean
}
