// Package cli implements the command line front end shared by the
// sprinklr, tubular and youscan binaries.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/juancuellarsol/ogilvy/internal/batch"
	"github.com/juancuellarsol/ogilvy/internal/config"
	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
	"github.com/juancuellarsol/ogilvy/internal/exporter"
	"github.com/juancuellarsol/ogilvy/internal/files"
	"github.com/juancuellarsol/ogilvy/internal/importer"
	"github.com/juancuellarsol/ogilvy/internal/infrastructure"
	"github.com/juancuellarsol/ogilvy/internal/normalize"
	"github.com/juancuellarsol/ogilvy/internal/profile"
	"github.com/juancuellarsol/ogilvy/internal/validation"
	"github.com/juancuellarsol/ogilvy/pkg/contracts"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Run executes one invocation for the given profile and returns the exit
// code. Previews and per-file results go to stdout, logs and usage errors
// to stderr.
func Run(ctx context.Context, profileKey string, args []string, stdout, stderr io.Writer) int {
	p, ok := profile.Get(profileKey)
	if !ok {
		fmt.Fprintf(stderr, "error: unknown profile %q (known: %s)\n", profileKey, strings.Join(profile.Keys(), ", "))
		return ExitUsage
	}

	opts, err := parseOptions(p, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	if opts.Version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString(p.Key))
		return ExitOK
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}
	opts.applyConfig(cfg)

	if err := validation.NewStructValidator().Validate(opts); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	logger, closeLog, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}
	defer closeLog()

	ctx = infrastructure.EnsureRunID(ctx)

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	targets, err := files.NewDiscovery("").Expand(opts.File, opts.Glob)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if apperrors.IsType(err, apperrors.ErrTypeValidation) {
			return ExitUsage
		}
		return ExitFailure
	}

	proc, err := normalize.NewProcessor(p, opts.processorOptions(), logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	runner := batch.NewRunner(proc, batch.Options{
		Read: importer.ReadOptions{
			SkipRows: opts.SkipRows,
			Header:   opts.Header,
			Sheet:    opts.Sheet,
		},
		Suffix: opts.Suffix,
		Format: opts.Format,
		Export: exporter.Options{
			SheetName: cfg.Export.SheetName,
			CSVBOM:    cfg.Export.CSVBOM,
		},
		Out:       stdout,
		Telemetry: tel,
	}, logger)

	logger.InfoContext(ctx, "starting",
		slog.String("profile", p.Key),
		slog.Int("files", len(targets)),
		slog.Bool("export", opts.Export),
		slog.String("format", opts.Format))

	if !opts.Export {
		return preview(ctx, runner, targets[0].Path, opts.PreviewRows, stdout, stderr)
	}

	paths := make([]string, len(targets))
	for i, f := range targets {
		paths[i] = f.Path
	}
	result := runner.Run(ctx, paths)
	if !result.Succeeded() {
		return ExitFailure
	}
	return ExitOK
}

// processorOptions maps the command line onto the pipeline options.
func (o *Options) processorOptions() normalize.Options {
	return normalize.Options{
		CreatedColumn:     strings.TrimSpace(o.CreatedCol),
		DateColumn:        strings.TrimSpace(o.DateCol),
		TimeColumn:        strings.TrimSpace(o.TimeCol),
		TZFrom:            o.TZFrom,
		TZTo:              o.TZTo,
		KeepSource:        o.KeepCreated,
		KeepColumns:       o.KeepColumns,
		UseDefaultColumns: o.UseDefaultColumns,
		FloorToHour:       o.FloorToHour.Ptr(),
		DayFirst:          o.DayFirst.Ptr(),
	}
}

// newLogger logs to stderr for console output and through the global
// file logger otherwise.
func newLogger(cfg config.LoggingConfig, stderr io.Writer) (*slog.Logger, func(), error) {
	if strings.EqualFold(cfg.Output, "console") || cfg.Output == "" {
		return infrastructure.NewLogger(cfg, stderr), func() {}, nil
	}
	logger, err := infrastructure.InitializeLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { infrastructure.CloseLogFile() }, nil
}
