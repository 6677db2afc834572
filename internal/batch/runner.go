// Package batch runs the normalization pipeline over a list of input files,
// one file at a time, isolating failures per file.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/juancuellarsol/ogilvy/internal/exporter"
	"github.com/juancuellarsol/ogilvy/internal/files"
	"github.com/juancuellarsol/ogilvy/internal/importer"
	"github.com/juancuellarsol/ogilvy/internal/infrastructure"
	"github.com/juancuellarsol/ogilvy/internal/normalize"
	"github.com/juancuellarsol/ogilvy/internal/table"
	"github.com/juancuellarsol/ogilvy/internal/validation"
)

// Options configures a Runner.
type Options struct {
	Read   importer.ReadOptions
	Suffix string
	Format string
	Export exporter.Options

	// Out receives the per-file [OK]/[WARN] lines. Defaults to stdout.
	Out io.Writer
	// Telemetry is optional.
	Telemetry *infrastructure.Telemetry
}

// Failure records one file that could not be exported.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a batch.
type Result struct {
	Outputs  []string
	Failures []Failure
	// Interrupted is set when the context was cancelled before every
	// file was attempted.
	Interrupted bool
}

// Succeeded reports whether at least one file was exported.
func (r Result) Succeeded() bool {
	return len(r.Outputs) > 0
}

// Runner reads, normalizes and exports files for one profile.
type Runner struct {
	processor *normalize.Processor
	reader    *importer.Reader
	exporter  *exporter.Exporter
	validator *validation.FileValidator
	opts      Options
	out       io.Writer
	logger    *slog.Logger
}

// NewRunner creates a runner around an already configured processor.
func NewRunner(processor *normalize.Processor, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Suffix == "" {
		opts.Suffix = files.DefaultSuffix
	}
	if opts.Format == "" {
		opts.Format = files.FormatXLSX
	}
	logger = infrastructure.WithComponent(logger, "batch").
		With("profile", processor.Profile().Key)
	return &Runner{
		processor: processor,
		reader:    importer.NewReader(logger),
		exporter:  exporter.New(opts.Export, logger),
		validator: validation.NewFileValidator(logger),
		opts:      opts,
		out:       out,
		logger:    logger,
	}
}

// ProcessFile reads and normalizes path without writing anything.
func (r *Runner) ProcessFile(ctx context.Context, path string) (*table.Table, *normalize.Report, error) {
	if err := r.validator.ValidateInputFile(path); err != nil {
		return nil, nil, err
	}

	in, err := r.reader.ReadFile(path, r.opts.Read)
	if err != nil {
		return nil, nil, err
	}
	r.logger.DebugContext(ctx, "file read",
		slog.String("file", path),
		slog.Int("rows", in.Len()),
		slog.Int("columns", len(in.Columns)))

	return r.processor.Process(ctx, in)
}

// ExportFile normalizes path and writes the result next to it, returning
// the output path.
func (r *Runner) ExportFile(ctx context.Context, path string) (string, error) {
	profileKey := r.processor.Profile().Key
	ctx, span := r.telemetry().StartFileSpan(ctx, profileKey, path)
	defer span.End()
	start := time.Now()

	output, report, err := r.exportFile(ctx, path)
	duration := time.Since(start)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		r.metrics().RecordFile(ctx, profileKey, infrastructure.StatusFailed, 0, 0, duration)
		return "", err
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"rows":               report.Rows,
		"timestamps.missing": report.MissingTimestamps,
		"output.path":        output,
	})
	r.metrics().RecordFile(ctx, profileKey, infrastructure.StatusOK, report.Rows, report.MissingTimestamps, duration)
	r.logger.InfoContext(ctx, "file exported",
		slog.String("file", path),
		slog.String("output", output),
		slog.Int("rows", report.Rows),
		slog.Int("missing_timestamps", report.MissingTimestamps),
		slog.Duration("duration", duration))
	return output, nil
}

func (r *Runner) exportFile(ctx context.Context, path string) (string, *normalize.Report, error) {
	target, err := files.OutputPath(path, r.opts.Suffix, r.opts.Format)
	if err != nil {
		return "", nil, err
	}

	out, report, err := r.ProcessFile(ctx, path)
	if err != nil {
		return "", nil, err
	}

	if err := r.validator.ValidateOutputDirectory(filepath.Dir(target)); err != nil {
		return "", nil, err
	}

	written, err := r.exporter.WriteTable(target, out)
	if err != nil {
		return "", nil, err
	}
	return written, report, nil
}

// Run exports every path in order. A failing file is reported and skipped;
// cancellation stops the batch between files.
func (r *Runner) Run(ctx context.Context, paths []string) Result {
	ctx = infrastructure.EnsureRunID(ctx)
	var result Result
	total := len(paths)

	r.logger.InfoContext(ctx, "batch started", slog.Int("files", total))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			result.Interrupted = true
			r.logger.WarnContext(ctx, "batch interrupted",
				slog.Int("remaining", total-i),
				slog.String("error", err.Error()))
			break
		}

		r.logger.DebugContext(ctx, "processing file",
			slog.Int("current", i+1),
			slog.Int("total", total),
			slog.String("file", path))

		output, err := r.ExportFile(ctx, path)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			fmt.Fprintf(r.out, "[WARN] failed %s: %v\n", path, err)
			r.logger.ErrorContext(ctx, "file failed",
				slog.String("file", path),
				slog.String("error", err.Error()))
			continue
		}
		result.Outputs = append(result.Outputs, output)
		fmt.Fprintf(r.out, "[OK] exported: %s\n", output)
	}

	r.logger.InfoContext(ctx, "batch complete",
		slog.Int("exported", len(result.Outputs)),
		slog.Int("failed", len(result.Failures)))
	return result
}

func (r *Runner) telemetry() *infrastructure.Telemetry {
	if r.opts.Telemetry == nil {
		return &infrastructure.Telemetry{}
	}
	return r.opts.Telemetry
}

func (r *Runner) metrics() *infrastructure.RunMetrics {
	if r.opts.Telemetry == nil {
		return nil
	}
	return r.opts.Telemetry.Metrics
}
