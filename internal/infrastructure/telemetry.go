package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/juancuellarsol/ogilvy/internal/config"
)

const (
	ServiceName = "ogilvy-normalizer"
	MeterName   = "github.com/juancuellarsol/ogilvy"
)

// File outcome labels used by RecordFile.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Telemetry holds the tracer and meter providers for one run.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *RunMetrics

	metricsFile string
	traceOut    io.Closer
	logger      *slog.Logger
}

// RunMetrics are the counters recorded per processed file.
type RunMetrics struct {
	FilesProcessed    metric.Int64Counter
	RowsProcessed     metric.Int64Counter
	TimestampsMissing metric.Int64Counter
	FileDuration      metric.Float64Histogram
}

// InitializeTelemetry sets up tracing (when enabled) and the metrics
// pipeline. Metrics are always collected into a private registry and
// written out on Shutdown when a metrics file is configured.
func InitializeTelemetry(cfg config.TelemetryConfig, version string, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := createResource(version)
	t := &Telemetry{
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if cfg.TracingEnabled && cfg.TraceExporter == "stdout" {
		if err := t.initializeTracing(cfg, version, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	} else {
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	}

	if err := t.initializeMetrics(version, res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("telemetry initialized",
		slog.Bool("tracing_enabled", t.TracerProvider != nil),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

func createResource(version string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(version),
	)
}

func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, version string, res *resource.Resource) error {
	var out io.Writer = os.Stderr
	if cfg.TraceFile != "" {
		f, err := openLogFile(cfg.TraceFile)
		if err != nil {
			return err
		}
		t.traceOut = f
		out = f
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	t.TracerProvider = tp
	t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(version))
	return nil
}

func (t *Telemetry) initializeMetrics(version string, res *resource.Resource) error {
	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Registry = reg
	t.MeterProvider = mp
	t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(version))

	m, err := CreateRunMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.Metrics = m
	return nil
}

// CreateRunMetrics registers the per-file instruments on meter.
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	files, err := meter.Int64Counter(
		"normalizer_files_processed",
		metric.WithDescription("Number of input files processed, by profile and status"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"normalizer_rows_processed",
		metric.WithDescription("Number of rows written to normalized outputs"),
	)
	if err != nil {
		return nil, err
	}

	missing, err := meter.Int64Counter(
		"normalizer_timestamps_missing",
		metric.WithDescription("Number of rows whose timestamp could not be parsed"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"normalizer_file_duration_seconds",
		metric.WithDescription("Time spent reading, normalizing and exporting one file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		FilesProcessed:    files,
		RowsProcessed:     rows,
		TimestampsMissing: missing,
		FileDuration:      duration,
	}, nil
}

// RecordFile records the outcome of one file. A nil receiver is a no-op.
func (m *RunMetrics) RecordFile(ctx context.Context, profile, status string, rows, missing int, duration time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("profile", profile),
		attribute.String("status", status),
	)
	m.FilesProcessed.Add(ctx, 1, attrs)
	m.FileDuration.Record(ctx, duration.Seconds(), attrs)

	profileAttr := metric.WithAttributes(attribute.String("profile", profile))
	if rows > 0 {
		m.RowsProcessed.Add(ctx, int64(rows), profileAttr)
	}
	if missing > 0 {
		m.TimestampsMissing.Add(ctx, int64(missing), profileAttr)
	}
}

// StartFileSpan opens a span for processing one input file.
func (t *Telemetry) StartFileSpan(ctx context.Context, profile, path string) (context.Context, trace.Span) {
	tracer := t.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(MeterName)
	}
	return tracer.Start(ctx, "normalize.file",
		trace.WithAttributes(
			attribute.String("profile", profile),
			attribute.String("file.path", path),
		))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}

// WriteMetrics writes the registry in the Prometheus text format to the
// configured metrics file. It does nothing when no file is configured.
func (t *Telemetry) WriteMetrics() error {
	if t.metricsFile == "" || t.Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", t.metricsFile, err)
	}
	return nil
}

// Shutdown flushes spans, writes the metrics file and releases the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if err := t.WriteMetrics(); err != nil {
		errs = append(errs, err)
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if t.traceOut != nil {
		if err := t.traceOut.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}

	t.logger.Debug("telemetry shutdown complete")
	return nil
}
