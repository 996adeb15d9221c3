package highlight

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"example.com/editerako/pkg/grammar"
)

// Package-level tracer and meter for highlight passes.
var (
	tracer = otel.Tracer("editerako.highlight")
	meter  = otel.Meter("editerako.highlight")
)

var (
	passLatency metric.Float64Histogram
	passTotal   metric.Int64Counter
	rangesTotal metric.Int64Counter
	parseErrors metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		passLatency, err = meter.Float64Histogram(
			"highlight_pass_duration_seconds",
			metric.WithDescription("Duration of a parse and classify pass"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		passTotal, err = meter.Int64Counter(
			"highlight_pass_total",
			metric.WithDescription("Total number of highlight passes"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		rangesTotal, err = meter.Int64Counter(
			"highlight_ranges_total",
			metric.WithDescription("Total number of ranges handed to hosts"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseErrors, err = meter.Int64Counter(
			"highlight_parse_errors_total",
			metric.WithDescription("Parses that produced no tree"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordPass records metrics for one driver pass.
func recordPass(ctx context.Context, kind grammar.Kind, d time.Duration, ranges int, incremental, ok bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("language", kind.String()),
		attribute.Bool("incremental", incremental),
	)
	passLatency.Record(ctx, d.Seconds(), attrs)
	passTotal.Add(ctx, 1, attrs)
	if ok {
		rangesTotal.Add(ctx, int64(ranges), metric.WithAttributes(attribute.String("language", kind.String())))
	} else {
		parseErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("language", kind.String())))
	}
}

// startPassSpan creates a span for a driver pass. The caller must end it.
func startPassSpan(ctx context.Context, kind grammar.Kind, size int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Session.OnBlockChanged",
		trace.WithAttributes(
			attribute.String("highlight.language", kind.String()),
			attribute.Int("highlight.content_size", size),
		),
	)
}

func setPassSpanResult(span trace.Span, ranges int, incremental bool) {
	span.SetAttributes(
		attribute.Int("highlight.range_count", ranges),
		attribute.Bool("highlight.incremental", incremental),
	)
}
