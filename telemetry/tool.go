//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/aynumosir/ainu-mcp-go/protocol"
)

// Instrument and attribute names.
const (
	InstrumentationName = "github.com/aynumosir/ainu-mcp-go"

	OperationExecuteTool = "execute_tool"

	MetricToolRequestCnt = "ainu_mcp.tool.request_cnt"
	MetricToolDuration   = "ainu_mcp.tool.duration"

	KeyToolName      = "gen_ai.tool.name"
	KeyOperationName = "gen_ai.operation.name"
	KeyRequestID     = "ainu_mcp.request_id"
	KeyErrorType     = "error.type"
)

var (
	mu               sync.RWMutex
	tracer           trace.Tracer = tracenoop.NewTracerProvider().Tracer(InstrumentationName)
	toolRequestCnt   metric.Int64Counter
	toolDurationHist metric.Float64Histogram
)

func init() {
	if err := Init(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider()); err != nil {
		panic(err)
	}
}

// Init points the tool instruments at the given providers.
func Init(tp trace.TracerProvider, mp metric.MeterProvider) error {
	meter := mp.Meter(InstrumentationName)
	cnt, err := meter.Int64Counter(MetricToolRequestCnt,
		metric.WithDescription("Total number of tool calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricToolRequestCnt, err)
	}
	hist, err := meter.Float64Histogram(MetricToolDuration,
		metric.WithDescription("Duration of tool calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricToolDuration, err)
	}

	mu.Lock()
	defer mu.Unlock()
	tracer = tp.Tracer(InstrumentationName)
	toolRequestCnt = cnt
	toolDurationHist = hist
	return nil
}

// StartToolSpan starts the span of one tool call.
func StartToolSpan(ctx context.Context, tool, requestID string) (context.Context, trace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()
	return t.Start(ctx, fmt.Sprintf("%s %s", OperationExecuteTool, tool),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String(KeyOperationName, OperationExecuteTool),
			attribute.String(KeyToolName, tool),
			attribute.String(KeyRequestID, requestID),
		),
	)
}

// EndToolSpan records the outcome of a tool call on span and in the tool
// metrics, then ends span.
func EndToolSpan(ctx context.Context, span trace.Span, tool string, start time.Time, err error) {
	attrs := []attribute.KeyValue{
		attribute.String(KeyOperationName, OperationExecuteTool),
		attribute.String(KeyToolName, tool),
	}
	if err != nil {
		errType := ErrorType(err)
		attrs = append(attrs, attribute.String(KeyErrorType, errType))
		span.SetAttributes(attribute.String(KeyErrorType, errType))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	mu.RLock()
	cnt, hist := toolRequestCnt, toolDurationHist
	mu.RUnlock()
	cnt.Add(ctx, 1, metric.WithAttributes(attrs...))
	hist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
}

// ErrorType returns the error.type value for err.
func ErrorType(err error) string {
	return string(protocol.KindOf(err))
}
