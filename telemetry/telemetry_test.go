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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/aynumosir/ainu-mcp-go/protocol"
)

type kindErr struct{}

func (kindErr) Error() string       { return "empty" }
func (kindErr) Kind() protocol.Kind { return protocol.KindEmptyValue }

func setupInMemory(t *testing.T) (*tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	require.NoError(t, Init(tp, mp))
	t.Cleanup(func() {
		require.NoError(t, Init(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider()))
	})
	return exporter, reader
}

func TestToolSpanSuccess(t *testing.T) {
	exporter, reader := setupInMemory(t)

	ctx, span := StartToolSpan(context.Background(), "ainu_translate", "req-1")
	EndToolSpan(ctx, span, "ainu_translate", time.Now(), nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "execute_tool ainu_translate", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String(KeyRequestID, "req-1"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
		if m.Name == MetricToolRequestCnt {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			assert.Equal(t, int64(1), sum.DataPoints[0].Value)
		}
	}
	assert.True(t, names[MetricToolRequestCnt])
	assert.True(t, names[MetricToolDuration])
}

func TestToolSpanError(t *testing.T) {
	exporter, reader := setupInMemory(t)

	ctx, span := StartToolSpan(context.Background(), "ainu_translate", "req-2")
	EndToolSpan(ctx, span, "ainu_translate", time.Now(), kindErr{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String(KeyErrorType, "EmptyValue"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != MetricToolRequestCnt {
			continue
		}
		sum := m.Data.(metricdata.Sum[int64])
		v, ok := sum.DataPoints[0].Attributes.Value(KeyErrorType)
		require.True(t, ok)
		assert.Equal(t, "EmptyValue", v.AsString())
	}
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "EmptyValue", ErrorType(kindErr{}))
	assert.Equal(t, "Internal", ErrorType(errors.New("x")))
}

func TestStartRejectsUnknownProtocol(t *testing.T) {
	_, err := Start(context.Background(), WithProtocol("carrier-pigeon"))
	assert.Error(t, err)
}
