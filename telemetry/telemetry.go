//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry wires OpenTelemetry tracing and metrics for tool calls.
// Until Start or Init is called every instrument is a no-op.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Protocols supported by the OTLP exporters.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"
)

// Defaults for the service resource.
const (
	ServiceName      = "ainu-mcp"
	ServiceNamespace = "aynumosir"
	ServiceVersion   = "0.0.1"
)

// Option configures Start.
type Option func(*options)

type options struct {
	endpoint           string
	protocol           string
	serviceName        string
	serviceVersion     string
	serviceNamespace   string
	resourceAttributes []attribute.KeyValue
}

// WithEndpoint sets the collector endpoint (host:port, no scheme). When
// unset OTEL_EXPORTER_OTLP_ENDPOINT is used, then the protocol default.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithProtocol selects "grpc" (default) or "http".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// WithServiceName overrides the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}

// WithServiceVersion overrides the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(o *options) { o.serviceVersion = version }
}

// WithResourceAttributes appends custom resource attributes.
func WithResourceAttributes(attrs ...attribute.KeyValue) Option {
	return func(o *options) { o.resourceAttributes = append(o.resourceAttributes, attrs...) }
}

// Start installs OTLP trace and meter providers and returns a function
// that flushes and shuts them down.
func Start(ctx context.Context, opts ...Option) (clean func() error, err error) {
	o := &options{
		protocol:         ProtocolGRPC,
		serviceName:      ServiceName,
		serviceVersion:   ServiceVersion,
		serviceNamespace: ServiceNamespace,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.protocol != ProtocolGRPC && o.protocol != ProtocolHTTP {
		return nil, fmt.Errorf("unsupported telemetry protocol %q", o.protocol)
	}
	if o.endpoint == "" {
		o.endpoint = defaultEndpoint(o.protocol)
	}

	res, err := buildResource(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var (
		spanExporter   sdktrace.SpanExporter
		metricExporter sdkmetric.Exporter
	)
	switch o.protocol {
	case ProtocolHTTP:
		spanExporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(o.endpoint), otlptracehttp.WithInsecure())
		if err == nil {
			metricExporter, err = otlpmetrichttp.New(ctx,
				otlpmetrichttp.WithEndpoint(o.endpoint), otlpmetrichttp.WithInsecure())
		}
	default:
		spanExporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(o.endpoint), otlptracegrpc.WithInsecure())
		if err == nil {
			metricExporter, err = otlpmetricgrpc.New(ctx,
				otlpmetricgrpc.WithEndpoint(o.endpoint), otlpmetricgrpc.WithInsecure())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	if err := Init(tp, mp); err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return func() error {
		shutdownCtx := context.Background()
		return errors.Join(tp.Shutdown(shutdownCtx), mp.Shutdown(shutdownCtx))
	}, nil
}

func defaultEndpoint(protocol string) string {
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	if protocol == ProtocolHTTP {
		return "localhost:4318"
	}
	return "localhost:4317"
}

func buildResource(ctx context.Context, o *options) (*resource.Resource, error) {
	resourceOpts := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceNamespace(o.serviceNamespace),
			semconv.ServiceName(o.serviceName),
			semconv.ServiceVersion(o.serviceVersion),
		),
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithTelemetrySDK(),
	}
	if len(o.resourceAttributes) > 0 {
		resourceOpts = append(resourceOpts, resource.WithAttributes(o.resourceAttributes...))
	}
	return resource.New(ctx, resourceOpts...)
}
