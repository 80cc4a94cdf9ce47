package tracer

import (
	"context"
	"fmt"

	"github.com/modelserving/tracing/config"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	// NoopProvider indicates a noop provider type.
	NoopProvider = "noop"
	// OtelProvider indicates an OpenTelemetry provider type.
	OtelProvider = "otel"
)

// Provider is the interface that wraps the basic methods of a trace provider.
// If disabled, the provider returns a noop tracer; a configuration that
// NewProvider cannot build from is reported as an error instead.
type Provider interface {
	// Shutdown flushes and stops the underlying exporter.
	Shutdown(context.Context) error
	// Tracer returns a tracer with the given name. It's used to start spans.
	Tracer(name string) oteltrace.Tracer
	// Type returns the type of the provider, it can be either "noop" or "otel".
	Type() string
}

type traceProvider struct {
	ctx       context.Context
	cfg       *config.OpenTelemetry
	logger    Logger
	setGlobal bool

	traceProvider oteltrace.TracerProvider
	shutdownFn    func(context.Context) error
	providerType  string
}

// NewProvider creates a new trace provider with the given options.
// The trace provider is responsible for creating spans and sending them to the exporter.
// Unless WithGlobal(false) is given, it also registers the trace provider and its
// propagator as the OTel globals, so that any package calling tracer.SpanFromContext
// or otel.GetTextMapPropagator observes it.
//
// Example:
//
//	provider, err := tracer.NewProvider(
//		tracer.WithContext(context.Background()),
//		tracer.WithConfig(&config.OpenTelemetry{
//			Enabled: true,
//			ExporterConfig: config.ExporterConfig{
//				Exporter: "grpc",
//				Endpoint: "localhost:4317",
//			},
//		}),
//	)
//	if err != nil {
//		panic(err)
//	}
func NewProvider(opts ...Option) (Provider, error) {
	tp := &traceProvider{
		ctx:          context.Background(),
		cfg:          &config.OpenTelemetry{},
		logger:       &noopLogger{},
		setGlobal:    true,
		providerType: NoopProvider,
	}

	for _, opt := range opts {
		opt.apply(tp)
	}

	tp.cfg.SetDefaults()

	if !tp.cfg.Enabled {
		tp.traceProvider = oteltrace.NewNoopTracerProvider()
		if tp.setGlobal {
			otel.SetTracerProvider(tp.traceProvider)
		}
		return tp, nil
	}

	resource, err := resourceFactory(tp.ctx, tp.cfg.ResourceName, resourceConfig{
		withHost:      true,
		withContainer: true,
		withProcess:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := exporterFactory(tp.ctx, tp.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	spanProcessor := spanProcessorFactory(tp.cfg.SpanProcessorType, tp.cfg.SpanBatchConfig, exporter)
	sampler := getSampler(tp.cfg.Sampling.Type, tp.cfg.Sampling.Rate, tp.cfg.Sampling.ParentBased)

	sdkProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(resource),
		sdktrace.WithSpanProcessor(spanProcessor),
	)

	propagator, err := propagatorFactory(tp.cfg)
	if err != nil {
		sdkProvider.Shutdown(tp.ctx) //nolint:errcheck
		return nil, fmt.Errorf("failed to create propagator: %w", err)
	}

	if tp.setGlobal {
		otel.SetTracerProvider(sdkProvider)
		otel.SetTextMapPropagator(propagator)
		otel.SetErrorHandler(&errHandler{logger: tp.logger})
	}

	tp.traceProvider = sdkProvider
	tp.shutdownFn = sdkProvider.Shutdown
	tp.providerType = OtelProvider

	return tp, nil
}

func (tp *traceProvider) Shutdown(ctx context.Context) error {
	if tp.shutdownFn == nil {
		return nil
	}
	return tp.shutdownFn(ctx)
}

func (tp *traceProvider) Tracer(name string) oteltrace.Tracer {
	return tp.traceProvider.Tracer(name)
}

func (tp *traceProvider) Type() string {
	return tp.providerType
}
