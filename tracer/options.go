package tracer

import (
	"context"

	"github.com/modelserving/tracing/config"
)

type Option interface {
	apply(*traceProvider)
}

type opts struct {
	fn func(*traceProvider)
}

func (o *opts) apply(tp *traceProvider) {
	o.fn(tp)
}

/*
	WithConfig sets the configuraiton options for the trace provider

Example

	config := &config.OpenTelemetry{
		Enabled: true,
		ExporterConfig: config.ExporterConfig{
			Exporter: "grpc",
			Endpoint: "localhost:4317",
		},
	}
	provider, err := tracer.NewProvider(tracer.WithConfig(config))
	if err != nil {
		panic(err)
	}
*/
func WithConfig(cfg *config.OpenTelemetry) Option {
	return &opts{
		fn: func(tp *traceProvider) {
			tp.cfg = cfg
		},
	}
}

/*
	WithLogger sets the logger for the trace provider
	This is used to log errors and info messages for underlying operations

Example

	logger := logrus.New().WithField("component", "trace")
	provider, err := tracer.NewProvider(tracer.WithLogger(logger))
	if err != nil {
		panic(err)
	}
*/
func WithLogger(logger Logger) Option {
	return &opts{
		fn: func(tp *traceProvider) {
			tp.logger = logger
		},
	}
}

/*
	WithContext sets the context for the trace provider

Example

	ctx := context.Background()
	provider, err := tracer.NewProvider(tracer.WithContext(ctx))
	if err != nil {
		panic(err)
	}
*/
func WithContext(ctx context.Context) Option {
	return &opts{
		fn: func(tp *traceProvider) {
			tp.ctx = ctx
		},
	}
}

/*
	WithGlobal controls whether this provider registers itself as the
	process-wide OTel globals (otel.SetTracerProvider,
	otel.SetTextMapPropagator, otel.SetErrorHandler). Defaults to true, for
	a single process-wide provider set up once at startup. Callers that
	build more than one concurrent Provider (for example a provider per
	distinct configuration) must pass WithGlobal(false) on every provider
	but at most one, or each will race to overwrite the others' globals.

Example

	provider, err := tracer.NewProvider(tracer.WithGlobal(false))
*/
func WithGlobal(enabled bool) Option {
	return &opts{
		fn: func(tp *traceProvider) {
			tp.setGlobal = enabled
		},
	}
}
