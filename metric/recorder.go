package metric

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// Metric names for the tracing subsystem's own self-observability.
	// Distinct from the traces/spans the subsystem produces for inference
	// requests — these describe the health of the sampler and writer.
	metricSamplesTotal       = "tracing.samples_total"
	metricTracesCreatedTotal = "tracing.traces_created_total"
	metricTracesFlushedTotal = "tracing.traces_flushed_total"
	metricFileBytesTotal     = "tracing.trace_file_bytes_written_total"

	unitDimensionless = "1"
	unitBytes         = "By"
)

// FlushTrigger identifies why a TraceSetting flushed its buffer to a TraceFile.
type FlushTrigger string

const (
	FlushTriggerCountDrain  FlushTrigger = "count_drain"
	FlushTriggerLogFreq     FlushTrigger = "log_frequency"
	FlushTriggerDestruction FlushTrigger = "destruction"
)

// Recorder is the single integration point the tracing subsystem uses to
// report its own health. It never affects control flow: every method is a
// no-op when metrics are disabled.
type Recorder struct {
	samplesCounter   metric.Int64Counter
	createdCounter   metric.Int64Counter
	flushedCounter   metric.Int64Counter
	fileBytesCounter metric.Int64Counter
	enabled          bool
}

// newRecorder creates a new Recorder with the given meter.
func newRecorder(meter metric.Meter) (*Recorder, error) {
	samplesCounter, err := meter.Int64Counter(
		metricSamplesTotal,
		metric.WithDescription("Total number of sample candidates observed by a TraceSetting"),
		metric.WithUnit(unitDimensionless),
	)
	if err != nil {
		return nil, err
	}

	createdCounter, err := meter.Int64Counter(
		metricTracesCreatedTotal,
		metric.WithDescription("Total number of Trace objects created"),
		metric.WithUnit(unitDimensionless),
	)
	if err != nil {
		return nil, err
	}

	flushedCounter, err := meter.Int64Counter(
		metricTracesFlushedTotal,
		metric.WithDescription("Total number of buffered traces flushed to a TraceFile"),
		metric.WithUnit(unitDimensionless),
	)
	if err != nil {
		return nil, err
	}

	fileBytesCounter, err := meter.Int64Counter(
		metricFileBytesTotal,
		metric.WithDescription("Total bytes written to trace files"),
		metric.WithUnit(unitBytes),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		samplesCounter:   samplesCounter,
		createdCounter:   createdCounter,
		flushedCounter:   flushedCounter,
		fileBytesCounter: fileBytesCounter,
		enabled:          true,
	}, nil
}

// newNoopRecorder creates a recorder that does nothing.
// Used when metrics are disabled.
func newNoopRecorder() *Recorder {
	return &Recorder{
		enabled: false,
	}
}

// RecordSample reports one sample candidate seen by the named model's setting.
func (r *Recorder) RecordSample(ctx context.Context, model string) {
	if r == nil || !r.enabled {
		return
	}
	r.samplesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("model_name", model)))
}

// RecordCreated reports one Trace created for the named model.
func (r *Recorder) RecordCreated(ctx context.Context, model string) {
	if r == nil || !r.enabled {
		return
	}
	r.createdCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("model_name", model)))
}

// RecordFlush reports one flush of a TraceSetting's buffer to its TraceFile.
func (r *Recorder) RecordFlush(ctx context.Context, model string, trigger FlushTrigger, traceCount int) {
	if r == nil || !r.enabled {
		return
	}
	r.flushedCounter.Add(ctx, int64(traceCount), metric.WithAttributes(
		attribute.String("model_name", model),
		attribute.String("trigger", string(trigger)),
	))
}

// RecordFileWrite reports bytes written to a trace file at the given path.
func (r *Recorder) RecordFileWrite(ctx context.Context, path string, n int) {
	if r == nil || !r.enabled {
		return
	}
	r.fileBytesCounter.Add(ctx, int64(n), metric.WithAttributes(attribute.String("filepath", path)))
}

// Enabled returns whether the recorder is enabled.
func (r *Recorder) Enabled() bool {
	return r != nil && r.enabled
}
