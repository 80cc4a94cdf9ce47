package semconv

import (
	"github.com/modelserving/tracing/tracer"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// TritonPrefix is the base prefix for all the inference-tracing attributes.
	TritonPrefix = "triton."
)

// Span/event attributes emitted on the OTEL-mode root span, matching
// spec.md §6's OTEL mode attribute list.
const (
	// TritonModelNameKey identifies the model serving the traced request.
	TritonModelNameKey = attribute.Key(TritonPrefix + "model_name")

	// TritonModelVersionKey identifies the model version serving the traced request.
	TritonModelVersionKey = attribute.Key(TritonPrefix + "model_version")

	// TritonTraceParentIDKey is the host-assigned id of the parent trace,
	// present only on non-root traces.
	TritonTraceParentIDKey = attribute.Key(TritonPrefix + "trace_parent_id")

	// TritonTraceRequestIDKey is the caller-supplied request identifier, if any.
	TritonTraceRequestIDKey = attribute.Key(TritonPrefix + "trace_request_id")

	// TritonSteadyTimestampNsKey carries the host's raw monotonic-clock
	// timestamp (nanoseconds) alongside the translated wall-clock event time.
	TritonSteadyTimestampNsKey = attribute.Key(TritonPrefix + "steady_timestamp_ns")
)

// TritonModelName returns an attribute KeyValue conforming to the
// "triton.model_name" semantic convention.
func TritonModelName(name string) tracer.Attribute {
	return TritonModelNameKey.String(name)
}

// TritonModelVersion returns an attribute KeyValue conforming to the
// "triton.model_version" semantic convention.
func TritonModelVersion(version int64) tracer.Attribute {
	return TritonModelVersionKey.Int64(version)
}

// TritonTraceParentID returns an attribute KeyValue conforming to the
// "triton.trace_parent_id" semantic convention.
func TritonTraceParentID(parentID uint64) tracer.Attribute {
	return TritonTraceParentIDKey.Int64(int64(parentID))
}

// TritonTraceRequestID returns an attribute KeyValue conforming to the
// "triton.trace_request_id" semantic convention.
func TritonTraceRequestID(requestID string) tracer.Attribute {
	return TritonTraceRequestIDKey.String(requestID)
}

// TritonSteadyTimestampNs returns an attribute KeyValue conforming to the
// "triton.steady_timestamp_ns" semantic convention.
func TritonSteadyTimestampNs(ts uint64) tracer.Attribute {
	return TritonSteadyTimestampNsKey.Int64(int64(ts))
}
