package semconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestTritonModelName(t *testing.T) {
	expected := attribute.Key(TritonPrefix + "model_name").String("resnet50")
	actual := TritonModelName("resnet50")
	assert.Equal(t, expected, actual)
}

func TestTritonModelVersion(t *testing.T) {
	expected := attribute.Key(TritonPrefix + "model_version").Int64(3)
	actual := TritonModelVersion(3)
	assert.Equal(t, expected, actual)
}

func TestTritonTraceParentID(t *testing.T) {
	expected := attribute.Key(TritonPrefix + "trace_parent_id").Int64(42)
	actual := TritonTraceParentID(42)
	assert.Equal(t, expected, actual)
}

func TestTritonTraceRequestID(t *testing.T) {
	expected := attribute.Key(TritonPrefix + "trace_request_id").String("req-123")
	actual := TritonTraceRequestID("req-123")
	assert.Equal(t, expected, actual)
}

func TestTritonSteadyTimestampNs(t *testing.T) {
	expected := attribute.Key(TritonPrefix + "steady_timestamp_ns").Int64(1234567)
	actual := TritonSteadyTimestampNs(1234567)
	assert.Equal(t, expected, actual)
}
