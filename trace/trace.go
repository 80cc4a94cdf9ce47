// Package trace implements Trace: the per-request aggregator that
// accumulates timestamped activities (and, in TRITON mode, tensor
// payloads) for one sampled inference request and flushes them — to a
// TraceSetting's buffer in TRITON mode, or to a single OpenTelemetry span
// in OTEL mode — when the request's root trace is released.
package trace

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/semconv/v1.0.0"
	"github.com/modelserving/tracing/tracer"
	"github.com/modelserving/tracing/tracesetting"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Trace aggregates activity for one sampled root inference request (and
// any host-reported child sub-traces sharing the same user-pointer). It
// is safe for concurrent use: activity callbacks may arrive from
// different host threads for different sub-trace ids at the same time.
type Trace struct {
	traceID      uint64
	modelName    string
	modelVersion int64

	setting *tracesetting.TraceSetting

	// timeOffset translates a host monotonic-clock timestamp (ns) into
	// wall-clock time: wallClock = createdAt.Add(timeOffset +
	// time.Duration(ts_ns)), where timeOffset = -hostReferenceNs. Both are
	// captured once at construction and never recomputed, so repeated
	// events never drift relative to each other.
	timeOffset time.Duration
	createdAt  time.Time

	provider tracer.Provider // non-nil only in OTEL mode

	mtx     sync.Mutex
	streams map[uint64]*strings.Builder // TRITON mode only, keyed by sub-trace-id
	span    tracer.Span                 // OTEL mode only, lazily started
}

// New constructs a Trace for a sampled candidate. hostMonotonicNs is the
// host's monotonic clock reading (nanoseconds) taken at the moment the
// candidate was sampled; it anchors timeOffset so that every later
// CaptureTimestamp/RecordActivity call translates its own host timestamp
// to wall-clock time without redriving the host clock each time. provider
// is the OTEL provider to use when setting.Mode() is OPENTELEMETRY; it is
// ignored (may be nil) in TRITON mode.
func New(setting *tracesetting.TraceSetting, modelName string, modelVersion int64, hostMonotonicNs uint64, provider tracer.Provider) *Trace {
	now := time.Now()
	return &Trace{
		modelName:    modelName,
		modelVersion: modelVersion,
		setting:      setting,
		timeOffset:   -time.Duration(hostMonotonicNs),
		createdAt:    now,
		provider:     provider,
		streams:      make(map[uint64]*strings.Builder),
	}
}

// SetTraceID records the host-assigned root trace id. Called once, right
// after the host runtime's CreateTrace accepts this Trace as its
// user-pointer and hands back an id.
func (t *Trace) SetTraceID(id uint64) {
	t.traceID = id
}

// TraceID returns the host-assigned root trace id.
func (t *Trace) TraceID() uint64 {
	return t.traceID
}

// Mode reports the tracing mode this Trace is recording under, taken
// from its TraceSetting at construction time.
func (t *Trace) Mode() activity.Mode {
	return t.setting.Mode()
}

// wallClock translates a host monotonic timestamp into absolute time.
func (t *Trace) wallClock(tsNs uint64) time.Time {
	return t.createdAt.Add(t.timeOffset + time.Duration(tsNs))
}

// CaptureTimestamp records a bare timestamp event against the root
// trace-id, with no request_id, no parent_id and no tensor payload (a
// REQUEST_START name still emits the identity header first). It is a
// no-op unless the setting's level includes TIMESTAMPS.
func (t *Trace) CaptureTimestamp(ctx context.Context, name activity.Kind, tsNs uint64) {
	t.RecordActivity(ctx, t.traceID, name, tsNs, nil, nil)
}

// RecordActivity handles one host activity callback for sub-trace id.
// When name is REQUEST_START, a header fragment carrying requestID and
// parentID (either may be nil) is emitted ahead of the activity event in
// TRITON mode, and the corresponding span attributes are set in OTEL
// mode. It is a no-op unless the setting's level includes TIMESTAMPS.
func (t *Trace) RecordActivity(ctx context.Context, subTraceID uint64, name activity.Kind, tsNs uint64, requestID *string, parentID *uint64) {
	if !t.setting.Level().Has(activity.LevelTimestamps) {
		return
	}

	if t.setting.Mode() == activity.ModeOpenTelemetry {
		t.recordActivityOTEL(ctx, name, tsNs, requestID, parentID)
		return
	}
	t.recordActivityTriton(subTraceID, name, tsNs, requestID, parentID)
}

func (t *Trace) recordActivityTriton(subTraceID uint64, name activity.Kind, tsNs uint64, requestID *string, parentID *uint64) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	buf := t.streamFor(subTraceID)

	if name == activity.RequestStart {
		header := headerFragment{
			ID:           subTraceID,
			ModelName:    t.modelName,
			ModelVersion: t.modelVersion,
			RequestID:    requestID,
			ParentID:     parentID,
		}
		raw, err := json.Marshal(header)
		if err == nil {
			buf.Write(raw)
			buf.WriteString(",")
		}
	}

	event := activityFragment{
		ID:         subTraceID,
		Timestamps: []timestampEntry{{Name: string(name), Ns: tsNs}},
	}
	raw, err := json.Marshal(event)
	if err == nil {
		buf.Write(raw)
	}
}

func (t *Trace) recordActivityOTEL(ctx context.Context, name activity.Kind, tsNs uint64, requestID *string, parentID *uint64) {
	span := t.ensureSpan(ctx, tsNs)

	if name == activity.RequestStart {
		span.SetAttributes(
			semconv.TritonModelName(t.modelName),
			semconv.TritonModelVersion(t.modelVersion),
		)
		if requestID != nil {
			span.SetAttributes(semconv.TritonTraceRequestID(*requestID))
		}
		if parentID != nil {
			span.SetAttributes(semconv.TritonTraceParentID(*parentID))
		}
	}

	span.AddEvent(string(name),
		oteltrace.WithTimestamp(t.wallClock(tsNs)),
		oteltrace.WithAttributes(semconv.TritonSteadyTimestampNs(tsNs)),
	)
}

// ensureSpan lazily starts the one root span for this Trace, backdated
// to the wall-clock translation of firstTsNs (the timestamp of whichever
// activity happens to arrive first).
func (t *Trace) ensureSpan(ctx context.Context, firstTsNs uint64) tracer.Span {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.span != nil {
		return t.span
	}

	_, span := t.provider.Tracer("inference-tracing").Start(ctx, "InferRequest",
		oteltrace.WithTimestamp(t.wallClock(firstTsNs)),
		oteltrace.WithSpanKind(oteltrace.SpanKindServer),
	)
	t.span = span
	return span
}

// RecordTensorActivity handles a TENSOR_QUEUE_INPUT / TENSOR_BACKEND_INPUT
// / TENSOR_BACKEND_OUTPUT callback. Any other kind is rejected (logged by
// the caller, manager.TraceManager). OTEL mode does not support tensor
// payloads: the event is dropped (the caller logs "unsupported"). A
// BYTES payload that would read past byteSize stops serializing
// silently, per activity.SerializeData.
func (t *Trace) RecordTensorActivity(subTraceID uint64, kind activity.Kind, tensorName string, dtype activity.DType, raw []byte, byteSize int, shape []int64) {
	if !kind.IsTensor() {
		return
	}
	if !t.setting.Level().Has(activity.LevelTensors) {
		return
	}
	if t.setting.Mode() == activity.ModeOpenTelemetry {
		return
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	buf := t.streamFor(subTraceID)

	shapeParts := make([]string, len(shape))
	for i, d := range shape {
		shapeParts[i] = strconv.FormatInt(d, 10)
	}

	fragment := tensorFragment{
		ID:       subTraceID,
		Activity: string(kind),
		Tensor: tensorInfo{
			Name:  tensorName,
			Data:  activity.SerializeData(dtype, raw, byteSize),
			Shape: strings.Join(shapeParts, ","),
			Dtype: string(dtype),
		},
	}

	rawFragment, err := json.Marshal(fragment)
	if err == nil {
		buf.Write(rawFragment)
	}
}

// streamFor returns the accumulating buffer for sub-trace-id, inserting
// a separating comma if this is not the id's first fragment. Callers
// must hold t.mtx.
func (t *Trace) streamFor(subTraceID uint64) *strings.Builder {
	buf, ok := t.streams[subTraceID]
	if !ok {
		buf = &strings.Builder{}
		t.streams[subTraceID] = buf
		return buf
	}
	buf.WriteString(",")
	return buf
}

// Close is the destructor-equivalent invoked when the host releases the
// root trace: in TRITON mode it hands the accumulated per-sub-trace
// streams to the setting for flushing, in OTEL mode it ends the span.
func (t *Trace) Close(ctx context.Context) {
	t.mtx.Lock()
	span := t.span
	streams := t.streams
	t.mtx.Unlock()

	if t.setting.Mode() == activity.ModeOpenTelemetry {
		if span != nil {
			span.End()
		}
		return
	}

	fragments := make(map[string]string, len(streams))
	for id, buf := range streams {
		fragments[strconv.FormatUint(id, 10)] = buf.String()
	}
	t.setting.WriteTrace(ctx, fragments)
}

type headerFragment struct {
	ID           uint64  `json:"id"`
	ModelName    string  `json:"model_name"`
	ModelVersion int64   `json:"model_version"`
	RequestID    *string `json:"request_id,omitempty"`
	ParentID     *uint64 `json:"parent_id,omitempty"`
}

type timestampEntry struct {
	Name string `json:"name"`
	Ns   uint64 `json:"ns"`
}

type activityFragment struct {
	ID         uint64           `json:"id"`
	Timestamps []timestampEntry `json:"timestamps"`
}

type tensorInfo struct {
	Name  string `json:"name"`
	Data  string `json:"data"`
	Shape string `json:"shape"`
	Dtype string `json:"dtype"`
}

type tensorFragment struct {
	ID       uint64     `json:"id"`
	Activity string     `json:"activity"`
	Tensor   tensorInfo `json:"tensor"`
}

