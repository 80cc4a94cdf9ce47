package manager

import (
	"context"
	"fmt"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/trace"
)

// traceFromUserp recovers the Trace a prior SampleTrace call attached as
// userp. A type mismatch indicates a host/manager wiring bug, logged and
// treated as a no-op rather than a panic.
func (m *TraceManager) traceFromUserp(userp any) (*trace.Trace, bool) {
	tr, ok := userp.(*trace.Trace)
	if !ok {
		m.logger.Error(fmt.Sprintf("manager: callback userp is %T, not *trace.Trace", userp))
	}
	return tr, ok
}

// TraceActivity is the trampoline for the host's per-activity callback. It
// resolves request_id/parent_id from the host only for REQUEST_START,
// where the identity header fragment needs them; every other activity
// kind carries neither.
func (m *TraceManager) TraceActivity(ctx context.Context, traceHandle uint64, kind activity.Kind, tsNs uint64, userp any) {
	tr, ok := m.traceFromUserp(userp)
	if !ok {
		return
	}

	var requestID *string
	var parentID *uint64
	if kind == activity.RequestStart {
		if id, has := m.host.RequestID(traceHandle); has {
			requestID = &id
		}
		if p := m.host.ParentID(traceHandle); p != 0 {
			parentID = &p
		}
	}

	tr.RecordActivity(ctx, traceHandle, kind, tsNs, requestID, parentID)
}

// TraceTensorActivity is the trampoline for the host's tensor-payload
// callback. Non-tensor kinds are rejected with a log line, per spec; OTEL
// mode drops the event with an "unsupported" log, since tensor payloads
// have no OTEL representation here.
func (m *TraceManager) TraceTensorActivity(traceHandle uint64, kind activity.Kind, tensorName string, dtype activity.DType, data []byte, byteSize int, shape []int64, userp any) {
	tr, ok := m.traceFromUserp(userp)
	if !ok {
		return
	}

	if !kind.IsTensor() {
		m.logger.Error(fmt.Sprintf("manager: TraceTensorActivity called with non-tensor kind %q", kind))
		return
	}

	if tr.Mode() == activity.ModeOpenTelemetry {
		m.logger.Info(fmt.Sprintf("manager: tensor tracing unsupported in OTEL mode, dropping %q for %q", kind, tensorName))
		return
	}

	tr.RecordTensorActivity(traceHandle, kind, tensorName, dtype, data, byteSize, shape)
}

// TraceRelease is the trampoline for the host's release callback. Only a
// root release (parent_id==0) closes the Trace: its destructor-equivalent
// flushes any buffered TRITON fragments or ends the OTEL span. Child
// sub-trace releases only inform the host; the shared Trace lives on
// until the root releases.
func (m *TraceManager) TraceRelease(ctx context.Context, traceHandle uint64, userp any) {
	tr, ok := m.traceFromUserp(userp)
	if ok && m.host.ParentID(traceHandle) == 0 {
		tr.Close(ctx)
	}
	m.host.ReleaseTrace(traceHandle, userp)
}
