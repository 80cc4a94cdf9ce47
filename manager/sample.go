package manager

import (
	"context"
	"fmt"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/trace"
)

// SampleTrace is the request-admission entry point: the host calls it for
// every candidate request. It picks the applicable setting (per-model if
// one is installed, else global), asks the setting's sampler whether this
// candidate is sampled, and if so builds a Trace, resolves an OTEL
// provider when the setting is in OPENTELEMETRY mode, and asks the host to
// mint a trace handle. On any host-runtime failure the candidate is
// treated as not traced — tracing is best-effort and must never propagate
// an error onto the request path.
//
// hostMonotonicNs is the host's monotonic clock reading, taken at the
// moment of this call, used to anchor the Trace's wall-clock translation.
func (m *TraceManager) SampleTrace(ctx context.Context, modelName string, modelVersion int64, hostMonotonicNs uint64) *trace.Trace {
	setting := m.GetTraceSetting(modelName)

	if !setting.SampleTrace(ctx) {
		return nil
	}

	var tr *trace.Trace
	if setting.Mode() == activity.ModeOpenTelemetry {
		p, err := m.providerFor(setting)
		if err != nil {
			m.logger.Error(fmt.Sprintf("manager: building OTEL provider for model %q failed: %v", modelName, err))
			return nil
		}
		tr = trace.New(setting, modelName, modelVersion, hostMonotonicNs, p)
	} else {
		tr = trace.New(setting, modelName, modelVersion, hostMonotonicNs, nil)
	}

	traceID, err := m.host.CreateTrace(ctx, modelName, modelVersion, tr)
	if err != nil {
		m.logger.Error(fmt.Sprintf("manager: host CreateTrace for model %q failed: %v", modelName, err))
		return nil
	}
	tr.SetTraceID(traceID)

	return tr
}
