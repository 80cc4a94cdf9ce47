package tracesetting

import (
	"context"
	"fmt"
	"runtime"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/metric"
	"github.com/modelserving/tracing/tracefile"
)

// FileResolver resolves a TRITON-mode filepath to the shared TraceFile
// instance for that path, creating one if the manager's weak-reference
// cache has none live. Supplied by manager.TraceManager, which owns the
// cache; tracesetting itself has no notion of weak references.
type FileResolver func(path string) *tracefile.TraceFile

func mergeField[T any](current Specified[T], upd Override[T], fallback T) Specified[T] {
	switch upd.Op {
	case OpClear:
		return Specified[T]{Value: fallback, Specified: false}
	case OpSet:
		return Specified[T]{Value: upd.Value, Specified: true}
	default: // OpUnchanged
		if current.Specified {
			return Specified[T]{Value: current.Value, Specified: true}
		}
		return Specified[T]{Value: fallback, Specified: false}
	}
}

// Merge computes the effective setting produced by applying upd to
// current (which may be nil, meaning no prior per-model setting exists)
// against fallback (the global setting for a per-model update, or the
// global_default for a global update).
//
// The result is a brand new TraceSetting with zeroed counters — sampling
// state never carries across an update, only the seven tracked
// configuration fields do. The only invalidity an update is permitted to
// introduce is level==DISABLED; any other invalidity is rejected with
// ErrInvalidArgument and the prior setting is left untouched by the
// caller.
func Merge(current, fallback *TraceSetting, upd Update, modelName string, recorder *metric.Recorder, resolveFile FileResolver) (*TraceSetting, error) {
	var curLevel Specified[activity.Level]
	var curRate, curLogFrequency Specified[uint64]
	var curCount Specified[int64]
	var curFilepath Specified[string]
	var curMode Specified[activity.Mode]
	var curConfigMap Specified[map[string]map[string]string]
	if current != nil {
		curLevel = current.level
		curRate = current.rate
		curCount = current.count
		curLogFrequency = current.logFrequency
		curFilepath = current.filepath
		curMode = current.mode
		curConfigMap = current.configMap
	}

	merged := &TraceSetting{
		level:        mergeField(curLevel, upd.Level, fallback.level.Value),
		rate:         mergeField(curRate, upd.Rate, fallback.rate.Value),
		count:        mergeField(curCount, upd.Count, fallback.count.Value),
		logFrequency: mergeField(curLogFrequency, upd.LogFrequency, fallback.logFrequency.Value),
		filepath:     mergeField(curFilepath, upd.Filepath, fallback.filepath.Value),
		mode:         mergeField(curMode, upd.Mode, fallback.mode.Value),
		configMap:    mergeField(curConfigMap, upd.ConfigMap, fallback.configMap.Value),
		modelName:    modelName,
		recorder:     recorder,
	}

	if valid, reason := merged.validate(); !valid && !merged.onlyDisabledReason() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
	}

	if merged.filepath.Value != "" && resolveFile != nil {
		merged.file = resolveFile(merged.filepath.Value)
	}

	runtime.SetFinalizer(merged, func(s *TraceSetting) {
		s.Close(context.Background())
	})

	return merged, nil
}
