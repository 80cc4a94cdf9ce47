package tracesetting

import "github.com/modelserving/tracing/activity"

// Update describes a requested change to a TraceSetting: an Override per
// tracked field, as submitted through TraceManager.UpdateTraceSetting.
type Update struct {
	Level        Override[activity.Level]
	Rate         Override[uint64]
	Count        Override[int64]
	LogFrequency Override[uint64]
	Filepath     Override[string]
	Mode         Override[activity.Mode]
	ConfigMap    Override[map[string]map[string]string]
}
