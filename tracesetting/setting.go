package tracesetting

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/metric"
	"github.com/modelserving/tracing/tracefile"
)

// TraceSetting is an immutable effective configuration (its seven tracked
// fields never change after construction, except that SampleTrace
// decrements a non-negative count as traces are created) plus a set of
// mutable sampling counters guarded by mu. Instances are produced by New (startup defaults)
// or Merge (configuration updates) and are safe to share across goroutines
// and across however many in-flight Traces currently hold one.
type TraceSetting struct {
	level        Specified[activity.Level]
	rate         Specified[uint64]
	count        Specified[int64]
	logFrequency Specified[uint64]
	filepath     Specified[string]
	mode         Specified[activity.Mode]
	configMap    Specified[map[string]map[string]string]

	file      *tracefile.TraceFile
	modelName string
	recorder  *metric.Recorder

	mu             sync.Mutex
	sample         uint64
	created        int64
	collected      uint64
	sampleInStream uint64
	traceStream    strings.Builder
}

// Config is the plain-value form used to construct a startup default or
// global setting, with every field starting unspecified (inherited).
type Config struct {
	Level        activity.Level
	Rate         uint64
	Count        int64
	LogFrequency uint64
	Filepath     string
	Mode         activity.Mode
	ConfigMap    map[string]map[string]string
}

// New constructs a TraceSetting directly from cfg, with every field's
// specified bit set to false. Used to build the manager's global_default
// and initial global_setting at startup.
func New(cfg Config, modelName string, recorder *metric.Recorder, file *tracefile.TraceFile) *TraceSetting {
	s := &TraceSetting{
		level:        Specified[activity.Level]{Value: cfg.Level},
		rate:         Specified[uint64]{Value: cfg.Rate},
		count:        Specified[int64]{Value: cfg.Count},
		logFrequency: Specified[uint64]{Value: cfg.LogFrequency},
		filepath:     Specified[string]{Value: cfg.Filepath},
		mode:         Specified[activity.Mode]{Value: cfg.Mode},
		configMap:    Specified[map[string]map[string]string]{Value: cfg.ConfigMap},
		modelName:    modelName,
		recorder:     recorder,
		file:         file,
	}
	runtime.SetFinalizer(s, func(s *TraceSetting) {
		s.Close(context.Background())
	})
	return s
}

// Level returns the effective activity level bitmask.
func (s *TraceSetting) Level() activity.Level { return s.level.Value }

// Rate returns the effective sampling rate.
func (s *TraceSetting) Rate() uint64 { return s.rate.Value }

// Count returns the effective remaining-trace budget (negative == unlimited).
func (s *TraceSetting) Count() int64 { return s.count.Value }

// LogFrequency returns the effective buffered-sample count that triggers
// an indexed-file flush (0 disables count-based rotation).
func (s *TraceSetting) LogFrequency() uint64 { return s.logFrequency.Value }

// Filepath returns the effective TRITON-mode output path.
func (s *TraceSetting) Filepath() string { return s.filepath.Value }

// Mode returns the effective trace mode.
func (s *TraceSetting) Mode() activity.Mode { return s.mode.Value }

// ConfigMap returns the effective mode-keyed option map.
func (s *TraceSetting) ConfigMap() map[string]map[string]string { return s.configMap.Value }

// ModelName returns the model this setting applies to, or "" for the
// global setting.
func (s *TraceSetting) ModelName() string { return s.modelName }

// File returns the TraceFile this setting writes to in TRITON mode, or
// nil if no filepath is configured.
func (s *TraceSetting) File() *tracefile.TraceFile { return s.file }

// LevelSpecified reports whether Level is an explicit override.
func (s *TraceSetting) LevelSpecified() bool { return s.level.Specified }

// RateSpecified reports whether Rate is an explicit override.
func (s *TraceSetting) RateSpecified() bool { return s.rate.Specified }

// CountSpecified reports whether Count is an explicit override.
func (s *TraceSetting) CountSpecified() bool { return s.count.Specified }

// LogFrequencySpecified reports whether LogFrequency is an explicit override.
func (s *TraceSetting) LogFrequencySpecified() bool { return s.logFrequency.Specified }

// FilepathSpecified reports whether Filepath is an explicit override.
func (s *TraceSetting) FilepathSpecified() bool { return s.filepath.Specified }

// ModeSpecified reports whether Mode is an explicit override.
func (s *TraceSetting) ModeSpecified() bool { return s.mode.Specified }

// ConfigMapSpecified reports whether ConfigMap is an explicit override.
func (s *TraceSetting) ConfigMapSpecified() bool { return s.configMap.Specified }

// FallbackFieldsSpecified reports how many of the five fields tracked by
// fallback_used_models membership (level, rate, count, logFrequency,
// filepath) are explicit overrides on this setting.
func (s *TraceSetting) FallbackFieldsSpecified() (specified, total int) {
	fields := [...]bool{
		s.level.Specified,
		s.rate.Specified,
		s.count.Specified,
		s.logFrequency.Specified,
		s.filepath.Specified,
	}
	for _, f := range fields {
		if f {
			specified++
		}
	}
	return specified, len(fields)
}

const reasonDisabled = "tracing disabled (level=DISABLED)"

// Valid reports whether this setting satisfies the validity invariant:
// level != DISABLED, rate != 0, and a non-empty filepath when mode is
// TRITON.
func (s *TraceSetting) Valid() bool {
	valid, _ := s.validate()
	return valid
}

// Reason returns a human-readable explanation when Valid is false, or ""
// when the setting is valid.
func (s *TraceSetting) Reason() string {
	_, reason := s.validate()
	return reason
}

func (s *TraceSetting) validate() (bool, string) {
	var reasons []string
	if s.level.Value == activity.LevelDisabled {
		reasons = append(reasons, reasonDisabled)
	}
	if s.rate.Value == 0 {
		reasons = append(reasons, "rate must be non-zero")
	}
	if s.mode.Value == activity.ModeTriton && s.filepath.Value == "" {
		reasons = append(reasons, "filepath must be set in TRITON mode")
	}
	if len(reasons) == 0 {
		return true, ""
	}
	return false, strings.Join(reasons, "; ")
}

// onlyDisabledReason reports whether the sole reason this setting is
// invalid is that tracing is disabled — the one invalidity an update is
// allowed to produce.
func (s *TraceSetting) onlyDisabledReason() bool {
	valid, reason := s.validate()
	return !valid && reason == reasonDisabled
}
