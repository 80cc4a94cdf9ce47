// Package manager implements TraceManager: the registry of global and
// per-model TraceSettings, the hot-reconfiguration update protocol, the
// sampling entry point, and the trampolines a host inference runtime calls
// through as an inference request moves through its lifecycle.
package manager

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
	"weak"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/config"
	"github.com/modelserving/tracing/metric"
	"github.com/modelserving/tracing/tracefile"
	"github.com/modelserving/tracing/tracer"
	"github.com/modelserving/tracing/tracesetting"
)

// TraceManager owns the global/per-model TraceSetting registry, the
// weak-reference TraceFile cache, and the host-runtime callback
// trampolines. A TraceManager is created once at startup and lives for
// the process lifetime.
type TraceManager struct {
	host     Host
	logger   Logger
	recorder *metric.Recorder

	// globalDefault is the immutable startup configuration; globalSetting
	// is the current global, replaced wholesale on every global update.
	globalDefault *tracesetting.TraceSetting
	globalSetting *tracesetting.TraceSetting

	wMu sync.Mutex // serializes UpdateTraceSetting calls

	rMu                sync.RWMutex // guards modelSettings/fallbackUsedModels reads/installs
	modelSettings      map[string]*tracesetting.TraceSetting
	fallbackUsedModels map[string]struct{}

	filesMu    sync.Mutex
	traceFiles map[string]weak.Pointer[tracefile.TraceFile]

	// providers is keyed by a weak reference to the setting so that a
	// setting with no remaining Trace or manager slot referencing it can
	// still be collected; each entry is retired by a runtime.AddCleanup
	// callback registered when it's built (see providerFor), rather than
	// pinned here for the process lifetime.
	providerMu sync.Mutex
	providers  map[weak.Pointer[tracesetting.TraceSetting]]tracer.Provider
}

// Option configures a TraceManager at construction.
type Option func(*TraceManager)

// WithLogger sets the logger used to report host-runtime and callback
// failures.
func WithLogger(logger Logger) Option {
	return func(m *TraceManager) {
		m.logger = logger
	}
}

// WithRecorder sets the self-observability recorder shared by every
// TraceSetting the manager creates or merges. A nil recorder is a no-op.
func WithRecorder(recorder *metric.Recorder) Option {
	return func(m *TraceManager) {
		m.recorder = recorder
	}
}

// NewTraceManager creates a TraceManager whose global_default and
// global_setting both start from cfg, with every field's specified bit
// false.
func NewTraceManager(host Host, cfg tracesetting.Config, opts ...Option) *TraceManager {
	m := &TraceManager{
		host:               host,
		logger:             &noopLogger{},
		modelSettings:      make(map[string]*tracesetting.TraceSetting),
		fallbackUsedModels: make(map[string]struct{}),
		traceFiles:         make(map[string]weak.Pointer[tracefile.TraceFile]),
		providers:          make(map[weak.Pointer[tracesetting.TraceSetting]]tracer.Provider),
	}

	for _, opt := range opts {
		opt(m)
	}

	var file *tracefile.TraceFile
	if cfg.Filepath != "" {
		file = m.resolveFile(cfg.Filepath)
	}

	m.globalDefault = tracesetting.New(cfg, "", m.recorder, file)
	m.globalSetting = tracesetting.New(cfg, "", m.recorder, file)

	return m
}

// GetTraceSetting returns the effective setting for modelName: the
// per-model override if one is installed, otherwise the current global.
func (m *TraceManager) GetTraceSetting(modelName string) *tracesetting.TraceSetting {
	m.rMu.RLock()
	defer m.rMu.RUnlock()

	if s, ok := m.modelSettings[modelName]; ok {
		return s
	}
	return m.globalSetting
}

// resolveFile implements tracesetting.FileResolver against the weak file
// cache: a path resolves to the same TraceFile instance as long as some
// setting still holds a strong reference to it; a dead or absent weak
// entry is replaced with a fresh TraceFile, never resurrected.
func (m *TraceManager) resolveFile(path string) *tracefile.TraceFile {
	m.filesMu.Lock()
	defer m.filesMu.Unlock()

	if wp, ok := m.traceFiles[path]; ok {
		if f := wp.Value(); f != nil {
			return f
		}
		delete(m.traceFiles, path)
	}

	f := tracefile.New(path, tracefile.WithLogger(m.logger), tracefile.WithRecorder(m.recorder))
	m.traceFiles[path] = weak.Make(f)
	return f
}

// providerFor lazily builds (and caches, keyed by a weak reference to
// setting) the OTEL tracer.Provider a setting's OPENTELEMETRY-mode traces
// should use. config_map[OTEL_MODE]["url"] overrides the default collector
// endpoint when present; unknown config keys are ignored.
func (m *TraceManager) providerFor(setting *tracesetting.TraceSetting) (tracer.Provider, error) {
	m.providerMu.Lock()
	defer m.providerMu.Unlock()

	wp := weak.Make(setting)
	if p, ok := m.providers[wp]; ok {
		return p, nil
	}

	cfg := &config.OpenTelemetry{Enabled: true, ExporterConfig: config.ExporterConfig{Exporter: config.HTTPEXPORTER}}
	if opts, ok := setting.ConfigMap()[string(activity.ModeOpenTelemetry)]; ok {
		if url, ok := opts["url"]; ok && url != "" {
			cfg.Endpoint = url
		}
	}

	p, err := tracer.NewProvider(
		tracer.WithContext(context.Background()),
		tracer.WithConfig(cfg),
		tracer.WithLogger(m.logger),
		// Every distinct setting gets its own provider; registering each one
		// as the OTel globals would mean the last one built wins the
		// process-wide otel.SetTracerProvider/SetTextMapPropagator state.
		tracer.WithGlobal(false),
	)
	if err != nil {
		return nil, err
	}

	m.providers[wp] = p
	runtime.AddCleanup(setting, m.retireProvider, wp)

	return p, nil
}

// retireProvider is the cleanup registered against a setting's lifetime in
// providerFor: once setting becomes unreachable (no Trace or manager slot
// references it any more, matching spec's "destroyed when no Trace or
// manager slot references them"), its cached provider is evicted and shut
// down. Runs on the runtime's cleanup goroutine, so the actual Shutdown
// call is handed off rather than run inline.
func (m *TraceManager) retireProvider(wp weak.Pointer[tracesetting.TraceSetting]) {
	m.providerMu.Lock()
	p, ok := m.providers[wp]
	if ok {
		delete(m.providers, wp)
	}
	m.providerMu.Unlock()

	if !ok {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Shutdown(ctx); err != nil {
			m.logger.Error(fmt.Sprintf("manager: shutting down retired OTEL provider failed: %v", err))
		}
	}()
}
