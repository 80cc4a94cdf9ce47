package manager

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/internal/hostsim"
	"github.com/modelserving/tracing/tracesetting"
)

func newTestManager(t *testing.T, filepath string) (*TraceManager, *hostsim.Host) {
	t.Helper()
	host := hostsim.New()
	m := NewTraceManager(host, tracesetting.Config{
		Level: activity.LevelTimestamps, Rate: 1, Count: -1,
		Filepath: filepath, Mode: activity.ModeTriton,
	})
	return m, host
}

func TestGetTraceSetting_FallsBackToGlobal(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")
	s := m.GetTraceSetting("unknown-model")
	assert.Equal(t, uint64(1), s.Rate())
}

func TestUpdateTraceSetting_PerModelOverride(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")

	err := m.UpdateTraceSetting("resnet50", tracesetting.Update{
		Rate: tracesetting.Set[uint64](5),
	})
	require.NoError(t, err)

	s := m.GetTraceSetting("resnet50")
	assert.Equal(t, uint64(5), s.Rate())
	assert.True(t, s.RateSpecified())

	// Unrelated model still sees the global.
	other := m.GetTraceSetting("bert")
	assert.Equal(t, uint64(1), other.Rate())
}

func TestUpdateTraceSetting_FallbackUsedModelsMembership(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")

	// Partial override: model enters fallback_used_models.
	require.NoError(t, m.UpdateTraceSetting("resnet50", tracesetting.Update{
		Rate: tracesetting.Set[uint64](5),
	}))
	_, inFallback := m.fallbackUsedModels["resnet50"]
	assert.True(t, inFallback)

	// Clearing the sole override reverts the model entirely.
	require.NoError(t, m.UpdateTraceSetting("resnet50", tracesetting.Update{
		Rate: tracesetting.Clear[uint64](),
	}))
	_, inFallback = m.fallbackUsedModels["resnet50"]
	assert.False(t, inFallback)
	_, hasEntry := m.modelSettings["resnet50"]
	assert.False(t, hasEntry)
}

func TestUpdateTraceSetting_GlobalUpdatePropagatesToFallbackModels(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")

	require.NoError(t, m.UpdateTraceSetting("resnet50", tracesetting.Update{
		Level: tracesetting.Set(activity.LevelTensors),
	}))
	require.Equal(t, uint64(1), m.GetTraceSetting("resnet50").Rate(), "rate still inherited from global")

	require.NoError(t, m.UpdateTraceSetting("", tracesetting.Update{
		Rate: tracesetting.Set[uint64](2),
	}))

	s := m.GetTraceSetting("resnet50")
	assert.Equal(t, uint64(2), s.Rate(), "model inheriting rate observes the new global value")
	assert.Equal(t, activity.LevelTensors, s.Level(), "model's own override is untouched")
}

func TestUpdateTraceSetting_RejectsInvalidUpdate(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")

	err := m.UpdateTraceSetting("resnet50", tracesetting.Update{
		Rate: tracesetting.Set[uint64](0),
	})
	assert.Error(t, err)

	// Rejected update must not have installed a half-applied setting.
	_, hasEntry := m.modelSettings["resnet50"]
	assert.False(t, hasEntry)
}

func TestResolveFile_SamePathReturnsSameInstanceWhileLive(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")

	f1 := m.resolveFile("/tmp/hostsim-shared.json")
	f2 := m.resolveFile("/tmp/hostsim-shared.json")
	assert.Same(t, f1, f2)
}

func TestResolveFile_DeadWeakEntryIsReplaced(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-global.json")

	path := "/tmp/hostsim-collectable.json"
	f1 := m.resolveFile(path)
	_ = f1
	f1 = nil

	// Force a collection cycle so the weak pointer in m.traceFiles dies.
	for i := 0; i < 5 && m.traceFiles[path].Value() != nil; i++ {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}

	f2 := m.resolveFile(path)
	require.NotNil(t, f2)
	assert.Equal(t, path, f2.Path())
}

func TestSampleTrace_RootFlow(t *testing.T) {
	m, host := newTestManager(t, "/tmp/hostsim-sample.json")

	tr := m.SampleTrace(context.Background(), "resnet50", 1, 1000)
	require.NotNil(t, tr)
	assert.NotZero(t, tr.TraceID())

	m.TraceActivity(context.Background(), tr.TraceID(), activity.RequestStart, 1000, tr)
	m.TraceRelease(context.Background(), tr.TraceID(), tr)

	assert.True(t, host.Released(tr.TraceID()))
}

func TestSampleTrace_RespectsRateBudget(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-rate.json")
	require.NoError(t, m.UpdateTraceSetting("", tracesetting.Update{
		Rate: tracesetting.Set[uint64](2),
	}))

	created := 0
	for i := 0; i < 10; i++ {
		if tr := m.SampleTrace(context.Background(), "resnet50", 1, uint64(i)); tr != nil {
			created++
		}
	}
	assert.Equal(t, 5, created)
}

func TestTraceTensorActivity_RejectsNonTensorKind(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-tensor.json")
	tr := m.SampleTrace(context.Background(), "resnet50", 1, 0)
	require.NotNil(t, tr)

	assert.NotPanics(t, func() {
		m.TraceTensorActivity(tr.TraceID(), activity.RequestStart, "input", activity.Uint8, []byte{1}, -1, nil, tr)
	})
}

func TestTraceActivity_UnknownUserpIsNoOp(t *testing.T) {
	m, _ := newTestManager(t, "/tmp/hostsim-badtype.json")
	assert.NotPanics(t, func() {
		m.TraceActivity(context.Background(), 1, activity.RequestStart, 0, "not-a-trace")
	})
}
