package tracefile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceFile_Aggregate_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traces.json")

	f := New(path)
	f.SaveTraces(context.Background(), `{"a":1}`, false)
	f.SaveTraces(context.Background(), `{"a":2}`, false)
	f.SaveTraces(context.Background(), `{"a":3}`, false)
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]int
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, []map[string]int{{"a": 1}, {"a": 2}, {"a": 3}}, out)
}

func TestTraceFile_Aggregate_NoWritesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traces.json")

	f := New(path)
	require.NoError(t, f.Close())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTraceFile_Indexed_EachWriteIsItsOwnFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traces.json")

	f := New(path)
	f.SaveTraces(context.Background(), `{"a":1}`, true)
	f.SaveTraces(context.Background(), `{"a":2}`, true)

	raw0, err := os.ReadFile(path + ".0")
	require.NoError(t, err)
	var got0 []map[string]int
	require.NoError(t, json.Unmarshal(raw0, &got0))
	assert.Equal(t, []map[string]int{{"a": 1}}, got0)

	raw1, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	var got1 []map[string]int
	require.NoError(t, json.Unmarshal(raw1, &got1))
	assert.Equal(t, []map[string]int{{"a": 2}}, got1)
}

func TestTraceFile_Indexed_EachInstanceStartsAtZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traces.json")

	a := New(path)
	a.SaveTraces(context.Background(), `{"a":1}`, true)

	b := New(path)
	b.SaveTraces(context.Background(), `{"a":2}`, true)

	_, err := os.Stat(path + ".0")
	assert.NoError(t, err, "each TraceFile instance starts its own index at 0")
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err), "the second instance does not continue at index 1")
}

func TestTraceFile_BadPath_LogsAndSwallows(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "missing-dir", "nested", "traces.json"))
	assert.NotPanics(t, func() {
		f.SaveTraces(context.Background(), `{"a":1}`, false)
	})
	assert.NoError(t, f.Close())
}
