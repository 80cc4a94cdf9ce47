package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_IsTensor(t *testing.T) {
	tcs := []struct {
		name string
		kind Kind
		want bool
	}{
		{"tensor queue input", TensorQueueInput, true},
		{"tensor backend input", TensorBackendInput, true},
		{"tensor backend output", TensorBackendOutput, true},
		{"request start", RequestStart, false},
		{"arbitrary host string", Kind("CUSTOM_STAGE"), false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.IsTensor())
		})
	}
}

func TestLevel_Has(t *testing.T) {
	both := LevelTimestamps | LevelTensors

	assert.True(t, both.Has(LevelTimestamps))
	assert.True(t, both.Has(LevelTensors))
	assert.True(t, both.Has(LevelTimestamps|LevelTensors))
	assert.False(t, LevelDisabled.Has(LevelTimestamps))
	assert.False(t, LevelTimestamps.Has(LevelTensors))
}
