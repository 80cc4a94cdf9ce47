package activity

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeData_Integers(t *testing.T) {
	tcs := []struct {
		name  string
		dtype DType
		raw   []byte
		want  string
	}{
		{"uint8", Uint8, []byte{1, 2, 3}, "1,2,3"},
		{"int8 negative", Int8, []byte{0xFF, 0x01}, "-1,1"},
		{"bool", Bool, []byte{0, 1, 2}, "false,true,true"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := SerializeData(tc.dtype, tc.raw, -1)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSerializeData_Uint32RoundTrip(t *testing.T) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[0:4], 42)
	binary.LittleEndian.PutUint32(raw[4:8], 7)

	got := SerializeData(Uint32, raw, -1)
	assert.Equal(t, "42,7", got)
}

func TestSerializeData_FP16BF16Empty(t *testing.T) {
	assert.Equal(t, "", SerializeData(FP16, []byte{1, 2, 3, 4}, -1))
	assert.Equal(t, "", SerializeData(BF16, []byte{1, 2, 3, 4}, -1))
}

func TestSerializeData_BytesLengthPrefixed(t *testing.T) {
	raw := make([]byte, 0)
	entry := func(s string) []byte {
		prefix := make([]byte, 4)
		binary.LittleEndian.PutUint32(prefix, uint32(len(s)))
		return append(prefix, []byte(s)...)
	}
	raw = append(raw, entry("hello")...)
	raw = append(raw, entry("world")...)

	got := SerializeData(Bytes, raw, -1)
	assert.Equal(t, `"hello","world"`, got)
}

func TestSerializeData_BytesOverflowStopsSilently(t *testing.T) {
	prefix := make([]byte, 4)
	binary.LittleEndian.PutUint32(prefix, 100) // claims 100 bytes but none follow
	raw := append(prefix, []byte("short")...)

	got := SerializeData(Bytes, raw, -1)
	assert.Equal(t, "", got)
}

func TestSerializeData_ByteSizeBound(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}
	got := SerializeData(Uint8, raw, 2)
	assert.Equal(t, "1,2", got)
}
