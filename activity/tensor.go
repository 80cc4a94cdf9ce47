package activity

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// DType names a tensor element type as reported by the host. It governs
// how TraceTensorActivity serializes a tensor's raw buffer into the
// TRITON-mode JSON event's "data" field.
type DType string

const (
	Bool   DType = "BOOL"
	Uint8  DType = "UINT8"
	Uint16 DType = "UINT16"
	Uint32 DType = "UINT32"
	Uint64 DType = "UINT64"
	Int8   DType = "INT8"
	Int16  DType = "INT16"
	Int32  DType = "INT32"
	Int64  DType = "INT64"
	FP32   DType = "FP32"
	FP64   DType = "FP64"
	Bytes  DType = "BYTES"
	// FP16 and BF16 have no serialization yet; SerializeData returns "" for
	// both, keeping shape/dtype correct in the emitted event.
	FP16 DType = "FP16"
	BF16 DType = "BF16"
)

// SerializeData renders raw into the comma-separated decimal form the
// TRITON-mode tensor event expects for dtype. byteSize bounds how many
// bytes of raw are valid; if negative, the whole slice is used. A BYTES
// payload that would read past byteSize stops serialization silently,
// returning whatever entries were already decoded.
func SerializeData(dtype DType, raw []byte, byteSize int) string {
	if byteSize >= 0 && byteSize < len(raw) {
		raw = raw[:byteSize]
	}

	switch dtype {
	case FP16, BF16:
		return ""
	case Bool:
		return serializeBools(raw)
	case Uint8:
		return serializeUints(raw, 1)
	case Uint16:
		return serializeUints(raw, 2)
	case Uint32:
		return serializeUints(raw, 4)
	case Uint64:
		return serializeUints(raw, 8)
	case Int8:
		return serializeInts(raw, 1)
	case Int16:
		return serializeInts(raw, 2)
	case Int32:
		return serializeInts(raw, 4)
	case Int64:
		return serializeInts(raw, 8)
	case FP32:
		return serializeFP32(raw)
	case FP64:
		return serializeFP64(raw)
	case Bytes:
		return serializeBytes(raw)
	default:
		return ""
	}
}

func serializeBools(raw []byte) string {
	parts := make([]string, 0, len(raw))
	for _, b := range raw {
		if b != 0 {
			parts = append(parts, "true")
		} else {
			parts = append(parts, "false")
		}
	}
	return strings.Join(parts, ",")
}

func serializeUints(raw []byte, width int) string {
	var parts []string
	for i := 0; i+width <= len(raw); i += width {
		var v uint64
		switch width {
		case 1:
			v = uint64(raw[i])
		case 2:
			v = uint64(binary.LittleEndian.Uint16(raw[i : i+2]))
		case 4:
			v = uint64(binary.LittleEndian.Uint32(raw[i : i+4]))
		case 8:
			v = binary.LittleEndian.Uint64(raw[i : i+8])
		}
		parts = append(parts, strconv.FormatUint(v, 10))
	}
	return strings.Join(parts, ",")
}

func serializeInts(raw []byte, width int) string {
	var parts []string
	for i := 0; i+width <= len(raw); i += width {
		var v int64
		switch width {
		case 1:
			v = int64(int8(raw[i]))
		case 2:
			v = int64(int16(binary.LittleEndian.Uint16(raw[i : i+2])))
		case 4:
			v = int64(int32(binary.LittleEndian.Uint32(raw[i : i+4])))
		case 8:
			v = int64(binary.LittleEndian.Uint64(raw[i : i+8]))
		}
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	return strings.Join(parts, ",")
}

func serializeFP32(raw []byte) string {
	var parts []string
	for i := 0; i+4 <= len(raw); i += 4 {
		bits := binary.LittleEndian.Uint32(raw[i : i+4])
		v := math.Float32frombits(bits)
		parts = append(parts, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	return strings.Join(parts, ",")
}

func serializeFP64(raw []byte) string {
	var parts []string
	for i := 0; i+8 <= len(raw); i += 8 {
		bits := binary.LittleEndian.Uint64(raw[i : i+8])
		v := math.Float64frombits(bits)
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

// serializeBytes walks a stream of 4-byte little-endian length prefixes
// followed by that many raw bytes, rendering each entry as a quoted
// string. It stops silently (returning whatever was decoded so far) as
// soon as a length prefix or its body would read past the end of raw.
func serializeBytes(raw []byte) string {
	var parts []string
	off := 0
	for off+4 <= len(raw) {
		n := int(binary.LittleEndian.Uint32(raw[off : off+4]))
		off += 4
		if n < 0 || off+n > len(raw) {
			break
		}
		parts = append(parts, strconv.Quote(string(raw[off:off+n])))
		off += n
	}
	return strings.Join(parts, ",")
}
