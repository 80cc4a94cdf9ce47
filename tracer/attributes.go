package tracer

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// NewAttribute builds an Attribute for the given key from value, dispatching
// on its concrete type. Pointer types are dereferenced first. Any type with
// no direct mapping is rendered with fmt.Sprintf("%v", value).
func NewAttribute(key string, value interface{}) Attribute {
	k := attribute.Key(key)

	switch v := value.(type) {
	case string:
		return k.String(v)
	case *string:
		return k.String(*v)
	case bool:
		return k.Bool(v)
	case *bool:
		return k.Bool(*v)
	case int:
		return k.Int(v)
	case *int:
		return k.Int(*v)
	case int64:
		return k.Int64(v)
	case *int64:
		return k.Int64(*v)
	case float64:
		return k.Float64(v)
	case *float64:
		return k.Float64(*v)
	case []string:
		return k.StringSlice(v)
	case []bool:
		return k.BoolSlice(v)
	case []int:
		return k.IntSlice(v)
	case []int64:
		return k.Int64Slice(v)
	case []float64:
		return k.Float64Slice(v)
	case fmt.Stringer:
		return k.String(v.String())
	default:
		return k.String(fmt.Sprintf("%v", v))
	}
}
