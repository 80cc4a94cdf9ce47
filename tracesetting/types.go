// Package tracesetting implements TraceSetting: an effective-configuration
// snapshot produced by merging an update against a current setting and a
// fallback, plus the sampling counters and accumulating JSON buffer that
// back TRITON-mode persistence.
package tracesetting

// OverrideOp names what an update does to one configuration field.
type OverrideOp int

const (
	// OpUnchanged leaves the field as the current setting (or its own
	// fallback, if nothing is currently specified) has it.
	OpUnchanged OverrideOp = iota
	// OpClear removes any override on the field, reverting it to inherit
	// from the fallback.
	OpClear
	// OpSet installs a new explicit value for the field.
	OpSet
)

// Override is a tagged union carrying one of: no change, a clear request,
// or a new value, for a single configuration field of type T.
type Override[T any] struct {
	Op    OverrideOp
	Value T
}

// Unchanged returns an Override that leaves the field untouched.
func Unchanged[T any]() Override[T] {
	return Override[T]{Op: OpUnchanged}
}

// Clear returns an Override that removes any explicit value for the field.
func Clear[T any]() Override[T] {
	return Override[T]{Op: OpClear}
}

// Set returns an Override that installs v as the field's new explicit value.
func Set[T any](v T) Override[T] {
	return Override[T]{Op: OpSet, Value: v}
}

// Specified pairs a field's effective value with whether that value is an
// explicit override (true) or inherited from a fallback setting (false).
type Specified[T any] struct {
	Value     T
	Specified bool
}
